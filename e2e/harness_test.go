// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package e2e drives a standardized problem.Problem all the way through
// an internal/lpref.LP relaxation and bbnode.Node.Process, exercising the
// whole pipeline the way spec.md §8's end-to-end scenarios describe --
// no package in the module otherwise builds an LP from a Problem, so this
// is the one place the root-cut/envelope/FBBT/OBBT stages are all wired
// together against an actual solverapi.LPSolver the way a real driver
// (out of scope here, §2 "no cmd/ front-end") eventually would.
package e2e

import (
	"math"

	"github.com/cpmech/gonlin/config"
	"github.com/cpmech/gonlin/convex"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/internal/lpref"
	"github.com/cpmech/gonlin/problem"
	"github.com/cpmech/gonlin/solverapi"
)

// newConfig returns a Config with every default filled in, the way a
// real caller always must before handing it to bbnode.New.
func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SetDefault()
	cfg.PostProcess()
	return cfg
}

// imageOf returns the expression a variable's column stands for: its own
// Aux image, or a bare Var reference for an original (§4.D, standardize's
// "a constraint/objective body is reduced to a reference to exactly one
// Aux variable" -- an original referenced directly has no Aux image of
// its own).
func imageOf(p *problem.Problem, idx int) expr.NodeID {
	v := p.Store.Get(idx)
	if v.IsAux() {
		return v.Image
	}
	return expr.NewVar(p.Arena, idx)
}

// linearCoeffs extracts a linear image's (idx, coeff) pairs via
// convex.RootCut, discarding the [Lo,Up] bounds RootCut also computes --
// the caller supplies its own row/objective bounds, this is only ever
// used here to avoid hand-walking a Group node a second time.
func linearCoeffs(s *convex.Sample, image expr.NodeID) ([]int, []float64) {
	cut, ok := convex.RootCut(s, image, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, nil
	}
	return cut.Idx, cut.Coeff
}

// buildLP assembles the root LP relaxation of a standardized problem:
// one column per variable store slot (so a column index always equals
// the matching variable index, §4.B), the objective set either directly
// (a linear image) or as a single coefficient on the objective's own
// column (a nonlinear image, whose linking cut bbnode.Node.Process's
// first cut-generation pass installs), and one row per constraint the
// same way.
func buildLP(p *problem.Problem, s *convex.Sample) solverapi.LPSolver {
	seedConstraintBounds(p)

	lp := lpref.New()
	L, U := p.Bounds()
	for i := range L {
		lp.AddCol(L[i], U[i], 0)
	}

	objImage := imageOf(p, p.Objective.Index)
	if idx, coeff := linearCoeffs(s, objImage); idx != nil {
		obj := make([]float64, p.NumVars())
		for i, j := range idx {
			obj[j] = coeff[i]
		}
		lp.SetObjective(obj)
	} else {
		obj := make([]float64, p.NumVars())
		obj[p.Objective.Index] = 1
		lp.SetObjective(obj)
	}
	lp.SetObjSense(p.Objective.Sense)

	for _, c := range p.Constraints {
		image := imageOf(p, c.Index)
		if cut, ok := convex.RootCut(s, image, c.Lo, c.Up); ok {
			lp.AddRow(cut.Lo, cut.Up, cut.Idx, cut.Coeff)
		} else {
			lp.AddRow(c.Lo, c.Up, []int{c.Index}, []float64{1})
		}
	}

	return lp
}

// seedConstraintBounds intersects each declared constraint's [Lo,Up] into
// its own Aux's Store bounds. Standardize deliberately leaves this undone
// -- a constraint's aux is born with only the symbolic box bound its
// expression implies, never the user's own declared range, so two
// problems sharing the same constrained sub-expression (e.g. `x*y` used
// once as an objective term and once as `-10<=x*y<=10`) keep their own
// shared aux's bound a pure function of the expression, not of whichever
// constraint happens to reference it (see problem/problem_test.go's
// Test_problem01, which asserts the un-intersected bound survives
// Standardize). Declaring the root box for a solve is the caller's job;
// this mirrors the manual L/U assignment bound/bound_test.go's
// Test_bound03 already uses for the same reason, just applied to every
// constraint at once instead of by hand in each test.
func seedConstraintBounds(p *problem.Problem) {
	for _, c := range p.Constraints {
		v := p.Store.Get(c.Index)
		if c.Lo > v.LB {
			v.LB = c.Lo
		}
		if c.Up < v.UB {
			v.UB = c.Up
		}
	}
}
