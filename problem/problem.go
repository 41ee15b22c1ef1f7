// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package problem is the top-level container: it owns the variable store,
// the objective and constraints, drives standardization (§4.D), and
// exposes read-only accessors the LP/NLP components build their matrices
// from. Grounded on fem/fem.go's FEM container (owns Domains, drives the
// per-stage loop) and fem/domain.go's construction/registration flow.
package problem

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gonlin/depgraph"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/variable"
)

// Objective is the problem's single optimization direction.
type Objective struct {
	Sense int // +1 minimize, -1 maximize (§6 setObjSense)
	Index int // variable index standardization assigned to the body
}

// Constraint is one row: Lo <= body <= Up, body given by Index after
// standardization.
type Constraint struct {
	Lo, Up float64
	Index  int
}

// Problem owns everything standardization and the B&B loop share.
type Problem struct {
	Arena *expr.Arena
	Store *variable.Store
	Graph *depgraph.Graph

	Objective   Objective
	Constraints []Constraint

	objBody  expr.NodeID
	conBody  []expr.NodeID
	conLo    []float64
	conUp    []float64

	// Order is the topological variable order computed by Standardize,
	// dependencies before dependents; Propagate iterates it forward,
	// implied-bound tightening iterates it in reverse (§4.C, §4.E).
	Order []int

	standardized bool
}

// New returns an empty problem sharing arena.
func New(arena *expr.Arena) *Problem {
	store := variable.NewStore(arena)
	return &Problem{
		Arena: arena,
		Store: store,
		Graph: depgraph.New(store),
	}
}

// AddVariable registers an original decision variable and returns its
// index (§3, §4.B).
func (p *Problem) AddVariable(name string, lb, ub float64, isInteger bool) int {
	idx := p.Store.AddOriginal(name, lb, ub, isInteger)
	p.Graph.InsertVar(idx)
	return idx
}

// SetObjective records the (pre-standardization) objective expression and
// its sense. Must be called before Standardize.
func (p *Problem) SetObjective(body expr.NodeID, sense int) {
	p.objBody = body
	p.Objective.Sense = sense
}

// AddConstraint records a (pre-standardization) constraint lo <= body <= up.
func (p *Problem) AddConstraint(body expr.NodeID, lo, up float64) {
	p.conBody = append(p.conBody, body)
	p.conLo = append(p.conLo, lo)
	p.conUp = append(p.conUp, up)
}

// NumVars returns the total number of variables, originals plus auxiliary
// (meaningful only after Standardize).
func (p *Problem) NumVars() int { return p.Store.Len() }

// Bounds returns the current (L, U) arrays across every variable.
func (p *Problem) Bounds() (L, U []float64) { return p.Store.Bounds() }

// Print renders the standardized problem for diagnostics.
func (p *Problem) Print() string {
	s := io.Sf("objective (sense=%d): w%d\n", p.Objective.Sense, p.Objective.Index)
	for _, c := range p.Constraints {
		s += io.Sf("%.6g <= w%d <= %.6g\n", c.Lo, c.Index, c.Up)
	}
	for i := range p.Store.Vars {
		v := &p.Store.Vars[i]
		if v.IsAux() {
			s += io.Sf("  w%d = %s  [%.6g, %.6g]  rank=%d mult=%d\n",
				v.Index, p.Arena.Print(v.Image), v.LB, v.UB, v.Rank, v.Mult)
		}
	}
	return s
}
