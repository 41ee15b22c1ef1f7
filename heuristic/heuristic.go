// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heuristic implements the rounding-NLP incumbent heuristic of
// §4.I: given an LP-feasible point, round the integer originals, fix
// them, and ask the external NLP solver for a local optimum of the
// continuous restriction. Grounded on Bonmin's
// BonNlpHeuristic.cpp::solution (original_source); the stage-loop shape
// (compute, gate, solve, maybe-accept, restore) follows fem/solver.go's
// time-step driver.
package heuristic

import (
	"math"

	"github.com/cpmech/gonlin/branch"
	"github.com/cpmech/gonlin/couerr"
	"github.com/cpmech/gonlin/depgraph"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
	"github.com/cpmech/gonlin/variable"
)

// Heuristic owns the NLP solver the rounding heuristic restricts and
// resolves against every time it is asked for a candidate incumbent.
type Heuristic struct {
	NLP       solverapi.NLPSolver
	Arena     *expr.Arena
	Store     *variable.Store
	MaxNlpInf float64 // bail if any branching object's infeasibility exceeds this (BonNlpHeuristic's maxNlpInf_, default 1e-4)
	FeasTol   float64 // εfeas: how close the NLP's solution must be to feasible to accept it
}

// New returns a heuristic wired to nlp, with Bonmin's default maxNlpInf_
// of 1e-4.
func New(nlp solverapi.NLPSolver, arena *expr.Arena, store *variable.Store, feasTol float64) *Heuristic {
	return &Heuristic{NLP: nlp, Arena: arena, Store: store, MaxNlpInf: 1e-4, FeasTol: feasTol}
}

// Feasibility reports whether the current LP point is close enough to
// feasible, across a set of precomputed per-branching-object
// infeasibility scores, for the heuristic to be worth attempting at all
// (BonNlpHeuristic.cpp bails before even building the NLP restriction
// when any object is too infeasible).
//
// resetPerObject resolves spec.md's Open Question 3: the source tracks a
// running `maxInfeasibility = max(maxInfeasibility, obj.infeasibility())`
// across objects and bails as soon as that running max exceeds
// MaxNlpInf -- a true cumulative max (resetPerObject=false, the default
// this package matches, since changing proven source semantics without
// an explicit instruction would be a scope-widening guess). Passing true
// instead checks each object's own infeasibility against the threshold
// independently, discarding the running max between objects; the two
// give the same bail/no-bail answer whenever infeasibility scores are
// nonnegative (the case here), but report a different final
// maxInfeasibility value, which callers that log or rank by it will see.
func Feasibility(scores []float64, maxNlpInf float64, resetPerObject bool) (bail bool, maxInfeasibility float64) {
	running := 0.0
	for _, s := range scores {
		if resetPerObject {
			running = s
		} else {
			running = math.Max(running, s)
		}
		if running > maxNlpInf {
			return true, running
		}
	}
	return false, running
}

// Round snaps every integer original in x to the nearest integer,
// clamped into [L,U], leaving continuous originals and every Aux
// untouched (the NLP restriction only fixes the discretes; Auxs are
// re-derived by the NLP solve itself).
func Round(store *variable.Store, x []float64) (lower, upper []float64) {
	n := store.Len()
	lower = make([]float64, n)
	upper = make([]float64, n)
	for i := 0; i < n; i++ {
		v := store.Get(i)
		lower[i], upper[i] = v.LB, v.UB
		if !v.IsInteger {
			continue
		}
		val := x[i]
		if val < v.LB {
			val = v.LB
		} else if val > v.UB {
			val = v.UB
		}
		val = math.Floor(val + 0.5)
		lower[i], upper[i] = val, val
	}
	return lower, upper
}

// Try attempts one rounding-NLP pass (§4.I): round the integer originals
// at x, fix them, solve the continuous restriction, and report a new
// incumbent only if the NLP proves optimal, its objective improves on
// incumbent, and its solution is feasible to within h.FeasTol (checked by
// the caller via the re-propagated Aux residuals -- this package only
// drives the NLP call and the accept/reject decision on its reported
// objective, since the feasibility re-check needs the Aux-evaluation
// machinery that lives in bound/convex, not here).
func (h *Heuristic) Try(x []float64, incumbent float64) (accepted bool, newX []float64, newObj float64, err error) {
	saveLo := h.NLP.GetWarmStart()
	defer h.NLP.SetWarmStart(saveLo)

	lo, up := Round(h.Store, x)
	n := h.Store.Len()
	for i := 0; i < n; i++ {
		h.NLP.SetColLower(i, lo[i])
		h.NLP.SetColUpper(i, up[i])
	}
	h.NLP.SetColSolution(x)

	if err := h.NLP.InitialSolve(); err != nil {
		return false, nil, incumbent, couerr.New(couerr.KindNLPSolverError, "heuristic: NLP initial solve failed: %v", err)
	}

	if h.NLP.IsAbandoned() || h.NLP.IsIterationLimitReached() {
		return false, nil, incumbent, nil
	}
	if !h.NLP.IsProvenOptimal() {
		return false, nil, incumbent, nil
	}

	obj := h.NLP.GetObjValue()
	if obj >= incumbent {
		return false, nil, incumbent, nil
	}

	return true, h.NLP.GetColSolution(), obj, nil
}

// MaxBranchInfeasibility scores every original via branch.OriginalScore,
// as BonNlpHeuristic.cpp's own loop does, and returns the scores; the
// caller passes them to Feasibility.
func MaxBranchInfeasibility(a *expr.Arena, store *variable.Store, graph *depgraph.Graph, originals []int, xpt, L, U []float64, wt branch.Weights, feasTol float64) []float64 {
	scores := make([]float64, len(originals))
	for i, x := range originals {
		scores[i] = branch.OriginalScore(a, store, graph, x, xpt, L, U, wt, feasTol)
	}
	return scores
}
