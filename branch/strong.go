// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package branch

import (
	"math"

	"github.com/cpmech/gonlin/config"
	"github.com/cpmech/gonlin/depgraph"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
	"github.com/cpmech/gonlin/variable"
)

// Candidate is one variable strong branching is asked to rate, already
// paired with the point Point would pick for it.
type Candidate struct {
	Object Object
}

// StrongBranch evaluates each candidate by cloning lp, re-solving both
// children's LP relaxations from a hot start, and scoring the candidate by the *minimum* of the two children's objective
// improvement over the parent bound -- Couenne's CouenneChooseStrong
// rule: a candidate whose worse child barely moves is a poor branching
// choice even if its better child moves a lot, since that worse child is
// the one that will still be sitting in the tree after this decision.
// Returns the candidate with the largest such minimum improvement.
// maxIters is not used: SolveFromHotStart takes no iteration cap, so each
// child's LP is solved to completion.
func StrongBranch(candidates []Candidate, store *variable.Store, arena *expr.Arena, graph *depgraph.Graph, order []int, lp solverapi.LPSolver, x []float64, cfg *config.Config, parentBound float64, maxIters int) Object {
	best := candidates[0].Object
	bestScore := math.Inf(-1)

	for _, c := range candidates {
		score := evaluateCandidate(c.Object, store, arena, graph, order, lp, x, cfg, parentBound, maxIters)
		if score > bestScore {
			bestScore = score
			best = c.Object
		}
	}
	return best
}

// evaluateCandidate solves both children's LPs from a hot start and
// reports the smaller of the two objective improvements. A child FBBT
// already proved infeasible contributes +Inf (a fully-resolved
// improvement, since that branch needs no further search at all).
func evaluateCandidate(obj Object, store *variable.Store, arena *expr.Arena, graph *depgraph.Graph, order []int, lp solverapi.LPSolver, x []float64, cfg *config.Config, parentBound float64, maxIters int) float64 {
	left, right := Execute(obj, store, arena, graph, order, lp, x, cfg, cfg.FeasibilityBT)

	li := childImprovement(left, parentBound, maxIters)
	ri := childImprovement(right, parentBound, maxIters)

	if li < ri {
		return li
	}
	return ri
}

// childImprovement solves child's LP from a hot start, with no iteration
// cap (maxIters is not used), and returns how far its objective moved from parentBound; a pruned
// (Cost==+Inf) child reports +Inf, an LP that fails to resolve reports 0
// (no evidence of improvement, treated conservatively).
func childImprovement(child Child, parentBound float64, maxIters int) float64 {
	if math.IsInf(child.Cost, 1) {
		return math.Inf(1)
	}
	child.LP.MarkHotStart()
	defer child.LP.UnmarkHotStart()
	_ = maxIters // solverapi.LPSolver.SolveFromHotStart takes no iteration cap
	if err := child.LP.SolveFromHotStart(); err != nil {
		return 0
	}
	if !child.LP.IsProvenOptimal() {
		if child.LP.IsProvenPrimalInfeasible() {
			return math.Inf(1)
		}
		return 0
	}
	return math.Abs(child.LP.GetObjValue() - parentBound)
}
