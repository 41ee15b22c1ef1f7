// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bbnode drives the fixed per-node sequence of spec.md §5
// "Ordering": update from parent bounds, bound propagation, optional
// OBBT, cut generation, LP solve, re-propagation with the new primal,
// and branching object construction. Grounded on fem/solver.go's
// FEM.Run stage loop: a small, named, sequential driver over the
// lower-level packages (bound/obbt/convex/branch/heuristic), none of
// which know about each other directly.
package bbnode

import (
	"math"

	"github.com/cpmech/gonlin/bound"
	"github.com/cpmech/gonlin/branch"
	"github.com/cpmech/gonlin/config"
	"github.com/cpmech/gonlin/convex"
	"github.com/cpmech/gonlin/couerr"
	"github.com/cpmech/gonlin/depgraph"
	"github.com/cpmech/gonlin/domain"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/obbt"
	"github.com/cpmech/gonlin/solverapi"
	"github.com/cpmech/gonlin/variable"
)

// Status is the outcome of one Node.Process call.
type Status int

const (
	// StatusPruned means FBBT, OBBT or the LP proved this node's box
	// has no feasible point; the caller discards it.
	StatusPruned Status = iota

	// StatusIntegerFeasible means the LP solution already satisfies
	// every integer original within Cfg.IntegerTolerance; it is a
	// candidate incumbent.
	StatusIntegerFeasible

	// StatusNeedsBranching means the LP solved but some integer
	// original is still fractional; Candidate names it and Process's
	// caller should call branch.Execute next.
	StatusNeedsBranching
)

// Node is one sub-box of the search tree: its own (cloned) variable
// store, the LP relaxation carrying that box's cuts, and the scratch
// current-point/bounds snapshot used by OBBT/strong-branching probes.
type Node struct {
	Arena *expr.Arena
	Store *variable.Store
	Graph *depgraph.Graph
	Order []int
	Cfg   *config.Config
	LP    solverapi.LPSolver

	Dom *domain.Domain

	Depth        int
	IsRoot       bool
	FirstCutPass bool

	// Changed names the variables the parent's branching decision
	// narrowed on this child (set by whoever builds the child Node,
	// e.g. from branch.Object.Var); Process's cut-generation step uses
	// it to skip Auxs unaffected by that change, off the root/first
	// pass (§4.G "per-node refresh").
	Changed []int

	Cuts    convex.CutPool
	Weights branch.Weights

	obbtEngine *obbt.Engine

	// Candidate is set when Process returns StatusNeedsBranching.
	Candidate branch.Object
}

// New returns a node over store/graph/order, with an LP relaxation
// already positioned at this node's box (the caller clones it via
// branch.Execute/solverapi.Cloner before constructing a child Node).
func New(arena *expr.Arena, store *variable.Store, graph *depgraph.Graph, order []int, cfg *config.Config, lp solverapi.LPSolver, depth int, isRoot bool) *Node {
	lb, ub := store.Bounds()
	return &Node{
		Arena:        arena,
		Store:        store,
		Graph:        graph,
		Order:        order,
		Cfg:          cfg,
		LP:           lp,
		Dom:          domain.New(lb, ub),
		Depth:        depth,
		IsRoot:       isRoot,
		FirstCutPass: true,
		Weights:      branch.DefaultWeights(),
		obbtEngine:   obbt.New(arena, store, order, cfg.MaxBTIter, cfg.FeasTolerance),
	}
}

// Process runs one node's fixed sequence and returns its outcome.
func (n *Node) Process() (Status, error) {

	// (1) update from parent bounds: the store already carries the
	// branch-applied change (branch.Execute did this before the Node
	// was constructed); sync the scratch Domain's arrays to match.
	n.syncDomain()

	// (2) bound propagation loop.
	eng := bound.New(n.Arena, n.Store, n.Order, n.Cfg.MaxBTIter)
	if err := eng.Run(); err != nil {
		if couerr.Is(err, couerr.KindNodeInfeasible) {
			return StatusPruned, nil
		}
		return StatusPruned, err
	}
	n.syncDomain()

	// (3) optional OBBT.
	if n.Cfg.OptimalityBT && obbt.ShouldRun(n.Depth, n.IsRoot, n.FirstCutPass, n.Cfg.LogNumOBBTPerLevel) {
		infeasible, err := n.obbtEngine.Run(n.LP)
		if err != nil {
			return StatusPruned, err
		}
		if infeasible {
			return StatusPruned, nil
		}
		n.syncDomain()
	}

	// (4) cut generation.
	s := &convex.Sample{Arena: n.Arena, Store: n.Store, X: n.Dom.X, Cfg: n.Cfg}
	cuts := convex.Refresh(s, n.Graph, n.Order, n.Changed, n.IsRoot || n.FirstCutPass)
	if n.Cfg.ViolatedCutsOnly {
		cuts = convex.ViolatedOnly(cuts, n.Dom.X, n.Cfg.FeasTolerance)
	}
	if len(cuts) > 0 {
		n.Cuts.Add(cuts)
		n.LP.ApplyCuts(cuts, nil)
	}
	n.FirstCutPass = false

	// (5) LP solve.
	if err := n.LP.Resolve(); err != nil {
		return StatusPruned, couerr.New(couerr.KindLPSolverError, "bbnode: resolve failed: %v", err)
	}
	if n.LP.IsProvenPrimalInfeasible() {
		return StatusPruned, nil
	}
	if !n.LP.IsProvenOptimal() {
		return StatusPruned, couerr.New(couerr.KindLPSolverError, "bbnode: LP neither optimal nor proven infeasible")
	}

	// (6) re-propagate with the new primal: reduced-cost tightening,
	// then another FBBT pass since that may have narrowed something.
	x := n.LP.GetColSolution()
	copy(n.Dom.X, x)
	reduced := n.LP.GetReducedCost()
	if reduced != nil {
		eng.ReducedCostTighten(x, reduced, n.LP.GetObjValue(), n.LP.GetObjValue()+n.Cfg.CutoffDecr)
	}
	if err := eng.Run(); err != nil {
		if couerr.Is(err, couerr.KindNodeInfeasible) {
			return StatusPruned, nil
		}
		return StatusPruned, err
	}
	n.syncDomain()

	// (7) branching object construction: pick the highest-scoring
	// fractional integer original, or declare integer feasibility.
	w, ok := n.mostFractional(x)
	if !ok {
		return StatusIntegerFeasible, nil
	}

	point := branch.Point(n.Cfg.BranchPtSelect, n.Store.Get(w).LB, n.Store.Get(w).UB, x[w], nil)
	n.Candidate = branch.Object{Var: w, Point: point}
	return StatusNeedsBranching, nil
}

// syncDomain refreshes the scratch Domain's L/U arrays from the store
// (the source of truth bound/obbt/convex mutate) -- Dom only ever trails
// Store, never drives it.
func (n *Node) syncDomain() {
	for i := 0; i < n.Store.Len(); i++ {
		v := n.Store.Get(i)
		n.Dom.L[i], n.Dom.U[i] = v.LB, v.UB
	}
}

// mostFractional returns, among the integer originals whose LP value lies
// outside Cfg.IntegerTolerance of an integer, the one with the highest
// branch.OriginalScore; on equal scores the lowest index wins. The
// distance to the nearest integer only filters candidates, it does not
// rank them. ok is false when every integer original is already within
// tolerance (integer-feasible).
func (n *Node) mostFractional(x []float64) (w int, ok bool) {
	L, U := n.Store.Bounds()
	best := math.Inf(-1)
	found := false
	for i := 0; i < n.Store.Len(); i++ {
		v := n.Store.Get(i)
		if v.IsAux() || !v.IsInteger {
			continue
		}
		frac := math.Abs(x[i] - math.Round(x[i]))
		if frac <= n.Cfg.IntegerTolerance {
			continue
		}
		score := branch.OriginalScore(n.Arena, n.Store, n.Graph, i, x, L, U, n.Weights, n.Cfg.FeasTolerance)
		if !found || score > best {
			found, best, w = true, score, i
		}
	}
	return w, found
}
