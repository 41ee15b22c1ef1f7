// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package branch

import (
	"math"

	"github.com/cpmech/gonlin/bound"
	"github.com/cpmech/gonlin/config"
	"github.com/cpmech/gonlin/convex"
	"github.com/cpmech/gonlin/couerr"
	"github.com/cpmech/gonlin/depgraph"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
	"github.com/cpmech/gonlin/variable"
)

// Child is one of the two sub-problems a two-way branch produces (§4.H
// "execution"). Cost is +Inf when FBBT already proved the child
// infeasible, in which case LP is the clone before the (abandoned) solve
// and must not be resolved further.
type Child struct {
	LP    solverapi.LPSolver
	Store *variable.Store // the child's own cloned store, ready for bbnode.New
	L, U  []float64       // the child's own bound arrays (copies, safe to mutate)
	Cost  float64         // +Inf => prune immediately, never resolve
}

// Object is one branching decision: which variable, and at what point.
type Object struct {
	Var   int
	Point float64
}

// Execute clones lp twice and applies the two halves of the branch (§4.H
// "the left child imposes x<=floor(p) (integer) or x<=p; the right child
// the reverse"). When runFBBT is true, each child additionally runs a
// bound.Engine pass over its own copy of L/U and, if it survives, has its
// convexification cuts regenerated and applied -- a child FBBT proves
// infeasible is reported with Cost=+Inf and is never resolved (the LP
// solve would only waste time rediscovering what FBBT already knows).
func Execute(obj Object, store *variable.Store, arena *expr.Arena, graph *depgraph.Graph, order []int, lp solverapi.LPSolver, x []float64, cfg *config.Config, runFBBT bool) (left, right Child) {

	lo, hi := store.Get(obj.Var).LB, store.Get(obj.Var).UB

	leftHi := obj.Point
	rightLo := obj.Point
	if store.Get(obj.Var).IsInteger {
		leftHi = math.Floor(obj.Point)
		rightLo = math.Ceil(obj.Point)
	}

	left = buildChild(obj.Var, lo, leftHi, false, store, arena, graph, order, lp, x, cfg, runFBBT)
	right = buildChild(obj.Var, rightLo, hi, true, store, arena, graph, order, lp, x, cfg, runFBBT)
	return left, right
}

// buildChild clones lp, narrows v's bound on one side, and -- if
// requested -- reruns FBBT and refreshes convexification cuts against the
// child's own tightened box.
func buildChild(v int, lb, ub float64, isUpper bool, store *variable.Store, arena *expr.Arena, graph *depgraph.Graph, order []int, lp solverapi.LPSolver, x []float64, cfg *config.Config, runFBBT bool) Child {

	clone := lp.Clone()
	if isUpper {
		clone.SetColLower(v, lb)
	} else {
		clone.SetColUpper(v, ub)
	}

	childStore := cloneStore(store)
	if isUpper {
		childStore.Get(v).LB = lb
	} else {
		childStore.Get(v).UB = ub
	}

	if !runFBBT {
		return Child{LP: clone, Store: childStore, L: boundsOf(childStore, false), U: boundsOf(childStore, true), Cost: 0}
	}

	eng := bound.New(arena, childStore, order, cfg.MaxBTIter)
	if err := eng.Run(); err != nil {
		if couerr.Is(err, couerr.KindNodeInfeasible) {
			return Child{LP: clone, Store: childStore, Cost: math.Inf(1)}
		}
		couerr.Fatal(couerr.KindInternalInvariant, "branch: unexpected FBBT error class: %v", err)
	}

	L, U := boundsOf(childStore, false), boundsOf(childStore, true)
	applyTightenedCols(clone, childStore, store)

	s := &convex.Sample{Arena: arena, Store: childStore, X: x, Cfg: cfg}
	cuts := convex.Refresh(s, graph, order, []int{v}, false)
	if len(cuts) > 0 {
		clone.ApplyCuts(cuts, nil)
	}

	return Child{LP: clone, Store: childStore, L: L, U: U, Cost: 0}
}

// applyTightenedCols pushes every bound FBBT narrowed (relative to
// parent) into the clone's columns, since bound.Engine only mutates the
// child's variable.Store copy, not the LP solver.
func applyTightenedCols(lp solverapi.LPSolver, child, parent *variable.Store) {
	for i := 0; i < child.Len(); i++ {
		cv, pv := child.Get(i), parent.Get(i)
		if cv.LB > pv.LB {
			lp.SetColLower(i, cv.LB)
		}
		if cv.UB < pv.UB {
			lp.SetColUpper(i, cv.UB)
		}
	}
}

// cloneStore makes an independent copy of a variable.Store's bound
// arrays so a child's FBBT pass never mutates the parent's box -- each
// sibling and the parent node must keep disjoint, independently
// re-explorable state (§4.C "nodes are independent sub-boxes").
func cloneStore(s *variable.Store) *variable.Store {
	out := &variable.Store{Arena: s.Arena, Vars: make([]variable.Variable, len(s.Vars))}
	copy(out.Vars, s.Vars)
	return out
}

func boundsOf(s *variable.Store, upper bool) []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		if upper {
			out[i] = s.Get(i).UB
		} else {
			out[i] = s.Get(i).LB
		}
	}
	return out
}
