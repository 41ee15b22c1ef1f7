// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bound

import (
	"github.com/cpmech/gonlin/couerr"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/variable"
)

// Engine runs FBBT over one problem's variable store, in the topological
// order Standardize computed (§4.C, §4.E).
type Engine struct {
	Arena   *expr.Arena
	Store   *variable.Store
	Order   []int
	MaxIter int
}

// New returns an engine ready to run over store, iterating order (forward)
// and its reverse (backward) up to maxIter times per Run call.
func New(arena *expr.Arena, store *variable.Store, order []int, maxIter int) *Engine {
	return &Engine{Arena: arena, Store: store, Order: order, MaxIter: maxIter}
}

// Run alternates forward propagation and backward implied bounds until
// neither changes anything or MaxIter rounds have run (§4.E, resolved as
// `(n_fwd!=0 || n_bwd!=0) && iter<MaxIter`). A non-nil return is always a
// *couerr.Error of KindNodeInfeasible: local and expected, the caller (the
// B&B node) prunes and moves on, never propagates it as a fatal failure.
func (e *Engine) Run() error {
	for iter := 0; iter < e.MaxIter; iter++ {
		nFwd, infeas := e.propagate()
		if infeas {
			return couerr.New(couerr.KindNodeInfeasible, "bound tightening: forward propagation emptied a variable's domain")
		}
		nBwd, infeas := e.implied()
		if infeas {
			return couerr.New(couerr.KindNodeInfeasible, "bound tightening: implied bounds emptied a variable's domain")
		}
		if nFwd == 0 && nBwd == 0 {
			break
		}
	}
	return nil
}

// propagate recomputes every Aux's bounds from its arguments, in
// dependency order, intersecting with its current bounds (never widening:
// forward propagation only tightens what standardization already seeded).
func (e *Engine) propagate() (nChanged int, infeasible bool) {
	for _, k := range e.Order {
		v := e.Store.Get(k)
		if !v.IsAux() {
			continue
		}
		lb, ub := forwardBound(e.Store, e.Arena, v.Image)
		c, infeas := tighten(e.Store, k, lb, ub)
		if infeas {
			return nChanged, true
		}
		if c {
			nChanged++
		}
	}
	return nChanged, false
}

// implied runs the backward pass in reverse topological order: every
// Aux's own (possibly just-tightened) bounds are pushed back onto the
// variables referenced by its image.
func (e *Engine) implied() (nChanged int, infeasible bool) {
	for i := len(e.Order) - 1; i >= 0; i-- {
		k := e.Order[i]
		v := e.Store.Get(k)
		if !v.IsAux() {
			continue
		}
		c, infeas := impliedBound(e.Store, e.Arena, k)
		if infeas {
			return nChanged, true
		}
		if c {
			nChanged++
		}
	}
	return nChanged, false
}

// ReducedCostTighten applies the optional pre-pass of §4.E: given the
// current LP relaxation's objective bounds [lpBound, cutoff] and each
// original variable's reduced cost r_i at the relaxation's optimum, any
// move of x_i away from its current bound that would push the objective
// past cutoff can be excluded.
//
//	if (U_i - x_i)*r_i > cutoff - lpBound { U_i <- x_i + (cutoff-lpBound)/r_i }
//
// (symmetric rule for variables at their upper bound with r_i < 0, tightening
// L_i instead). r_i == 0 variables are skipped: no reduced cost, no pull.
func (e *Engine) ReducedCostTighten(x []float64, reducedCost []float64, lpBound, cutoff float64) (nChanged int) {
	gap := cutoff - lpBound
	if gap <= 0 {
		return 0
	}
	for i := range reducedCost {
		r := reducedCost[i]
		if r == 0 {
			continue
		}
		v := e.Store.Get(i)
		if r > 0 {
			if (v.UB-x[i])*r > gap {
				nu := x[i] + gap/r
				if nu < v.UB {
					v.UB = nu
					nChanged++
				}
			}
		} else {
			if (x[i]-v.LB)*(-r) > gap {
				nl := x[i] + gap/r
				if nl > v.LB {
					v.LB = nl
					nChanged++
				}
			}
		}
	}
	return nChanged
}
