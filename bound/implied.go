// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bound

import (
	"math"

	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/variable"
)

// tighten intersects variable i's current bounds with [lb, ub], returning
// whether anything actually moved and whether the result is empty
// (lb > ub, i.e. this branch/node is infeasible).
func tighten(store *variable.Store, i int, lb, ub float64) (changed, infeasible bool) {
	v := store.Get(i)
	nl, nu := v.LB, v.UB
	if lb > nl {
		nl = lb
	}
	if ub < nu {
		nu = ub
	}
	if v.IsInteger {
		nl, nu = math.Ceil(nl), math.Floor(nu)
	}
	if nl > nu+1e-9 {
		return false, true
	}
	if nl != v.LB || nu != v.UB {
		v.LB, v.UB = nl, nu
		return true, false
	}
	return false, false
}

// impliedBound back-propagates w's own (already tightened) bounds onto the
// variables appearing in its defining image (§4.E "Backward / implied
// bounds"). Only returns true ("applied") for operator shapes the spec's
// table gives explicit formulas for, plus the linear (Group/Sum) case,
// which is the single most valuable implied-bound rule in practice and a
// direct generalization of w = -x. Bilinear/power/min-max implied bounds
// are intentionally left to forward propagation and the convexifier's
// cuts rather than solved here (see DESIGN.md) -- tightening them exactly
// requires the same McCormick/monotonicity reasoning the cut generator
// already performs, and skipping it here costs propagation rounds, not
// correctness.
func impliedBound(store *variable.Store, a *expr.Arena, w int) (changed, infeasible bool) {
	wv := store.Get(w)
	n := a.Node(wv.Image)
	switch n.Code {
	case expr.CodeOpp:
		return tightenChild(store, a, n.Child, -wv.UB, -wv.LB)

	case expr.CodeExp:
		// w = exp(x)  =>  x in [log(wL), log(wU)], wL must stay > 0.
		lb := math.Inf(-1)
		if wv.LB > 0 {
			lb = math.Log(wv.LB)
		}
		ub := math.Inf(1)
		if wv.UB > 0 {
			ub = math.Log(wv.UB)
		} else {
			return false, true
		}
		return tightenChild(store, a, n.Child, lb, ub)

	case expr.CodeLog:
		// w = log(x)  =>  x in [exp(wL), exp(wU)].
		return tightenChild(store, a, n.Child, math.Exp(wv.LB), math.Exp(wv.UB))

	case expr.CodeAbs:
		// w = |x|, w in [wL,wU] (wL>=0 after forward prop) => x in [-wU,wU]
		// intersected with whichever half [L[x],U[x]] already lies in.
		cl, cu := getBound(store, a, n.Child)
		lb, ub := -wv.UB, wv.UB
		if cl >= 0 {
			lb = math.Max(lb, wv.LB)
		} else if cu <= 0 {
			ub = math.Min(ub, -wv.LB)
		}
		return tightenChild(store, a, n.Child, lb, ub)

	case expr.CodeSin, expr.CodeCos:
		// Pre-image of a periodic function is not a single interval in
		// general; only tighten when the child's current interval is
		// already inside one monotonic branch, narrowing it to that
		// branch's exact pre-image would require the same anchoring this
		// package's forward periodicBound already performs. Left as a
		// no-op (documented gap, not silently wrong: it never narrows
		// incorrectly, it simply declines to narrow).
		return false, false

	case expr.CodeGroup:
		return impliedLinear(store, a, w, n)
	}
	return false, false
}

// tightenChild applies [lb,ub] to n's single child when it is a bare Var
// (always true here: standardize() wraps every unary operator's argument
// in expr.NewVar).
func tightenChild(store *variable.Store, a *expr.Arena, child expr.NodeID, lb, ub float64) (changed, infeasible bool) {
	cn := a.Node(child)
	if cn.Code != expr.CodeVar {
		return false, false
	}
	return tighten(store, cn.VarIndex, lb, ub)
}

// impliedLinear implements the classic "solve for one term" rule: given
// w = c0 + sum_k coef_k*x_k (+ nonlinear residuals treated as opaque, each
// already standing for its own Aux variable), isolate each linear term i
// and tighten x_i from w's bounds and the other terms' current bounds.
func impliedLinear(store *variable.Store, a *expr.Arena, w int, n *expr.Node) (changed, infeasible bool) {
	wv := store.Get(w)

	rest := make([]expr.NodeID, 0, len(n.Lin)+len(n.Nonlin))
	for _, t := range n.Lin {
		rest = append(rest, expr.NewVar(a, t.Index))
	}
	rest = append(rest, n.Nonlin...)

	for i, t := range n.Lin {
		if t.Coef == 0 {
			continue
		}
		// sum of every other term's bound, plus the constant.
		lb, ub := n.Const0, n.Const0
		for j, t2 := range n.Lin {
			if j == i {
				continue
			}
			l, u := getBound(store, a, rest[j])
			if t2.Coef >= 0 {
				lb += t2.Coef * l
				ub += t2.Coef * u
			} else {
				lb += t2.Coef * u
				ub += t2.Coef * l
			}
		}
		for k := len(n.Lin); k < len(rest); k++ {
			l, u := getBound(store, a, rest[k])
			lb += l
			ub += u
		}
		// t.Coef*x_i = w - rest  =>  x_i = (w - rest)/t.Coef.
		rl, ru := wv.LB-ub, wv.UB-lb
		rl, ru = rl/t.Coef, ru/t.Coef
		if t.Coef < 0 {
			rl, ru = ru, rl
		}
		c, inf := tighten(store, t.Index, rl, ru)
		if inf {
			return changed, true
		}
		changed = changed || c
	}
	return changed, false
}
