// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bound implements the FBBT engine (§4.E): forward propagation,
// backward implied bounds, and the bound-tightening loop that alternates
// them. Grounded on Couenne's convex/boundTightening.cpp and
// problem/impliedBounds.cpp for the per-operator rules and the
// `(n_fwd||n_bwd) && iter<MAX_BT_ITER` loop shape (spec.md §9, resolved as
// the `(a||b)&&c` reading).
//
// Per the design note on the evaluation stack (§9): this package never
// re-evaluates an Aux's symbolic expr.Bounds() tree on this hot path.
// Instead every routine here works directly on plain float64 bounds read
// from the variable store, because after standardization an Aux's image
// is always flat -- its immediate children are Var leaves (or, for Group/
// Quad, a short list of linear/quadratic terms over variable indices) --
// so one non-recursive switch over the image's Code is enough; there is
// no arbitrary-depth subtree left to walk.
package bound

import (
	"math"

	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/variable"
)

const periodicAnchorEps = 1e-9

// getBound returns the current numeric bound of one child of an Aux's
// image: a constant's own value, or the referenced variable's current
// (LB, UB).
func getBound(store *variable.Store, a *expr.Arena, id expr.NodeID) (lb, ub float64) {
	n := a.Node(id)
	if n.Code == expr.CodeConst {
		return n.Value, n.Value
	}
	v := store.Get(n.VarIndex)
	return v.LB, v.UB
}

// productBound is the 4-corner interval-multiplication formula.
func productBound(l1, u1, l2, u2 float64) (lb, ub float64) {
	p1, p2, p3, p4 := l1*l2, l1*u2, u1*l2, u1*u2
	lb = math.Min(math.Min(p1, p2), math.Min(p3, p4))
	ub = math.Max(math.Max(p1, p2), math.Max(p3, p4))
	return
}

func reciprocalBound(l, u float64) (lb, ub float64) {
	rl, ru := 1/l, 1/u
	return math.Min(rl, ru), math.Max(rl, ru)
}

func isEvenInt(v float64) bool {
	if v != math.Trunc(v) {
		return false
	}
	return int64(v)%2 == 0
}

func absBound(l, u float64) (lb, ub float64) {
	lb = math.Max(0, math.Max(l, -u))
	ub = math.Max(-l, u)
	return
}

// forwardBound recomputes an Aux's numeric bound from the current bounds
// of its image's arguments (§4.E "Forward propagation").
func forwardBound(store *variable.Store, a *expr.Arena, image expr.NodeID) (lb, ub float64) {
	n := a.Node(image)
	switch n.Code {
	case expr.CodeConst:
		return n.Value, n.Value
	case expr.CodeVar:
		return getBound(store, a, image)

	case expr.CodeOpp:
		l, u := getBound(store, a, n.Child)
		return -u, -l

	case expr.CodeAbs:
		l, u := getBound(store, a, n.Child)
		return absBound(l, u)

	case expr.CodeExp:
		l, u := getBound(store, a, n.Child)
		return math.Exp(l), math.Exp(u)

	case expr.CodeLog:
		l, u := getBound(store, a, n.Child)
		return math.Log(l), math.Log(u)

	case expr.CodeSin:
		return periodicBound(store, n.Child, a, math.Sin)
	case expr.CodeCos:
		return periodicBound(store, n.Child, a, math.Cos)

	case expr.CodeSum:
		for i, c := range n.Args {
			l, u := getBound(store, a, c)
			if i == 0 {
				lb, ub = l, u
			} else {
				lb += l
				ub += u
			}
		}
		return

	case expr.CodeMul:
		for i, c := range n.Args {
			l, u := getBound(store, a, c)
			if i == 0 {
				lb, ub = l, u
			} else {
				lb, ub = productBound(lb, ub, l, u)
			}
		}
		return

	case expr.CodeDiv:
		al, au := getBound(store, a, n.A)
		bl, bu := getBound(store, a, n.B)
		rl, ru := reciprocalBound(bl, bu)
		return productBound(al, au, rl, ru)

	case expr.CodePow:
		bl, bu := getBound(store, a, n.A)
		en := a.Node(n.B)
		if en.Code == expr.CodeConst && isEvenInt(en.Value) {
			al, au := absBound(bl, bu)
			return math.Pow(al, en.Value), math.Pow(au, en.Value)
		}
		p := en.Value
		lo, hi := math.Pow(bl, p), math.Pow(bu, p)
		return math.Min(lo, hi), math.Max(lo, hi)

	case expr.CodeMin:
		for i, c := range n.Args {
			l, u := getBound(store, a, c)
			if i == 0 {
				lb, ub = l, u
			} else {
				lb = math.Min(lb, l)
				ub = math.Min(ub, u)
			}
		}
		return

	case expr.CodeMax:
		for i, c := range n.Args {
			l, u := getBound(store, a, c)
			if i == 0 {
				lb, ub = l, u
			} else {
				lb = math.Max(lb, l)
				ub = math.Max(ub, u)
			}
		}
		return

	case expr.CodeGroup:
		lb, ub = n.Const0, n.Const0
		for _, t := range n.Lin {
			v := store.Get(t.Index)
			if t.Coef >= 0 {
				lb += t.Coef * v.LB
				ub += t.Coef * v.UB
			} else {
				lb += t.Coef * v.UB
				ub += t.Coef * v.LB
			}
		}
		for _, c := range n.Nonlin {
			l, u := getBound(store, a, c)
			lb += l
			ub += u
		}
		return

	case expr.CodeQuad:
		bl, bu := forwardBound(store, a, n.Base)
		lb, ub = bl, bu
		for _, t := range n.Quad_ {
			vi, vj := store.Get(t.I), store.Get(t.J)
			var pl, pu float64
			if t.I == t.J {
				// x*x: productBound's independent-corner formula allows
				// a spurious negative product for an interval straddling
				// zero (e.g. [-1,1] would give [-1,1] instead of the
				// true [0,1]); reuse the Pow branch's even-power |x|^2
				// identity instead.
				al, au := absBound(vi.LB, vi.UB)
				pl, pu = al*al, au*au
			} else {
				pl, pu = productBound(vi.LB, vi.UB, vj.LB, vj.UB)
			}
			if t.Q >= 0 {
				lb += t.Q * pl
				ub += t.Q * pu
			} else {
				lb += t.Q * pu
				ub += t.Q * pl
			}
		}
		return
	}
	return math.Inf(-1), math.Inf(1)
}

// periodicBound computes the bound of sin/cos(x) over x's current
// interval, anchored at the nearest period crossing to [L[x],U[x]] rather
// than assuming a fixed [0,2π) window (§9, §4.E table "pre-image ...
// anchored at the nearest period crossing"). sin and cos reach their
// extrema only at multiples of π/2, so the range is taken over both
// endpoints and every such multiple inside the interval.
func periodicBound(store *variable.Store, child expr.NodeID, a *expr.Arena, f func(float64) float64) (lb, ub float64) {
	l, u := getBound(store, a, child)
	if u-l >= 2*math.Pi-periodicAnchorEps {
		return -1, 1
	}
	lb, ub = math.Min(f(l), f(u)), math.Max(f(l), f(u))
	for k := math.Ceil(l / (math.Pi / 2)); k*math.Pi/2 <= u; k++ {
		v := f(k * math.Pi / 2)
		lb, ub = math.Min(lb, v), math.Max(ub, v)
	}
	return
}
