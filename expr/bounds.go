// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "math"

// Bounds returns a (lb_expr, ub_expr) pair of expression trees built from
// the node's own operator and the bound expressions of its arguments
// (§4.A). It is evaluated only at standardization time (when an Aux is
// interned, and again by Problem.Standardize),
// against the problem's original bounds -- never re-evaluated on the
// bound-tightening hot path (§9 design note); the bound engine (package
// bound) re-derives numeric bounds per operator directly on floats
// instead, mirroring the formulas below.
func (a *Arena) Bounds(id NodeID) (lb, ub NodeID) {
	n := a.Node(id)
	switch n.Code {
	case CodeConst:
		return NewConst(a, n.Value), NewConst(a, n.Value)

	case CodeVar:
		return NewLowerBound(a, n.VarIndex), NewUpperBound(a, n.VarIndex)

	case CodeLowerBound, CodeUpperBound:
		return id, id

	case CodeOpp:
		clb, cub := a.Bounds(n.Child)
		return NewOpp(a, cub), NewOpp(a, clb)

	case CodeAbs:
		clb, cub := a.Bounds(n.Child)
		lbAbs := NewMax(a, NewConst(a, 0), NewMax(a, clb, NewOpp(a, cub)))
		ubAbs := NewMax(a, NewOpp(a, clb), cub)
		return lbAbs, ubAbs

	case CodeExp:
		clb, cub := a.Bounds(n.Child)
		return NewExp(a, clb), NewExp(a, cub)

	case CodeLog:
		clb, cub := a.Bounds(n.Child)
		return NewLog(a, clb), NewLog(a, cub)

	case CodeSin, CodeCos:
		// The tight, periodicity-anchored bound is computed numerically by
		// the bound engine (§4.E, §9); the symbolic seed is the trivial
		// [-1,1] range of the trigonometric range.
		return NewConst(a, -1), NewConst(a, 1)

	case CodeSum:
		var lbTerms, ubTerms []NodeID
		for _, c := range n.Args {
			clb, cub := a.Bounds(c)
			lbTerms = append(lbTerms, clb)
			ubTerms = append(ubTerms, cub)
		}
		return NewSum(a, lbTerms...), NewSum(a, ubTerms...)

	case CodeSub:
		alb, aub := a.Bounds(n.A)
		blb, bub := a.Bounds(n.B)
		return NewSub(a, alb, bub), NewSub(a, aub, blb)

	case CodeMul:
		return a.boundsOfProduct(n.Args)

	case CodeDiv:
		alb, aub := a.Bounds(n.A)
		rlb, rub := a.boundsOfReciprocal(n.B)
		return a.boundsOfProduct2(alb, aub, rlb, rub)

	case CodePow:
		return a.boundsOfPow(n)

	case CodeMin:
		var lbTerms, ubTerms []NodeID
		for _, c := range n.Args {
			clb, cub := a.Bounds(c)
			lbTerms = append(lbTerms, clb)
			ubTerms = append(ubTerms, cub)
		}
		return NewMin(a, lbTerms...), NewMin(a, ubTerms...)

	case CodeMax:
		var lbTerms, ubTerms []NodeID
		for _, c := range n.Args {
			clb, cub := a.Bounds(c)
			lbTerms = append(lbTerms, clb)
			ubTerms = append(ubTerms, cub)
		}
		return NewMax(a, lbTerms...), NewMax(a, ubTerms...)

	case CodeGroup:
		lbSum := []NodeID{NewConst(a, n.Const0)}
		ubSum := []NodeID{NewConst(a, n.Const0)}
		for _, t := range n.Lin {
			clb, cub := NewLowerBound(a, t.Index), NewUpperBound(a, t.Index)
			if t.Coef >= 0 {
				lbSum = append(lbSum, NewMul(a, NewConst(a, t.Coef), clb))
				ubSum = append(ubSum, NewMul(a, NewConst(a, t.Coef), cub))
			} else {
				lbSum = append(lbSum, NewMul(a, NewConst(a, t.Coef), cub))
				ubSum = append(ubSum, NewMul(a, NewConst(a, t.Coef), clb))
			}
		}
		for _, c := range n.Nonlin {
			clb, cub := a.Bounds(c)
			lbSum = append(lbSum, clb)
			ubSum = append(ubSum, cub)
		}
		return NewSum(a, lbSum...), NewSum(a, ubSum...)

	case CodeQuad:
		blb, bub := a.Bounds(n.Base)
		lbSum := []NodeID{blb}
		ubSum := []NodeID{bub}
		for _, t := range n.Quad_ {
			lbi, ubi := NewLowerBound(a, t.I), NewUpperBound(a, t.I)
			var plb, pub NodeID
			if t.I == t.J {
				// x*x: the generic independent-interval corner formula
				// below assumes the two factors are unrelated and, for
				// an interval straddling zero, wrongly allows a negative
				// product (e.g. x in [-1,1] would give [-1,1] instead of
				// the true [0,1]) -- the same dependency problem
				// boundsOfPow's even-power case avoids via the exact
				// |x|^2 identity, reused here.
				plb, pub = a.boundsOfSquare(lbi, ubi)
			} else {
				lbj, ubj := NewLowerBound(a, t.J), NewUpperBound(a, t.J)
				plb, pub = a.boundsOfProduct2(lbi, ubi, lbj, ubj)
			}
			if t.Q >= 0 {
				lbSum = append(lbSum, NewMul(a, NewConst(a, t.Q), plb))
				ubSum = append(ubSum, NewMul(a, NewConst(a, t.Q), pub))
			} else {
				lbSum = append(lbSum, NewMul(a, NewConst(a, t.Q), pub))
				ubSum = append(ubSum, NewMul(a, NewConst(a, t.Q), plb))
			}
		}
		return NewSum(a, lbSum...), NewSum(a, ubSum...)

	case CodeRef:
		return a.Bounds(n.Target)
	}
	return NewConst(a, math.Inf(-1)), NewConst(a, math.Inf(1))
}

// boundsOfProduct folds the independent-variable interval product of every
// argument's own bound pairwise (exact for independent intervals; the
// dependency problem of interval arithmetic only applies when the same
// variable is multiplied by itself, which is routed through CodePow, not
// CodeMul, by the standardizer).
func (a *Arena) boundsOfProduct(args []NodeID) (lb, ub NodeID) {
	lb, ub = a.Bounds(args[0])
	for _, c := range args[1:] {
		clb, cub := a.Bounds(c)
		lb, ub = a.boundsOfProduct2(lb, ub, clb, cub)
	}
	return
}

// boundsOfProduct2 is the 4-corner interval-multiplication formula for two
// independent intervals.
func (a *Arena) boundsOfProduct2(l1, u1, l2, u2 NodeID) (lb, ub NodeID) {
	p1 := NewMul(a, l1, l2)
	p2 := NewMul(a, l1, u2)
	p3 := NewMul(a, u1, l2)
	p4 := NewMul(a, u1, u2)
	return NewMin(a, p1, p2, p3, p4), NewMax(a, p1, p2, p3, p4)
}

// boundsOfSquare is the exact |x|^2 bound for a Quad term with I==J,
// avoiding the dependency problem boundsOfProduct2's generic corner
// formula has for a variable multiplied by itself (§4.A, mirrored from
// boundsOfPow's even-power case).
func (a *Arena) boundsOfSquare(lb, ub NodeID) (plb, pub NodeID) {
	lbAbs := NewMax(a, NewConst(a, 0), NewMax(a, lb, NewOpp(a, ub)))
	ubAbs := NewMax(a, NewOpp(a, lb), ub)
	return NewMul(a, lbAbs, lbAbs), NewMul(a, ubAbs, ubAbs)
}

// boundsOfReciprocal returns the interval of 1/y given y's own bound.
// When the interval straddles (or touches) zero the reciprocal is
// unbounded; Go's IEEE-754 division produces +/-Inf in that case, which is
// a valid (if loose) enclosure, never re-tightened without first branching
// on the sign of y (§4.G "w = x/y ... If y straddles 0, branch").
func (a *Arena) boundsOfReciprocal(y NodeID) (lb, ub NodeID) {
	ylb, yub := a.Bounds(y)
	one := NewConst(a, 1)
	rl := NewDiv(a, one, ylb)
	ru := NewDiv(a, one, yub)
	return NewMin(a, rl, ru), NewMax(a, rl, ru)
}

// boundsOfPow handles base^exponent for a constant exponent (the only case
// the standardizer routes through CodePow as an Aux image; exponents 0 and
//1 are collapsed by NewPow before an Aux is ever created). Even integer
// powers use the exact |x|^n identity (abs-then-monotonic-power) to avoid
// the interval-arithmetic dependency problem that a naive corner-product
// would introduce; odd integers and the (domain x>=0 assumed) general real
// case use the monotonic corner formula.
func (a *Arena) boundsOfPow(n *Node) (lb, ub NodeID) {
	blb, bub := a.Bounds(n.A)
	ne := a.Node(n.B)
	if ne.Code == CodeConst && isEvenInt(ne.Value) {
		lbAbs := NewMax(a, NewConst(a, 0), NewMax(a, blb, NewOpp(a, bub)))
		ubAbs := NewMax(a, NewOpp(a, blb), bub)
		return NewPow(a, lbAbs, n.B), NewPow(a, ubAbs, n.B)
	}
	lo := NewPow(a, blb, n.B)
	hi := NewPow(a, bub, n.B)
	return NewMin(a, lo, hi), NewMax(a, lo, hi)
}

func isEvenInt(v float64) bool {
	if v != math.Trunc(v) {
		return false
	}
	i := int64(v)
	return i%2 == 0
}
