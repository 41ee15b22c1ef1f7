// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

// Differentiate returns a new expression tree for d/dx_wrt of the node at
// id. Elementary rules; sums and products expand via the chain/product
// rule (§4.A). Min/Max are not smooth; per convention their derivative is
// taken as that of their first argument (a subgradient choice) since the
// convexifier never differentiates them directly -- it builds a dedicated
// linear bound per argument instead (§4.G).
func (a *Arena) Differentiate(id NodeID, wrt int) NodeID {
	n := a.Node(id)
	switch n.Code {
	case CodeConst, CodeLowerBound, CodeUpperBound:
		return NewConst(a, 0)
	case CodeVar:
		if n.VarIndex == wrt {
			return NewConst(a, 1)
		}
		return NewConst(a, 0)
	case CodeOpp:
		return NewOpp(a, a.Differentiate(n.Child, wrt))
	case CodeAbs:
		// d|f|/dx = (f/|f|) * f'
		return NewMul(a, NewDiv(a, n.Child, NewAbs(a, n.Child)), a.Differentiate(n.Child, wrt))
	case CodeExp:
		return NewMul(a, a.Differentiate(n.Child, wrt), id)
	case CodeLog:
		return NewDiv(a, a.Differentiate(n.Child, wrt), n.Child)
	case CodeSin:
		return NewMul(a, a.Differentiate(n.Child, wrt), NewCos(a, n.Child))
	case CodeCos:
		return NewOpp(a, NewMul(a, a.Differentiate(n.Child, wrt), NewSin(a, n.Child)))
	case CodeSum:
		terms := make([]NodeID, len(n.Args))
		for i, c := range n.Args {
			terms[i] = a.Differentiate(c, wrt)
		}
		return NewSum(a, terms...)
	case CodeSub:
		return NewSub(a, a.Differentiate(n.A, wrt), a.Differentiate(n.B, wrt))
	case CodeMul:
		// generalized product rule: sum_i ( f_i' * prod_{j!=i} f_j )
		terms := make([]NodeID, len(n.Args))
		for i := range n.Args {
			factors := make([]NodeID, 0, len(n.Args))
			factors = append(factors, a.Differentiate(n.Args[i], wrt))
			for j, c := range n.Args {
				if j != i {
					factors = append(factors, c)
				}
			}
			terms[i] = NewMul(a, factors...)
		}
		return NewSum(a, terms...)
	case CodeDiv:
		// (A'B - AB') / B^2
		num := NewSub(a, NewMul(a, a.Differentiate(n.A, wrt), n.B), NewMul(a, n.A, a.Differentiate(n.B, wrt)))
		den := NewPow(a, n.B, NewConst(a, 2))
		return NewDiv(a, num, den)
	case CodePow:
		return a.diffPow(n, wrt)
	case CodeMin:
		return a.Differentiate(n.Args[0], wrt)
	case CodeMax:
		return a.Differentiate(n.Args[0], wrt)
	case CodeGroup:
		terms := make([]NodeID, 0, len(n.Lin)+len(n.Nonlin))
		for _, t := range n.Lin {
			if t.Index == wrt {
				terms = append(terms, NewConst(a, t.Coef))
			}
		}
		for _, c := range n.Nonlin {
			terms = append(terms, a.Differentiate(c, wrt))
		}
		return NewSum(a, terms...)
	case CodeQuad:
		terms := []NodeID{a.Differentiate(n.Base, wrt)}
		for _, t := range n.Quad_ {
			switch {
			case t.I == wrt && t.J == wrt:
				terms = append(terms, NewMul(a, NewConst(a, 2*t.Q), NewVar(a, t.I)))
			case t.I == wrt:
				terms = append(terms, NewMul(a, NewConst(a, t.Q), NewVar(a, t.J)))
			case t.J == wrt:
				terms = append(terms, NewMul(a, NewConst(a, t.Q), NewVar(a, t.I)))
			}
		}
		return NewSum(a, terms...)
	case CodeRef:
		return a.Differentiate(n.Target, wrt)
	}
	return NewConst(a, 0)
}

// diffPow implements d/dx (base^exp). When exp is a constant c, this is the
// elementary power rule c*base^(c-1)*base'; otherwise the general rule for
// a^b with both a and b depending on x is used.
func (a *Arena) diffPow(n *Node, wrt int) NodeID {
	if ne := a.Node(n.B); ne.Code == CodeConst {
		c := ne.Value
		return NewMul(a, NewConst(a, c), NewPow(a, n.A, NewConst(a, c-1)), a.Differentiate(n.A, wrt))
	}
	// d/dx a^b = a^b * (b' * ln(a) + b * a'/a)
	lnA := NewLog(a, n.A)
	term1 := NewMul(a, a.Differentiate(n.B, wrt), lnA)
	term2 := NewMul(a, n.B, NewDiv(a, a.Differentiate(n.A, wrt), n.A))
	return NewMul(a, NewPow(a, n.A, n.B), NewSum(a, term1, term2))
}
