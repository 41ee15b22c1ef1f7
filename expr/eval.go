// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "math"

// Evaluate reads from the current domain arrays and returns a numeric
// value; no allocation happens on this path. Recursion is bounded by the
// node's Rank (§3 "Rank"): since every Aux's image references only
// strictly lower-rank nodes, recursion depth never exceeds the problem's
// deepest dependency chain, which is the bounded-recursion reading of the
// design note on the evaluation stack (§9) rather than a process-wide
// scratch stack.
//
// x holds the current values of every variable (original and auxiliary);
// L, U hold their current numeric bounds, read by LowerBound/UpperBound
// nodes used inside bound expressions.
func (a *Arena) Evaluate(id NodeID, x, L, U []float64) float64 {
	n := a.Node(id)
	switch n.Code {
	case CodeConst:
		return n.Value
	case CodeVar:
		return x[n.VarIndex]
	case CodeLowerBound:
		return L[n.VarIndex]
	case CodeUpperBound:
		return U[n.VarIndex]
	case CodeOpp:
		return -a.Evaluate(n.Child, x, L, U)
	case CodeAbs:
		return math.Abs(a.Evaluate(n.Child, x, L, U))
	case CodeExp:
		return math.Exp(a.Evaluate(n.Child, x, L, U))
	case CodeLog:
		return math.Log(a.Evaluate(n.Child, x, L, U))
	case CodeSin:
		return math.Sin(a.Evaluate(n.Child, x, L, U))
	case CodeCos:
		return math.Cos(a.Evaluate(n.Child, x, L, U))
	case CodeSum:
		s := 0.0
		for _, c := range n.Args {
			s += a.Evaluate(c, x, L, U)
		}
		return s
	case CodeSub:
		return a.Evaluate(n.A, x, L, U) - a.Evaluate(n.B, x, L, U)
	case CodeMul:
		p := 1.0
		for _, c := range n.Args {
			p *= a.Evaluate(c, x, L, U)
		}
		return p
	case CodeDiv:
		return a.Evaluate(n.A, x, L, U) / a.Evaluate(n.B, x, L, U)
	case CodePow:
		return math.Pow(a.Evaluate(n.A, x, L, U), a.Evaluate(n.B, x, L, U))
	case CodeMin:
		v := a.Evaluate(n.Args[0], x, L, U)
		for _, c := range n.Args[1:] {
			if cv := a.Evaluate(c, x, L, U); cv < v {
				v = cv
			}
		}
		return v
	case CodeMax:
		v := a.Evaluate(n.Args[0], x, L, U)
		for _, c := range n.Args[1:] {
			if cv := a.Evaluate(c, x, L, U); cv > v {
				v = cv
			}
		}
		return v
	case CodeGroup:
		s := n.Const0
		for _, t := range n.Lin {
			s += t.Coef * x[t.Index]
		}
		for _, c := range n.Nonlin {
			s += a.Evaluate(c, x, L, U)
		}
		return s
	case CodeQuad:
		s := a.Evaluate(n.Base, x, L, U)
		for _, t := range n.Quad_ {
			s += t.Q * x[t.I] * x[t.J]
		}
		return s
	case CodeRef:
		return a.Evaluate(n.Target, x, L, U)
	}
	return 0
}
