// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

// Classify reports id's Linearity (§4.D), the classification the
// standardizer uses to decide whether a subtree can be folded directly
// into a Group/Quad or must become its own Aux.
func (a *Arena) Classify(id NodeID) Linearity {
	n := a.Node(id)
	switch n.Code {
	case CodeConst:
		if n.Value == 0 {
			return Zero
		}
		return Constant
	case CodeLowerBound, CodeUpperBound:
		return Constant
	case CodeVar:
		return Linear
	case CodeOpp:
		return a.Classify(n.Child)
	case CodeAbs, CodeExp, CodeLog, CodeSin, CodeCos:
		if a.Classify(n.Child) == Constant || a.Classify(n.Child) == Zero {
			return Constant
		}
		return Nonlinear
	case CodeSum:
		return worstOf(a, n.Args)
	case CodeSub:
		return combine(a.Classify(n.A), a.Classify(n.B))
	case CodeMul:
		return classifyProduct(a, n.Args)
	case CodeDiv:
		cb := a.Classify(n.B)
		if cb != Constant && cb != Zero {
			return Nonlinear
		}
		return a.Classify(n.A)
	case CodePow:
		if ne := a.Node(n.B); ne.Code == CodeConst {
			switch ne.Value {
			case 0:
				return Constant
			case 1:
				return a.Classify(n.A)
			case 2:
				if a.Classify(n.A) == Linear {
					return Quadratic
				}
			}
		}
		return Nonlinear
	case CodeMin, CodeMax:
		return Nonlinear
	case CodeGroup:
		if len(n.Nonlin) > 0 {
			return Nonlinear
		}
		if len(n.Lin) > 0 {
			return Linear
		}
		if n.Const0 == 0 {
			return Zero
		}
		return Constant
	case CodeQuad:
		return Quadratic
	case CodeRef:
		return a.Classify(n.Target)
	}
	return Nonlinear
}

func worstOf(a *Arena, ids []NodeID) Linearity {
	best := Zero
	for _, id := range ids {
		best = combine(best, a.Classify(id))
	}
	return best
}

// combine returns the weaker (more general) of two linearity classes, in
// the order Zero < Constant < Linear < Quadratic < Nonlinear.
func combine(x, y Linearity) Linearity {
	if x > y {
		return x
	}
	return y
}

// classifyProduct reports Linear only for a single linear factor times any
// number of constants, Quadratic for exactly two linear factors, and
// Nonlinear otherwise.
func classifyProduct(a *Arena, args []NodeID) Linearity {
	linCount := 0
	worst := Constant
	for _, id := range args {
		switch c := a.Classify(id); c {
		case Zero:
			return Zero
		case Constant:
		case Linear:
			linCount++
		default:
			worst = Nonlinear
		}
	}
	if worst == Nonlinear {
		return Nonlinear
	}
	switch linCount {
	case 0:
		return Constant
	case 1:
		return Linear
	case 2:
		return Quadratic
	default:
		return Nonlinear
	}
}

// Rank is the length of the longest dependency chain under id (§3 "Rank"):
// 0 for a node with no variable dependencies, otherwise one more than the
// greatest rank among the variables it reads. Each call walks id afresh;
// nothing is memoized between calls.
func (a *Arena) Rank(id NodeID, rankOf func(varIndex int) int) int {
	best := 0
	for _, i := range a.Deps(id) {
		if r := rankOf(i); r+1 > best {
			best = r + 1
		}
	}
	return best
}
