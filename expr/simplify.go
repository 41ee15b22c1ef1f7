// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

// Simplify rebuilds id bottom-up through the smart constructors in
// build.go, re-applying every local simplification rule. The New*
// constructors already simplify on construction, so a freshly-built tree
// is its own fixed point; Simplify exists as the callable entry point for
// re-normalizing a tree assembled by hand (e.g. by a caller that pokes at
// Node fields directly, or across a standardization rewrite), and for the
// idempotence property (§8 P5): Simplify(Simplify(x)) == Simplify(x).
func Simplify(a *Arena, id NodeID) NodeID {
	memo := make(map[NodeID]NodeID)
	var walk func(NodeID) NodeID
	walk = func(id NodeID) NodeID {
		if out, ok := memo[id]; ok {
			return out
		}
		n := *a.Node(id)
		var out NodeID
		switch n.Code {
		case CodeConst:
			out = NewConst(a, n.Value)
		case CodeVar:
			out = NewVar(a, n.VarIndex)
		case CodeLowerBound:
			out = NewLowerBound(a, n.VarIndex)
		case CodeUpperBound:
			out = NewUpperBound(a, n.VarIndex)
		case CodeOpp:
			out = NewOpp(a, walk(n.Child))
		case CodeAbs:
			out = NewAbs(a, walk(n.Child))
		case CodeExp:
			out = NewExp(a, walk(n.Child))
		case CodeLog:
			out = NewLog(a, walk(n.Child))
		case CodeSin:
			out = NewSin(a, walk(n.Child))
		case CodeCos:
			out = NewCos(a, walk(n.Child))
		case CodeSum:
			args := make([]NodeID, len(n.Args))
			for i, c := range n.Args {
				args[i] = walk(c)
			}
			out = NewSum(a, args...)
		case CodeSub:
			out = NewSub(a, walk(n.A), walk(n.B))
		case CodeMul:
			args := make([]NodeID, len(n.Args))
			for i, c := range n.Args {
				args[i] = walk(c)
			}
			out = NewMul(a, args...)
		case CodeDiv:
			out = NewDiv(a, walk(n.A), walk(n.B))
		case CodePow:
			out = NewPow(a, walk(n.A), walk(n.B))
		case CodeMin:
			args := make([]NodeID, len(n.Args))
			for i, c := range n.Args {
				args[i] = walk(c)
			}
			out = NewMin(a, args...)
		case CodeMax:
			args := make([]NodeID, len(n.Args))
			for i, c := range n.Args {
				args[i] = walk(c)
			}
			out = NewMax(a, args...)
		case CodeGroup:
			nonlin := make([]NodeID, len(n.Nonlin))
			for i, c := range n.Nonlin {
				nonlin[i] = walk(c)
			}
			out = NewGroup(a, n.Const0, append([]LinTerm(nil), n.Lin...), nonlin)
		case CodeQuad:
			out = NewQuad(a, walk(n.Base), append([]QuadTerm(nil), n.Quad_...))
		case CodeRef:
			out = NewRef(a, walk(n.Target))
		default:
			out = id
		}
		memo[id] = out
		return out
	}
	return walk(id)
}
