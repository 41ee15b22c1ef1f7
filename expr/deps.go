// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

// FillDeps walks id and adds the index of every variable it reads (via a
// Var, LowerBound or UpperBound leaf) into set. Used by the dependency
// graph (package depgraph) to compute an Aux's edge set from its image
// (§4.A, §4.C).
func (a *Arena) FillDeps(id NodeID, set map[int]bool) {
	n := a.Node(id)
	switch n.Code {
	case CodeConst:
	case CodeVar, CodeLowerBound, CodeUpperBound:
		set[n.VarIndex] = true
	case CodeOpp, CodeAbs, CodeExp, CodeLog, CodeSin, CodeCos:
		a.FillDeps(n.Child, set)
	case CodeSum, CodeMul, CodeMin, CodeMax:
		for _, c := range n.Args {
			a.FillDeps(c, set)
		}
	case CodeSub, CodeDiv, CodePow:
		a.FillDeps(n.A, set)
		a.FillDeps(n.B, set)
	case CodeGroup:
		for _, t := range n.Lin {
			set[t.Index] = true
		}
		for _, c := range n.Nonlin {
			a.FillDeps(c, set)
		}
	case CodeQuad:
		a.FillDeps(n.Base, set)
		for _, t := range n.Quad_ {
			set[t.I] = true
			set[t.J] = true
		}
	case CodeRef:
		a.FillDeps(n.Target, set)
	}
}

// Deps returns the set of variable indices id reads, as a sorted slice.
func (a *Arena) Deps(id NodeID) []int {
	set := make(map[int]bool)
	a.FillDeps(id, set)
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1] > out[j] {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}
