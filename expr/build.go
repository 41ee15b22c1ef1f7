// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "math"

// Each New* function is a smart constructor: it applies the operator's
// local simplification rule (§4.A "Simplification") and then interns the
// result, so structurally identical subtrees -- including ones that only
// became identical after simplifying -- always collapse onto one NodeID.
// Per the invariant in §4.A, simplification here only ever rewrites a tree
// into a syntactically equivalent one; it never widens or narrows a bound.

// NewConst returns (or reuses) the node for a numeric literal.
func NewConst(a *Arena, v float64) NodeID {
	return a.Intern(Node{Code: CodeConst, Value: v})
}

// NewVar returns (or reuses) a reference to variable i (original or aux).
func NewVar(a *Arena, i int) NodeID {
	return a.Intern(Node{Code: CodeVar, VarIndex: i})
}

// NewLowerBound returns the symbolic reference to L_i.
func NewLowerBound(a *Arena, i int) NodeID {
	return a.Intern(Node{Code: CodeLowerBound, VarIndex: i})
}

// NewUpperBound returns the symbolic reference to U_i.
func NewUpperBound(a *Arena, i int) NodeID {
	return a.Intern(Node{Code: CodeUpperBound, VarIndex: i})
}

// NewOpp builds -x, with "Opp twice is identity" and "Opp of a Sub swaps
// arguments" (§4.A).
func NewOpp(a *Arena, x NodeID) NodeID {
	nx := a.Node(x)
	switch nx.Code {
	case CodeConst:
		return NewConst(a, -nx.Value)
	case CodeOpp:
		return nx.Child
	case CodeSub:
		return NewSub(a, nx.B, nx.A)
	}
	return a.Intern(Node{Code: CodeOpp, Child: x})
}

// NewAbs builds |x|.
func NewAbs(a *Arena, x NodeID) NodeID {
	nx := a.Node(x)
	switch nx.Code {
	case CodeConst:
		return NewConst(a, math.Abs(nx.Value))
	case CodeAbs, CodeOpp:
		return NewAbs(a, nx.Child)
	}
	return a.Intern(Node{Code: CodeAbs, Child: x})
}

// NewExp builds exp(x).
func NewExp(a *Arena, x NodeID) NodeID {
	if nx := a.Node(x); nx.Code == CodeConst {
		return NewConst(a, math.Exp(nx.Value))
	}
	return a.Intern(Node{Code: CodeExp, Child: x})
}

// NewLog builds log(x).
func NewLog(a *Arena, x NodeID) NodeID {
	if nx := a.Node(x); nx.Code == CodeConst {
		return NewConst(a, math.Log(nx.Value))
	}
	return a.Intern(Node{Code: CodeLog, Child: x})
}

// NewSin builds sin(x).
func NewSin(a *Arena, x NodeID) NodeID {
	if nx := a.Node(x); nx.Code == CodeConst {
		return NewConst(a, math.Sin(nx.Value))
	}
	return a.Intern(Node{Code: CodeSin, Child: x})
}

// NewCos builds cos(x).
func NewCos(a *Arena, x NodeID) NodeID {
	if nx := a.Node(x); nx.Code == CodeConst {
		return NewConst(a, math.Cos(nx.Value))
	}
	return a.Intern(Node{Code: CodeCos, Child: x})
}

// NewSum builds the n-ary sum of args: flattens nested sums, drops zeros,
// merges constants into one term, and canonicalizes argument order.
func NewSum(a *Arena, args ...NodeID) NodeID {
	flat := make([]NodeID, 0, len(args))
	var constSum float64
	var hasConst bool
	var flatten func(id NodeID)
	flatten = func(id NodeID) {
		n := a.Node(id)
		switch n.Code {
		case CodeSum:
			for _, c := range n.Args {
				flatten(c)
			}
		case CodeConst:
			constSum += n.Value
			hasConst = true
		default:
			flat = append(flat, id)
		}
	}
	for _, id := range args {
		flatten(id)
	}
	if hasConst && constSum != 0 {
		flat = append(flat, NewConst(a, constSum))
	}
	switch len(flat) {
	case 0:
		return NewConst(a, 0)
	case 1:
		return flat[0]
	}
	a.sortArgs(flat)
	return a.Intern(Node{Code: CodeSum, Args: flat})
}

// NewSub builds a - b.
func NewSub(a *Arena, x, y NodeID) NodeID {
	nx, ny := a.Node(x), a.Node(y)
	if nx.Code == CodeConst && ny.Code == CodeConst {
		return NewConst(a, nx.Value-ny.Value)
	}
	if ny.Code == CodeConst && ny.Value == 0 {
		return x
	}
	if x == y {
		return NewConst(a, 0)
	}
	return a.Intern(Node{Code: CodeSub, A: x, B: y})
}

// NewMul builds the n-ary product of args: flattens nested products, drops
// ones, short-circuits a zero factor, merges constants, canonicalizes order.
func NewMul(a *Arena, args ...NodeID) NodeID {
	flat := make([]NodeID, 0, len(args))
	constProd := 1.0
	hasConst := false
	var flatten func(id NodeID) bool // returns false on zero short-circuit
	flatten = func(id NodeID) bool {
		n := a.Node(id)
		switch n.Code {
		case CodeMul:
			for _, c := range n.Args {
				if !flatten(c) {
					return false
				}
			}
		case CodeConst:
			if n.Value == 0 {
				return false
			}
			constProd *= n.Value
			hasConst = true
		default:
			flat = append(flat, id)
		}
		return true
	}
	for _, id := range args {
		if !flatten(id) {
			return NewConst(a, 0)
		}
	}
	if hasConst && constProd != 1 {
		flat = append(flat, NewConst(a, constProd))
	}
	switch len(flat) {
	case 0:
		return NewConst(a, constProd)
	case 1:
		return flat[0]
	}
	a.sortArgs(flat)
	return a.Intern(Node{Code: CodeMul, Args: flat})
}

// NewDiv builds x / y.
func NewDiv(a *Arena, x, y NodeID) NodeID {
	nx, ny := a.Node(x), a.Node(y)
	if ny.Code == CodeConst && ny.Value == 1 {
		return x
	}
	if nx.Code == CodeConst && ny.Code == CodeConst && ny.Value != 0 {
		return NewConst(a, nx.Value/ny.Value)
	}
	return a.Intern(Node{Code: CodeDiv, A: x, B: y})
}

// NewPow builds base^exp, collapsing x^0 -> 1 and x^1 -> x (§4.A; the
// x^2 -> "square" collapse is realized by the standardizer routing a
// constant exponent of 2 into a Quad entry, not by a dedicated node code).
func NewPow(a *Arena, base, exponent NodeID) NodeID {
	nb, ne := a.Node(base), a.Node(exponent)
	if ne.Code == CodeConst {
		switch ne.Value {
		case 0:
			return NewConst(a, 1)
		case 1:
			return base
		}
	}
	if nb.Code == CodeConst && ne.Code == CodeConst {
		return NewConst(a, math.Pow(nb.Value, ne.Value))
	}
	return a.Intern(Node{Code: CodePow, A: base, B: exponent})
}

// NewMin builds the n-ary min of args.
func NewMin(a *Arena, args ...NodeID) NodeID {
	return newMinMax(a, CodeMin, args)
}

// NewMax builds the n-ary max of args.
func NewMax(a *Arena, args ...NodeID) NodeID {
	return newMinMax(a, CodeMax, args)
}

func newMinMax(a *Arena, code Code, args []NodeID) NodeID {
	flat := make([]NodeID, 0, len(args))
	var flatten func(id NodeID)
	flatten = func(id NodeID) {
		n := a.Node(id)
		if n.Code == code {
			for _, c := range n.Args {
				flatten(c)
			}
			return
		}
		flat = append(flat, id)
	}
	for _, id := range args {
		flatten(id)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	a.sortArgs(flat)
	return a.Intern(Node{Code: code, Args: flat})
}

// NewGroup builds c0 + sum(a_i x_i) + sum(nonlinear args), canonicalizing
// the linear part (sorted by index, duplicates merged, zero coefficients
// dropped) and the nonlinear residual's order.
func NewGroup(a *Arena, const0 float64, lin []LinTerm, nonlin []NodeID) NodeID {
	merged := mergeLin(lin)
	sortedNonlin := append([]NodeID(nil), nonlin...)
	a.sortArgs(sortedNonlin)
	return a.Intern(Node{Code: CodeGroup, Const0: const0, Lin: merged, Nonlin: sortedNonlin})
}

func mergeLin(lin []LinTerm) []LinTerm {
	byIdx := make(map[int]float64, len(lin))
	order := make([]int, 0, len(lin))
	for _, t := range lin {
		if _, seen := byIdx[t.Index]; !seen {
			order = append(order, t.Index)
		}
		byIdx[t.Index] += t.Coef
	}
	out := make([]LinTerm, 0, len(order))
	for _, idx := range order {
		if c := byIdx[idx]; c != 0 {
			out = append(out, LinTerm{Index: idx, Coef: c})
		}
	}
	sortLin(out)
	return out
}

func sortLin(lin []LinTerm) {
	for i := 1; i < len(lin); i++ {
		j := i
		for j > 0 && lin[j-1].Index > lin[j].Index {
			lin[j-1], lin[j] = lin[j], lin[j-1]
			j--
		}
	}
}

// NewQuad builds base (a Group) + sum(q_ij x_i x_j), canonicalizing the
// quadratic-term order (sorted by (i,j), duplicates merged, zero dropped).
func NewQuad(a *Arena, base NodeID, quad []QuadTerm) NodeID {
	merged := mergeQuad(quad)
	if len(merged) == 0 {
		return base
	}
	return a.Intern(Node{Code: CodeQuad, Base: base, Quad_: merged})
}

func mergeQuad(quad []QuadTerm) []QuadTerm {
	type key struct{ i, j int }
	byKey := make(map[key]float64, len(quad))
	order := make([]key, 0, len(quad))
	for _, t := range quad {
		i, j := t.I, t.J
		if j < i {
			i, j = j, i
		}
		k := key{i, j}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] += t.Q
	}
	out := make([]QuadTerm, 0, len(order))
	for _, k := range order {
		if q := byKey[k]; q != 0 {
			out = append(out, QuadTerm{I: k.i, J: k.j, Q: q})
		}
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && (out[j-1].I > out[j].I || (out[j-1].I == out[j].I && out[j-1].J > out[j].J)) {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// NewRef builds a non-owning view of target, collapsing chains of Ref so
// Ref(Ref(x)) == Ref(x).
func NewRef(a *Arena, target NodeID) NodeID {
	if n := a.Node(target); n.Code == CodeRef {
		target = n.Target
	}
	return a.Intern(Node{Code: CodeRef, Target: target})
}
