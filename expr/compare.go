// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"sort"
	"strconv"
	"strings"
)

// Compare implements the total order of §4.A: first by operator tag, then
// recursively by children. Commutative operators must have their argument
// list already sorted by this same order (build.go's smart constructors
// guarantee that) -- Compare itself does not re-sort, it only walks.
func (a *Arena) Compare(x, y NodeID) int {
	if x == y {
		return 0
	}
	nx, ny := a.Node(x), a.Node(y)
	if nx.Code != ny.Code {
		if nx.Code < ny.Code {
			return -1
		}
		return 1
	}
	switch nx.Code {
	case CodeConst:
		return cmpFloat(nx.Value, ny.Value)
	case CodeVar, CodeLowerBound, CodeUpperBound:
		return nx.VarIndex - ny.VarIndex
	case CodeOpp, CodeAbs, CodeExp, CodeLog, CodeSin, CodeCos:
		return a.Compare(nx.Child, ny.Child)
	case CodeSum, CodeMul, CodeMin, CodeMax:
		n := len(nx.Args)
		if len(ny.Args) < n {
			n = len(ny.Args)
		}
		for i := 0; i < n; i++ {
			if c := a.Compare(nx.Args[i], ny.Args[i]); c != 0 {
				return c
			}
		}
		return len(nx.Args) - len(ny.Args)
	case CodeSub, CodeDiv, CodePow:
		if c := a.Compare(nx.A, ny.A); c != 0 {
			return c
		}
		return a.Compare(nx.B, ny.B)
	case CodeGroup:
		if c := cmpFloat(nx.Const0, ny.Const0); c != 0 {
			return c
		}
		if c := cmpLin(nx.Lin, ny.Lin); c != 0 {
			return c
		}
		n := len(nx.Nonlin)
		if len(ny.Nonlin) < n {
			n = len(ny.Nonlin)
		}
		for i := 0; i < n; i++ {
			if c := a.Compare(nx.Nonlin[i], ny.Nonlin[i]); c != 0 {
				return c
			}
		}
		return len(nx.Nonlin) - len(ny.Nonlin)
	case CodeQuad:
		if c := a.Compare(nx.Base, ny.Base); c != 0 {
			return c
		}
		return cmpQuad(nx.Quad_, ny.Quad_)
	case CodeRef:
		return a.Compare(nx.Target, ny.Target)
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpLin(a, b []LinTerm) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].Index != b[i].Index {
			return a[i].Index - b[i].Index
		}
		if c := cmpFloat(a[i].Coef, b[i].Coef); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func cmpQuad(a, b []QuadTerm) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].I != b[i].I {
			return a[i].I - b[i].I
		}
		if a[i].J != b[i].J {
			return a[i].J - b[i].J
		}
		if c := cmpFloat(a[i].Q, b[i].Q); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// sortArgs canonicalizes a commutative operator's argument list in place.
func (a *Arena) sortArgs(args []NodeID) {
	sort.Slice(args, func(i, j int) bool { return a.Compare(args[i], args[j]) < 0 })
}

// canonKey builds a hash-consing key for Intern. Because every smart
// constructor in build.go interns its children before its parent, and
// sorts commutative argument lists with Compare first, identical keys can
// be computed from ids and leaf values alone -- no recursive structural
// walk is needed here (that is exactly the point of hash-consing).
func canonKey(n Node) string {
	var b strings.Builder
	b.WriteString(n.Code.String())
	b.WriteByte(':')
	switch n.Code {
	case CodeConst:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case CodeVar, CodeLowerBound, CodeUpperBound:
		b.WriteString(strconv.Itoa(n.VarIndex))
	case CodeOpp, CodeAbs, CodeExp, CodeLog, CodeSin, CodeCos:
		writeID(&b, n.Child)
	case CodeSum, CodeMul, CodeMin, CodeMax:
		for _, id := range n.Args {
			writeID(&b, id)
			b.WriteByte(',')
		}
	case CodeSub, CodeDiv, CodePow:
		writeID(&b, n.A)
		b.WriteByte(',')
		writeID(&b, n.B)
	case CodeGroup:
		b.WriteString(strconv.FormatFloat(n.Const0, 'g', -1, 64))
		for _, t := range n.Lin {
			b.WriteByte(';')
			b.WriteString(strconv.Itoa(t.Index))
			b.WriteByte(':')
			b.WriteString(strconv.FormatFloat(t.Coef, 'g', -1, 64))
		}
		for _, id := range n.Nonlin {
			b.WriteByte(',')
			writeID(&b, id)
		}
	case CodeQuad:
		writeID(&b, n.Base)
		for _, t := range n.Quad_ {
			b.WriteByte(';')
			b.WriteString(strconv.Itoa(t.I))
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(t.J))
			b.WriteByte(':')
			b.WriteString(strconv.FormatFloat(t.Q, 'g', -1, 64))
		}
	case CodeRef:
		writeID(&b, n.Target)
	}
	return b.String()
}

func writeID(b *strings.Builder, id NodeID) {
	b.WriteString(strconv.Itoa(int(id)))
}
