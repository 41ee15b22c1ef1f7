// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
)

// productCuts is the McCormick envelope of "target = Q*xi*xj" (§4.G
// "w = xy"): four facets, two underestimating and two overestimating the
// bilinear term, scaled (and direction-flipped if Q<0) by the term's
// coefficient.
func productCuts(s *Sample, target, xi, xj int, q float64) []solverapi.RowCut {
	vi, vj := s.Store.Get(xi), s.Store.Get(xj)
	li, ui := vi.LB, vi.UB
	lj, uj := vj.LB, vj.UB

	// unscaled McCormick facets target {>=,<=} a*xi + b*xj + c
	under1 := func() (a, b, c float64) { return lj, li, -li * lj }
	under2 := func() (a, b, c float64) { return uj, ui, -ui * uj }
	over1 := func() (a, b, c float64) { return uj, li, -li * uj }
	over2 := func() (a, b, c float64) { return lj, ui, -ui * lj }

	ge := rowGE
	le := rowLE
	if q < 0 {
		ge, le = le, ge
	}

	row := func(side func(w, idx int, a, b float64) solverapi.RowCut, a, b, c float64) solverapi.RowCut {
		r := side(target, xi, q*a, q*c)
		// side() only carries one extra variable (xi); fold in xj's term.
		r.Idx = append(r.Idx, xj)
		r.Coeff = append(r.Coeff, -q*b)
		return r
	}

	a1, b1, c1 := under1()
	a2, b2, c2 := under2()
	a3, b3, c3 := over1()
	a4, b4, c4 := over2()

	return []solverapi.RowCut{
		row(ge, a1, b1, c1),
		row(ge, a2, b2, c2),
		row(le, a3, b3, c3),
		row(le, a4, b4, c4),
	}
}

// divEnvelope implements "w = x/y" (§4.G): rewritten as x = w*y, the same
// McCormick facets apply to the triple (x, w, y) with w standing in for
// one of the two bilinear factors. If y straddles zero the relaxation is
// still valid (if weak) -- branching on y (§4.H) is what tightens it, not
// this package.
func divEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	an, bn := s.Arena.Node(n.A), s.Arena.Node(n.B)
	if an.Code != expr.CodeVar || bn.Code != expr.CodeVar {
		return nil
	}
	x, y := an.VarIndex, bn.VarIndex
	return productCuts(s, x, w, y, 1)
}
