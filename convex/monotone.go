// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"math"

	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
)

func unaryArg(s *Sample, n *expr.Node) (xi int, ok bool) {
	cn := s.Arena.Node(n.Child)
	if cn.Code != expr.CodeVar {
		return 0, false
	}
	return cn.VarIndex, true
}

// expEnvelope implements "w = exp(x)" (§4.G): convex, so tangents at the
// sampled points underestimate and the secant between (L,e^L) and
// (U,e^U) overestimates.
func expEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	xi, ok := unaryArg(s, n)
	if !ok {
		return nil
	}
	v := s.Store.Get(xi)
	l, u := v.LB, v.UB
	var cuts []solverapi.RowCut

	if u > l {
		fl, fu := math.Exp(l), math.Exp(u)
		a := (fu - fl) / (u - l)
		cuts = append(cuts, rowLE(w, xi, a, fl-a*l))
	}
	for _, p := range samplePoints(s.Cfg, l, u, valueAt(s, xi)) {
		fp, dfp := math.Exp(p), math.Exp(p)
		cuts = append(cuts, rowGE(w, xi, dfp, fp-dfp*p))
	}
	return cuts
}

// logEnvelope implements "w = log(x)" (§4.G): concave, the dual of exp --
// tangents overestimate, the secant underestimates.
func logEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	xi, ok := unaryArg(s, n)
	if !ok {
		return nil
	}
	v := s.Store.Get(xi)
	l, u := v.LB, v.UB
	if l <= 0 {
		l = 1e-12 // log's domain guard; FBBT should already keep L>0 here
	}
	var cuts []solverapi.RowCut

	if u > l {
		fl, fu := math.Log(l), math.Log(u)
		a := (fu - fl) / (u - l)
		cuts = append(cuts, rowGE(w, xi, a, fl-a*l))
	}
	for _, p := range samplePoints(s.Cfg, l, u, valueAt(s, xi)) {
		if p <= 0 {
			p = l
		}
		fp, dfp := math.Log(p), 1/p
		cuts = append(cuts, rowLE(w, xi, dfp, fp-dfp*p))
	}
	return cuts
}
