// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"math"

	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
)

// absEnvelope implements "w = |x|" (§4.G): two exact supporting
// hyperplanes (w >= x, w >= -x, always valid since |x| is convex) plus
// the secant between (L,|L|) and (U,|U|) as the upper bound.
func absEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	xi, ok := unaryArg(s, n)
	if !ok {
		return nil
	}
	v := s.Store.Get(xi)
	l, u := v.LB, v.UB

	cuts := []solverapi.RowCut{
		rowGE(w, xi, 1, 0),
		rowGE(w, xi, -1, 0),
	}
	if u > l {
		al, au := math.Abs(l), math.Abs(u)
		a := (au - al) / (u - l)
		cuts = append(cuts, rowLE(w, xi, a, al-a*l))
	}
	return cuts
}
