// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
)

// maxEnvelope implements "w = max(args)" (§4.G): one cut w >= argument
// per argument (exact, since max is convex). It emits no upper cut on w;
// w's only upper bound is U[w] on its own box.
func maxEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	var cuts []solverapi.RowCut
	ubSum := 0.0
	for _, c := range n.Args {
		cn := s.Arena.Node(c)
		if cn.Code != expr.CodeVar {
			return cuts
		}
		cuts = append(cuts, rowGE(w, cn.VarIndex, 1, 0))
		ubSum = maxf(ubSum, s.Store.Get(cn.VarIndex).UB)
	}
	// upper bound: w <= max over args of U_k is not linear in general, so
	// the only sound global linear upper bound is the trivial one already
	// carried on w's own box (U[w] computed by forward propagation);
	// nothing sharper is added here.
	_ = ubSum
	return cuts
}

// minEnvelope implements "w = min(args)" (§4.G): w <= each argument
// (exact, since min is concave); the symmetric dual of maxEnvelope.
func minEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	var cuts []solverapi.RowCut
	for _, c := range n.Args {
		cn := s.Arena.Node(c)
		if cn.Code != expr.CodeVar {
			return cuts
		}
		cuts = append(cuts, rowLE(w, cn.VarIndex, 1, 0))
	}
	return cuts
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
