// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"github.com/cpmech/gonlin/depgraph"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
)

// RootCut implements the "initial (root) convexification" rule of §4.G:
// a constraint/objective body standardized to an Aux whose image is
// already linear needs no envelope at all -- the direct inequality
// `lo <= image <= up` is emitted instead of a cut through w. ok is false
// when image is not linear and the caller should fall through to
// Generate's nonlinear envelopes.
func RootCut(s *Sample, image expr.NodeID, lo, up float64) (cut solverapi.RowCut, ok bool) {
	if s.Arena.Classify(image) != expr.Linear {
		return cut, false
	}
	n := s.Arena.Node(image)
	switch n.Code {
	case expr.CodeGroup:
		idx := make([]int, len(n.Lin))
		coeff := make([]float64, len(n.Lin))
		for i, t := range n.Lin {
			idx[i], coeff[i] = t.Index, t.Coef
		}
		return solverapi.RowCut{Lo: lo - n.Const0, Up: up - n.Const0, Idx: idx, Coeff: coeff}, true
	case expr.CodeVar:
		return solverapi.RowCut{Lo: lo, Up: up, Idx: []int{n.VarIndex}, Coeff: []float64{1}}, true
	}
	return cut, false
}

// Refresh regenerates envelope cuts for every Aux whose image is not
// already linear (§4.G "per-Aux whose image is not already linear").
// At the root every such Aux is refreshed; at deeper nodes only those
// that (transitively, via graph) depend on a variable flagged in
// changed are -- the sparse chg-array scheduling of "per-node refresh".
func Refresh(s *Sample, graph *depgraph.Graph, order []int, changed []int, isRoot bool) []solverapi.RowCut {
	var out []solverapi.RowCut
	for _, k := range order {
		v := s.Store.Get(k)
		if !v.IsAux() {
			continue
		}
		if s.Arena.Classify(v.Image) == expr.Linear {
			continue
		}
		if !isRoot && !dependsOnAny(graph, k, changed) {
			continue
		}
		out = append(out, Generate(s, k, v.Image)...)
	}
	return out
}

func dependsOnAny(graph *depgraph.Graph, w int, changed []int) bool {
	for _, c := range changed {
		if w == c || graph.DependsOn(w, c, true) {
			return true
		}
	}
	return false
}

// ViolatedOnly keeps only the cuts that the current LP point x violates
// by more than eps and drops the rest (§4.G "violated-only filter").
func ViolatedOnly(cuts []solverapi.RowCut, x []float64, eps float64) []solverapi.RowCut {
	out := cuts[:0]
	for _, c := range cuts {
		val := 0.0
		for i, idx := range c.Idx {
			val += c.Coeff[i] * x[idx]
		}
		if val < c.Lo-eps || val > c.Up+eps {
			out = append(out, c)
		}
	}
	return out
}
