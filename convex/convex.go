// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convex generates valid linear cuts ("envelopes") that locally
// tighten an Aux's relaxation against the nonlinear operator it stands
// for (§4.G). Each generator in this package assumes the flat image
// shape standardization always produces -- an operator's immediate
// arguments are Var leaves, never arbitrary subtrees -- the same
// assumption bound/forward.go relies on, so the per-operator routines
// below read argument bounds directly off the variable.Store rather than
// walking expr.Bounds().
//
// Grounded on Couenne's convex/operators/conv-exprPow.cpp,
// convex/addEnvelope.cpp and convex/generateCuts.cpp (original_source)
// for the exact envelope formulas, and on msolid/elasticity.go's
// per-model dispatch-by-code-registry idiom (here, a map[expr.Code]
// generator instead of a map[string]kgcfactory).
package convex

import (
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gonlin/config"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
	"github.com/cpmech/gonlin/variable"
)

// Sample carries the information every per-operator envelope generator
// needs: the arena/store to read bounds from, the current LP point (for
// CURRENT_ONLY / AROUND_CURRENT sampling and the violated-only filter),
// and the convexification options.
type Sample struct {
	Arena *expr.Arena
	Store *variable.Store
	X     []float64 // current LP solution, indexed like the store
	Cfg   *config.Config
}

// generator produces the envelope cuts for one Aux w, given its image's
// Node (already looked up by the caller).
type generator func(s *Sample, w int, n *expr.Node) []solverapi.RowCut

var registry = map[expr.Code]generator{
	expr.CodeQuad:  quadEnvelope,
	expr.CodePow:   powEnvelope,
	expr.CodeDiv:   divEnvelope,
	expr.CodeExp:   expEnvelope,
	expr.CodeLog:   logEnvelope,
	expr.CodeAbs:   absEnvelope,
	expr.CodeMin:   minEnvelope,
	expr.CodeMax:   maxEnvelope,
	expr.CodeSin:   sinEnvelope,
	expr.CodeCos:   cosEnvelope,
	expr.CodeGroup: groupEnvelope,
}

// Generate dispatches to the registered envelope generator for w's image
// code. Returns nil for any code with no registered envelope (Const, Var,
// Sum, ...). A Group image gets its exact linking equality even when it
// is linear; Refresh skips linear images before calling Generate, and
// RootCut in assemble.go handles a linear body directly.
func Generate(s *Sample, w int, image expr.NodeID) []solverapi.RowCut {
	n := s.Arena.Node(image)
	gen, ok := registry[n.Code]
	if !ok {
		return nil
	}
	return gen(s, w, n)
}

// rowGE builds the row `w - a*x[idx] >= b`.
func rowGE(w, idx int, a, b float64) solverapi.RowCut {
	return solverapi.RowCut{Lo: b, Up: posInf, Idx: []int{w, idx}, Coeff: []float64{1, -a}, Local: true}
}

// rowLE builds the row `w - a*x[idx] <= b`.
func rowLE(w, idx int, a, b float64) solverapi.RowCut {
	return solverapi.RowCut{Lo: negInf, Up: b, Idx: []int{w, idx}, Coeff: []float64{1, -a}, Local: true}
}

const posInf = 1e300
const negInf = -posInf

// clamp restricts x0 to [l, u], the common guard every tangent-sampling
// routine needs against a stale or out-of-box LP point.
func clamp(x0, l, u float64) float64 {
	if x0 < l {
		return l
	}
	if x0 > u {
		return u
	}
	return x0
}

// samplePoints returns the tangent points the configured convexification
// mode prescribes over [l, u], anchored at x0 (§4.G sampling modes).
func samplePoints(cfg *config.Config, l, u, x0 float64) []float64 {
	x0 = clamp(x0, l, u)
	k := cfg.ConvexificationPoints
	if k < 1 {
		k = 1
	}
	switch cfg.ConvexificationType {
	case config.UniformGrid:
		if k == 1 {
			return []float64{x0}
		}
		return utl.LinSpace(l, u, k)
	case config.AroundCurrentPoint:
		half := k / 2
		if half < 1 {
			half = 1
		}
		pts := make([]float64, 0, 2*half)
		for i := 0; i < half; i++ {
			pts = append(pts, l+(x0-l)*float64(i)/float64(half))
		}
		for i := 1; i <= half; i++ {
			pts = append(pts, x0+(u-x0)*float64(i)/float64(half))
		}
		return pts
	default: // config.CurrentPointOnly
		return []float64{x0}
	}
}
