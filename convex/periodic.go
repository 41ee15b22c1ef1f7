// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"math"

	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
)

// sinEnvelope and cosEnvelope implement the periodic envelope of §4.G /
// §9: a tangent/secant pair is only a valid global bound within one arc
// of constant curvature. sin's inflection points (sin''=0) are at k*pi;
// cos's are at pi/2+k*pi. If [L,U] contains such a crossing, no single
// linear pair can bound the curve everywhere in range, and the
// envelope degenerates to the trivial box already carried by w's own
// [L[w],U[w]] (§9 "numerical care... degenerates to the trivial").
func sinEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	return periodicEnvelope(s, w, n, math.Sin, math.Cos, 0)
}

func cosEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	return periodicEnvelope(s, w, n, math.Cos, func(x float64) float64 { return -math.Sin(x) }, math.Pi/2)
}

// periodicEnvelope applies the midpoint-vs-chord curvature test: on an
// arc free of inflection points, f is either convex or concave
// throughout, so the secant between the endpoints and the tangent at the
// midpoint are -- in the right order -- valid global over/under
// estimators of that arc.
func periodicEnvelope(s *Sample, w int, n *expr.Node, f, fprime func(float64) float64, displacement float64) []solverapi.RowCut {
	xi, ok := unaryArg(s, n)
	if !ok {
		return nil
	}
	v := s.Store.Get(xi)
	l, u := v.LB, v.UB
	if u <= l {
		return nil
	}
	if hasInflectionInside(l, u, displacement) {
		return nil // more than one curvature arc: fall back to the trivial box
	}

	mid := (l + u) / 2
	fl, fu, fm := f(l), f(u), f(mid)
	chordAtMid := fl + (fu-fl)*(mid-l)/(u-l)

	secA := (fu - fl) / (u - l)
	secB := fl - secA*l

	dfm := fprime(mid)
	tanA := dfm
	tanB := fm - dfm*mid

	if fm >= chordAtMid {
		// concave arc here: secant underestimates, tangent overestimates.
		return []solverapi.RowCut{
			rowGE(w, xi, secA, secB),
			rowLE(w, xi, tanA, tanB),
		}
	}
	// convex arc: secant overestimates, tangent underestimates.
	return []solverapi.RowCut{
		rowLE(w, xi, secA, secB),
		rowGE(w, xi, tanA, tanB),
	}
}

// hasInflectionInside reports whether some displacement+k*pi lies
// strictly inside (l, u).
func hasInflectionInside(l, u, displacement float64) bool {
	k := math.Ceil((l - displacement) / math.Pi)
	x := displacement + k*math.Pi
	if x <= l {
		x += math.Pi // l is itself an inflection: test the next one
	}
	return x > l && x < u
}
