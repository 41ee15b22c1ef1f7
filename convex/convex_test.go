// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonlin/config"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/problem"
)

func evalRow(c []float64, idx []int, x []float64) float64 {
	s := 0.0
	for i, j := range idx {
		s += c[i] * x[j]
	}
	return s
}

// Test_convex01 checks that the square envelope's tangent at the current
// point underestimates x^2 there exactly (tangency).
func Test_convex01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("convex01: square envelope tangency")

	a := expr.NewArena()
	p := problem.New(a)
	x := p.AddVariable("x", -2, 3, false)
	sq := expr.NewPow(a, expr.NewVar(a, x), expr.NewConst(a, 2))
	p.SetObjective(sq, +1)
	if err := p.Standardize(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	w := p.Objective.Index

	cfg := &config.Config{}
	cfg.SetDefault()
	xpoint := make([]float64, p.NumVars())
	xpoint[x] = 1.0 // current LP value of x

	s := &Sample{Arena: a, Store: p.Store, X: xpoint, Cfg: cfg}
	cuts := Generate(s, w, p.Store.Get(w).Image)
	if len(cuts) == 0 {
		tst.Errorf("expected at least one cut")
		return
	}

	// tangent: w >= 2*1*x - 1 => at (w,x)=(1,1) the row should hold with
	// equality (the tangency point).
	point := make([]float64, p.NumVars())
	point[w], point[x] = 1, 1
	foundTangent := false
	for _, c := range cuts {
		if c.Up >= posInf/2 { // a ">=" row (Up==+Inf sentinel)
			val := evalRow(c.Coeff, c.Idx, point)
			if val >= c.Lo-1e-9 && val <= c.Lo+1e-6 {
				foundTangent = true
			}
		}
	}
	if !foundTangent {
		tst.Errorf("tangent at x0=1 should be tight there (w=1,x=1 satisfies with equality)")
	}
}

// Test_convex02 checks the bilinear McCormick envelope: at the box corner
// (x,y)=(-2,0) the point w == x*y satisfies every facet and makes at
// least one tight.
func Test_convex02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("convex02: McCormick envelope exact at a box corner")

	a := expr.NewArena()
	p := problem.New(a)
	x := p.AddVariable("x", -2, 3, false)
	y := p.AddVariable("y", 0, 5, false)
	xy := expr.NewMul(a, expr.NewVar(a, x), expr.NewVar(a, y))
	p.SetObjective(xy, +1)
	if err := p.Standardize(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	w := p.Objective.Index

	cfg := &config.Config{}
	cfg.SetDefault()
	xpoint := make([]float64, p.NumVars())
	s := &Sample{Arena: a, Store: p.Store, X: xpoint, Cfg: cfg}
	cuts := Generate(s, w, p.Store.Get(w).Image)
	if len(cuts) != 4 {
		tst.Errorf("expected 4 McCormick facets, got %d", len(cuts))
		return
	}

	// at corner (x,y)=(-2,0): w should equal x*y=0 and satisfy every facet
	// with at least one held at equality (the defining corner property).
	xv, yv := -2.0, 0.0
	wv := xv * yv
	point := map[int]float64{w: wv, x: xv, y: yv}
	tightCount := 0
	for _, c := range cuts {
		val := 0.0
		for i, idx := range c.Idx {
			val += c.Coeff[i] * point[idx]
		}
		if val < c.Lo-1e-7 || val > c.Up+1e-7 {
			tst.Errorf("corner point violates a McCormick facet: val=%.6g lo=%.6g up=%.6g", val, c.Lo, c.Up)
		}
		if (c.Up < posInf/2 && val > c.Up-1e-7) || (c.Lo > negInf/2 && val < c.Lo+1e-7) {
			tightCount++
		}
	}
	if tightCount == 0 {
		tst.Errorf("at least one facet should be tight at a box corner")
	}
}

// Test_convex03 checks RootCut: a linear constraint body gets the direct
// inequality, never a nonlinear envelope.
func Test_convex03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("convex03: linear body uses the direct root cut")

	a := expr.NewArena()
	p := problem.New(a)
	x := p.AddVariable("x", -5, 5, false)
	y := p.AddVariable("y", -5, 5, false)
	body := expr.NewSum(a, expr.NewVar(a, x), expr.NewVar(a, y))
	p.SetObjective(body, +1)
	p.AddConstraint(body, -1, 1)
	if err := p.Standardize(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	image := p.Store.Get(p.Constraints[0].Index).Image
	cut, ok := RootCut(&Sample{Arena: a, Store: p.Store}, image, p.Constraints[0].Lo, p.Constraints[0].Up)
	if !ok {
		tst.Errorf("expected RootCut to handle a linear body directly")
		return
	}
	chk.Scalar(tst, "root cut lower", 1e-9, cut.Lo, -1)
	chk.Scalar(tst, "root cut upper", 1e-9, cut.Up, 1)
}

// Test_convex04 checks that a Group aux summing two nonlinear residuals
// (x²+y², standardized as a Group over two Quad auxs) gets the exact
// linking equality from Generate, not a dropped/empty cut list -- the
// sum itself is linear in {w, w_x2, w_y2} even though Classify reports
// the Group Nonlinear overall.
func Test_convex04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("convex04: group aux over two nonlinear residuals links exactly")

	a := expr.NewArena()
	p := problem.New(a)
	x := p.AddVariable("x", -1, 1, false)
	y := p.AddVariable("y", -1, 1, false)

	x2 := expr.NewPow(a, expr.NewVar(a, x), expr.NewConst(a, 2))
	y2 := expr.NewPow(a, expr.NewVar(a, y), expr.NewConst(a, 2))
	body := expr.NewSum(a, x2, y2)
	p.AddConstraint(body, 0, 1)
	p.SetObjective(expr.NewVar(a, x), +1)
	if err := p.Standardize(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	w := p.Constraints[0].Index
	v := p.Store.Get(w)
	if a.Classify(v.Image) == expr.Linear {
		tst.Errorf("expected the group over two nonlinear residuals to classify Nonlinear")
		return
	}

	cfg := &config.Config{}
	cfg.SetDefault()
	s := &Sample{Arena: a, Store: p.Store, X: make([]float64, p.NumVars()), Cfg: cfg}
	cuts := Generate(s, w, v.Image)
	if len(cuts) != 1 {
		tst.Errorf("expected exactly one linking equality row, got %d", len(cuts))
		return
	}
	chk.Scalar(tst, "linking row is an equality", 1e-9, cuts[0].Lo, cuts[0].Up)

	// the row must hold at any point where w equals the sum of the
	// other auxs it names (its own dependencies, each coefficient 1).
	point := make([]float64, p.NumVars())
	for _, idx := range cuts[0].Idx {
		if idx != w {
			point[idx] = 2
			point[w] += 2
		}
	}
	got := evalRow(cuts[0].Coeff, cuts[0].Idx, point)
	chk.Scalar(tst, "linking row holds at a consistent point", 1e-9, got, cuts[0].Lo)
}
