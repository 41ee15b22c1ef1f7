// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_expr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr01: interning and simplification")

	a := NewArena()
	x0 := NewVar(a, 0)
	x1 := NewVar(a, 0)
	if x0 != x1 {
		tst.Errorf("NewVar(0) should intern to the same NodeID twice")
	}

	s1 := NewSum(a, NewVar(a, 0), NewVar(a, 1))
	s2 := NewSum(a, NewVar(a, 1), NewVar(a, 0))
	io.Pforan("s1 = %v, s2 = %v\n", a.Print(s1), a.Print(s2))
	if s1 != s2 {
		tst.Errorf("commutative Sum should intern regardless of argument order")
	}

	xmx := NewSum(a, NewVar(a, 0), NewOpp(a, NewVar(a, 0)))
	if n := a.Node(xmx); n.Code != CodeSum || len(n.Args) != 2 {
		tst.Errorf("x + (-x) should stay a two-term Sum (NewSum drops zeros and merges constants, nothing more)")
	}

	dbl := NewOpp(a, NewOpp(a, NewVar(a, 0)))
	if dbl != NewVar(a, 0) {
		tst.Errorf("-(-x) should simplify to x")
	}
}

func Test_expr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr02: evaluate and differentiate")

	a := NewArena()
	x := NewVar(a, 0)
	y := NewVar(a, 1)

	// f = x^2 + 3*x*y
	f := NewSum(a, NewPow(a, x, NewConst(a, 2)), NewMul(a, NewConst(a, 3), x, y))

	X := []float64{2, 5}
	L := []float64{-10, -10}
	U := []float64{10, 10}
	val := a.Evaluate(f, X, L, U)
	chk.Scalar(tst, "f(2,5)", 1e-15, val, 4+3*2*5)

	dfdx := a.Differentiate(f, 0)
	chk.Scalar(tst, "df/dx at (2,5)", 1e-15, a.Evaluate(dfdx, X, L, U), 2*2+3*5)

	dfdy := a.Differentiate(f, 1)
	chk.Scalar(tst, "df/dy at (2,5)", 1e-15, a.Evaluate(dfdy, X, L, U), 3*2)
}

func Test_expr03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr03: bounds enclose evaluate (property P1)")

	a := NewArena()
	x := NewVar(a, 0)
	y := NewVar(a, 1)
	f := NewSum(a, NewPow(a, x, NewConst(a, 2)), NewMul(a, x, y))

	L := []float64{-3, -2}
	U := []float64{4, 5}
	lbExpr, ubExpr := a.Bounds(f)

	samples := [][]float64{{-3, -2}, {4, 5}, {0, 0}, {-1, 3}, {2, -1}}
	for _, X := range samples {
		v := a.Evaluate(f, X, L, U)
		lb := a.Evaluate(lbExpr, X, L, U)
		ub := a.Evaluate(ubExpr, X, L, U)
		if v < lb-1e-9 || v > ub+1e-9 {
			tst.Errorf("bound violated at x=%v: lb=%v value=%v ub=%v", X, lb, v, ub)
		}
	}
}

func Test_expr04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr04: simplify is idempotent (property P5)")

	a := NewArena()
	x := NewVar(a, 0)
	f := NewSum(a, NewConst(a, 0), NewMul(a, NewConst(a, 1), x), NewOpp(a, NewOpp(a, x)))

	once := Simplify(a, f)
	twice := Simplify(a, once)
	if once != twice {
		tst.Errorf("Simplify should be idempotent: once=%v twice=%v", a.Print(once), a.Print(twice))
	}
}

func Test_expr05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr05: deps and classify")

	a := NewArena()
	x := NewVar(a, 0)
	y := NewVar(a, 1)
	f := NewSum(a, NewMul(a, NewConst(a, 2), x), NewPow(a, y, NewConst(a, 2)))

	deps := a.Deps(f)
	chk.Ints(tst, "deps(f)", deps, []int{0, 1})

	if c := a.Classify(x); c != Linear {
		tst.Errorf("x should classify as Linear, got %v", c)
	}
	if c := a.Classify(NewPow(a, x, NewConst(a, 2))); c != Quadratic {
		tst.Errorf("x^2 should classify as Quadratic, got %v", c)
	}
	if c := a.Classify(NewSin(a, x)); c != Nonlinear {
		tst.Errorf("sin(x) should classify as Nonlinear, got %v", c)
	}
}

func Test_expr06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr06: group and quad canonicalization")

	a := NewArena()
	g1 := NewGroup(a, 1, []LinTerm{{Index: 1, Coef: 2}, {Index: 0, Coef: 3}}, nil)
	g2 := NewGroup(a, 1, []LinTerm{{Index: 0, Coef: 3}, {Index: 1, Coef: 2}}, nil)
	if g1 != g2 {
		tst.Errorf("Group linear terms should canonicalize regardless of input order")
	}

	q1 := NewQuad(a, g1, []QuadTerm{{I: 1, J: 0, Q: 5}})
	q2 := NewQuad(a, g1, []QuadTerm{{I: 0, J: 1, Q: 5}})
	if q1 != q2 {
		tst.Errorf("Quad terms should canonicalize (i,j) regardless of input order")
	}

	dropped := NewQuad(a, g1, []QuadTerm{{I: 0, J: 1, Q: 0}})
	if dropped != g1 {
		tst.Errorf("a zero-coefficient quadratic term should drop back to the base Group")
	}
}

func Test_expr07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr07: even-power bound avoids the dependency-problem blowup")

	a := NewArena()
	x := NewVar(a, 0)
	sq := NewPow(a, x, NewConst(a, 2))
	lbExpr, ubExpr := a.Bounds(sq)

	L := []float64{-2}
	U := []float64{3}
	lb := a.Evaluate(lbExpr, nil, L, U)
	ub := a.Evaluate(ubExpr, nil, L, U)
	chk.Scalar(tst, "lb(x^2) on [-2,3]", 1e-15, lb, 0)
	chk.Scalar(tst, "ub(x^2) on [-2,3]", 1e-15, ub, 9)

	L2 := []float64{1}
	U2 := []float64{3}
	lb2 := a.Evaluate(lbExpr, nil, L2, U2)
	ub2 := a.Evaluate(ubExpr, nil, L2, U2)
	chk.Scalar(tst, "lb(x^2) on [1,3]", 1e-15, lb2, 1)
	chk.Scalar(tst, "ub(x^2) on [1,3]", 1e-15, ub2, 9)
}

// Test_expr08 checks that a Quad term squaring a single variable
// (I==J) gets the same dependency-problem-free bound as a literal
// Pow(x,2) node, not the looser independent-product corner formula.
func Test_expr08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr08: Quad square term avoids the independent-product looseness")

	a := NewArena()
	q := NewQuad(a, NewConst(a, 0), []QuadTerm{{I: 0, J: 0, Q: 1}})
	lbExpr, ubExpr := a.Bounds(q)

	L := []float64{-1}
	U := []float64{1}
	lb := a.Evaluate(lbExpr, nil, L, U)
	ub := a.Evaluate(ubExpr, nil, L, U)
	chk.Scalar(tst, "lb(x*x) on [-1,1]", 1e-15, lb, 0)
	chk.Scalar(tst, "ub(x*x) on [-1,1]", 1e-15, ub, 1)
}
