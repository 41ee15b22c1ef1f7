// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variable

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonlin/expr"
)

func Test_variable01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("variable01: originals and Aux interning")

	a := expr.NewArena()
	s := NewStore(a)

	x := s.AddOriginal("x", -2, 5, false)
	y := s.AddOriginal("y", 0, 10, false)
	if x != 0 || y != 1 {
		tst.Errorf("original variables should be indexed in insertion order")
	}

	image := expr.NewMul(a, expr.NewVar(a, x), expr.NewVar(a, y))
	w1 := s.InternAux(image, 1, 1)
	w2 := s.InternAux(image, 1, 1)
	if w1 != w2 {
		tst.Errorf("interning the same image twice should return the same Aux index")
	}
	if s.Get(w1).Mult != 2 {
		tst.Errorf("re-interning the same image should accumulate Mult, got %d", s.Get(w1).Mult)
	}
	if !s.Get(w1).IsAux() {
		tst.Errorf("w1 should report IsAux() true")
	}
	if s.Get(x).IsAux() {
		tst.Errorf("x should report IsAux() false")
	}

	image2 := expr.NewMul(a, expr.NewVar(a, y), expr.NewVar(a, x))
	w3 := s.InternAux(image2, 1, 1)
	if w3 != w1 {
		tst.Errorf("x*y and y*x should intern to the same image (commutative Mul) and the same Aux")
	}

	chk.Scalar(tst, "w1 lower bound", 1e-9, s.Get(w1).LB, -20)
	chk.Scalar(tst, "w1 upper bound", 1e-9, s.Get(w1).UB, 50)
}
