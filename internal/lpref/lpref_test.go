// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lpref

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonlin/solverapi"
)

// Test_lpref01 checks a plain box-constrained minimize: x in [0,5],
// min x, with a row cut x >= 2 tightening the feasible region.
func Test_lpref01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lpref01: minimize with a row cut")

	s := New()
	s.AddCol(0, 5, 1)
	s.SetObjSense(+1)
	if err := s.Resolve(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Scalar(tst, "min x over [0,5] is 0", 1e-9, s.GetObjValue(), 0)

	s.ApplyCuts([]solverapi.RowCut{{Lo: 2, Up: math.Inf(1), Idx: []int{0}, Coeff: []float64{1}}}, nil)
	if err := s.Resolve(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	if !s.IsProvenOptimal() {
		tst.Errorf("expected proven optimal")
		return
	}
	chk.Scalar(tst, "min x with x>=2 cut is 2", 1e-9, s.GetObjValue(), 2)
	chk.Scalar(tst, "x itself", 1e-9, s.GetColSolution()[0], 2)
}

// Test_lpref02 checks a maximize over two variables with a linear row.
func Test_lpref02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lpref02: maximize x+y subject to x+y<=4")

	s := New()
	x := s.AddCol(0, 10, 1)
	y := s.AddCol(0, 10, 1)
	s.SetObjSense(-1)
	s.AddRow(math.Inf(-1), 4, []int{x, y}, []float64{1, 1})
	if err := s.Resolve(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Scalar(tst, "max x+y s.t. x+y<=4 is 4", 1e-9, s.GetObjValue(), 4)
}

// Test_lpref03 checks that a column whose bounds cross (lb>ub) is
// reported infeasible rather than as a Go error.
func Test_lpref03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lpref03: crossed column bounds report infeasible")

	s := New()
	s.AddCol(5, 2, 1)
	if err := s.Resolve(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	if !s.IsProvenPrimalInfeasible() {
		tst.Errorf("expected proven infeasible")
	}
}

// Test_lpref04 checks that Clone produces an independent copy: mutating
// the clone's bounds must not move the parent's.
func Test_lpref04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lpref04: clone is independent of its parent")

	s := New()
	s.AddCol(0, 5, 1)
	clone := s.Clone()
	clone.SetColUpper(0, 1)

	if s.GetColUpper()[0] != 5 {
		tst.Errorf("parent upper bound changed: got %v", s.GetColUpper()[0])
	}
	if clone.GetColUpper()[0] != 1 {
		tst.Errorf("clone upper bound did not change: got %v", clone.GetColUpper()[0])
	}
}

var _ solverapi.LPSolver = (*LP)(nil)
