// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bbnode

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonlin/config"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/problem"
	"github.com/cpmech/gonlin/solverapi"
)

// fakeLP is a minimal solverapi.LPSolver test double whose Resolve
// always reports a fixed, precomputed column solution -- standing in
// for a real simplex solve so Node.Process's sequencing can be tested
// without a full LP backend.
type fakeLP struct {
	x       []float64
	obj     float64
	lower   []float64
	upper   []float64
	applied int
}

func (f *fakeLP) AddCol(lb, ub, coeff float64) int                  { return 0 }
func (f *fakeLP) AddRow(lb, ub float64, idx []int, c []float64) int { return 0 }
func (f *fakeLP) SetColLower(col int, lb float64)                  { f.lower[col] = lb }
func (f *fakeLP) SetColUpper(col int, ub float64)                  { f.upper[col] = ub }
func (f *fakeLP) SetObjective(coeffs []float64)                     {}
func (f *fakeLP) SetObjSense(sense int)                             {}
func (f *fakeLP) Resolve() error                                    { return nil }
func (f *fakeLP) GetColSolution() []float64                         { return f.x }
func (f *fakeLP) GetColLower() []float64                            { return f.lower }
func (f *fakeLP) GetColUpper() []float64                            { return f.upper }
func (f *fakeLP) GetReducedCost() []float64                         { return nil }
func (f *fakeLP) GetObjValue() float64                              { return f.obj }
func (f *fakeLP) IsProvenOptimal() bool                             { return true }
func (f *fakeLP) IsProvenPrimalInfeasible() bool                    { return false }
func (f *fakeLP) MarkHotStart()                                     {}
func (f *fakeLP) SolveFromHotStart() error                          { return nil }
func (f *fakeLP) UnmarkHotStart()                                   {}
func (f *fakeLP) GetWarmStart() interface{}                         { return nil }
func (f *fakeLP) SetWarmStart(state interface{})                    {}
func (f *fakeLP) Clone() solverapi.LPSolver                         { return f }
func (f *fakeLP) ApplyCuts(rows []solverapi.RowCut, cols []solverapi.ColCut) {
	f.applied += len(rows)
}

var _ solverapi.LPSolver = (*fakeLP)(nil)

func setup(tst *testing.T, isInteger bool) (*problem.Problem, *expr.Arena, int) {
	a := expr.NewArena()
	p := problem.New(a)
	x := p.AddVariable("x", 0, 5, isInteger)
	p.SetObjective(expr.NewVar(a, x), +1)
	if err := p.Standardize(); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	return p, a, x
}

// Test_bbnode01 checks that an LP solution already integer-feasible is
// reported as such, with no branching candidate.
func Test_bbnode01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bbnode01: integer-feasible LP point needs no branching")

	p, a, x := setup(tst, true)

	cfg := &config.Config{}
	cfg.SetDefault()
	cfg.PostProcess()
	cfg.OptimalityBT = false // isolate branching logic; obbt has its own package tests

	lp := &fakeLP{x: make([]float64, p.NumVars()), lower: make([]float64, p.NumVars()), upper: make([]float64, p.NumVars())}
	lp.x[x] = 2 // already integer

	n := New(a, p.Store, p.Graph, p.Order, cfg, lp, 0, true)
	status, err := n.Process()
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	if status != StatusIntegerFeasible {
		tst.Errorf("expected StatusIntegerFeasible, got %v", status)
	}
}

// Test_bbnode02 checks that a fractional integer LP value triggers
// StatusNeedsBranching with the fractional variable named as candidate.
func Test_bbnode02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bbnode02: fractional integer LP point needs branching")

	p, a, x := setup(tst, true)

	cfg := &config.Config{}
	cfg.SetDefault()
	cfg.PostProcess()
	cfg.OptimalityBT = false // isolate branching logic; obbt has its own package tests

	lp := &fakeLP{x: make([]float64, p.NumVars()), lower: make([]float64, p.NumVars()), upper: make([]float64, p.NumVars())}
	lp.x[x] = 2.5

	n := New(a, p.Store, p.Graph, p.Order, cfg, lp, 0, true)
	status, err := n.Process()
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	if status != StatusNeedsBranching {
		tst.Errorf("expected StatusNeedsBranching, got %v", status)
		return
	}
	if n.Candidate.Var != x {
		tst.Errorf("expected candidate variable %d, got %d", x, n.Candidate.Var)
	}
}

// Test_bbnode03 checks that FBBT-proven infeasibility at the root
// prunes the node before ever resolving the LP.
func Test_bbnode03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bbnode03: FBBT-proven infeasibility prunes the node")

	a := expr.NewArena()
	p := problem.New(a)
	x := p.AddVariable("x", -3, 3, false)
	sq := expr.NewPow(a, expr.NewVar(a, x), expr.NewConst(a, 2))
	p.SetObjective(sq, +1)
	if err := p.Standardize(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	w := p.Objective.Index
	p.Store.Get(w).UB = -1

	cfg := &config.Config{}
	cfg.SetDefault()
	cfg.PostProcess()
	cfg.OptimalityBT = false

	lp := &fakeLP{x: make([]float64, p.NumVars()), lower: make([]float64, p.NumVars()), upper: make([]float64, p.NumVars())}
	n := New(a, p.Store, p.Graph, p.Order, cfg, lp, 0, true)
	status, err := n.Process()
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	if status != StatusPruned {
		tst.Errorf("expected StatusPruned, got %v", status)
	}
}
