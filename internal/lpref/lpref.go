// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lpref is the default solverapi.LPSolver: a small, pure-Go LP
// relaxation backend so the solver core has something to resolve against
// without a Clp/Cbc binding. Not in the teacher -- grounded on
// jjhbw-GoMILP/subproblem.go's combineInequalities/convertToEqualities
// shape (retrieval pack other_examples/), solved with gonum's simplex.
package lpref

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/cpmech/gonlin/solverapi"
)

// bigM stands in for an infinite bound: gonum's lp.Simplex needs a bounded
// standard-form tableau, unlike a real MIP backend's native free/one-sided
// columns. Only matters for originals FBBT/OBBT never finished tightening.
const bigM = 1.0e7

// LP is a reference solverapi.LPSolver. Every Resolve rebuilds and solves
// the tableau from scratch: gonum's lp.Simplex takes an initial basis as
// a fresh starting point, not a reusable incremental state, so there is
// no honest way to carry a warm/hot start across a rebuilt tableau here.
// MarkHotStart/SolveFromHotStart/UnmarkHotStart and GetWarmStart/
// SetWarmStart are accordingly all either no-ops or plain cold solves --
// correct, just not faster than a plain Resolve. A production backend
// (Clp via cgo, or similar) would make these genuinely incremental.
type LP struct {
	colLB, colUB, colObj []float64
	sense                int // +1 minimize, -1 maximize

	rowLo, rowUp []float64
	rowIdx       [][]int
	rowCoeff     [][]float64

	x          []float64
	obj        float64
	optimal    bool
	infeasible bool
}

// New returns an empty LP with no columns or rows, minimizing by default.
func New() *LP {
	return &LP{sense: +1}
}

func (s *LP) AddCol(lb, ub, coeff float64) int {
	s.colLB = append(s.colLB, lb)
	s.colUB = append(s.colUB, ub)
	s.colObj = append(s.colObj, coeff)
	return len(s.colLB) - 1
}

func (s *LP) AddRow(lb, ub float64, idx []int, coeff []float64) int {
	s.rowLo = append(s.rowLo, lb)
	s.rowUp = append(s.rowUp, ub)
	s.rowIdx = append(s.rowIdx, append([]int(nil), idx...))
	s.rowCoeff = append(s.rowCoeff, append([]float64(nil), coeff...))
	return len(s.rowLo) - 1
}

func (s *LP) SetColLower(col int, lb float64) { s.colLB[col] = lb }
func (s *LP) SetColUpper(col int, ub float64) { s.colUB[col] = ub }
func (s *LP) SetObjective(coeffs []float64)   { copy(s.colObj, coeffs) }
func (s *LP) SetObjSense(sense int)           { s.sense = sense }

func (s *LP) numCols() int { return len(s.colLB) }

func clampFinite(v, limit float64) float64 {
	if math.IsInf(v, 1) {
		return limit
	}
	if math.IsInf(v, -1) {
		return -limit
	}
	return v
}

// Resolve shifts every column to a zero lower bound (y = x - lb, the
// bounded-variable-to-standard-form substitution combineInequalities'
// caller assumes has already happened), folds column widths and row
// cuts into one inequality system G·y ≤ h, converts it to equalities
// with slack columns (convertToEqualities), and hands the result to
// gonum's simplex.
func (s *LP) Resolve() error {
	n := s.numCols()
	s.optimal, s.infeasible = false, false

	lb := make([]float64, n)
	width := make([]float64, n)
	for i := 0; i < n; i++ {
		lb[i] = clampFinite(s.colLB[i], -bigM)
		up := clampFinite(s.colUB[i], bigM)
		width[i] = up - lb[i]
		if width[i] < 0 {
			s.infeasible = true
			return nil
		}
	}

	c := make([]float64, n)
	constant := 0.0
	sense := float64(s.sense)
	for i := 0; i < n; i++ {
		c[i] = sense * s.colObj[i]
		constant += s.colObj[i] * lb[i]
	}

	var rows [][]float64
	var h []float64
	addRow := func(coeff []float64, rhs float64) {
		rows = append(rows, coeff)
		h = append(h, rhs)
	}
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		row[i] = 1
		addRow(row, width[i])
	}
	for r := range s.rowLo {
		row := make([]float64, n)
		shift := 0.0
		for k, j := range s.rowIdx[r] {
			row[j] = s.rowCoeff[r][k]
			shift += s.rowCoeff[r][k] * lb[j]
		}
		if !math.IsInf(s.rowUp[r], 1) {
			addRow(append([]float64(nil), row...), s.rowUp[r]-shift)
		}
		if !math.IsInf(s.rowLo[r], -1) {
			neg := make([]float64, n)
			for j, v := range row {
				neg[j] = -v
			}
			addRow(neg, -(s.rowLo[r] - shift))
		}
	}

	nIneq := len(rows)
	Gdata := make([]float64, nIneq*n)
	for r, row := range rows {
		copy(Gdata[r*n:(r+1)*n], row)
	}
	G := mat.NewDense(nIneq, n, Gdata)

	cNew, A, b := convertToEqualities(c, nil, nil, G, h)

	z, y, err := lp.Simplex(cNew, A, b, 0, nil)
	if err != nil {
		// both are expected, not-fatal outcomes (jjhbw-GoMILP/ilp.go's
		// expectedFailures map treats them the same way): this sub-box
		// has no feasible LP point.
		if errors.Is(err, lp.ErrInfeasible) || errors.Is(err, lp.ErrSingular) {
			s.infeasible = true
			return nil
		}
		return err
	}

	s.x = make([]float64, n)
	for i := 0; i < n; i++ {
		s.x[i] = y[i] + lb[i]
	}
	s.obj = sense*z + constant
	s.optimal = true
	return nil
}

func (s *LP) GetColSolution() []float64 { return s.x }
func (s *LP) GetColLower() []float64    { return s.colLB }
func (s *LP) GetColUpper() []float64    { return s.colUB }

// GetReducedCost always reports nil: gonum's lp.Simplex returns only the
// primal optimum, no dual/reduced-cost vector, so this reference backend
// cannot support §4.E's reduced-cost tightening pass. Callers already
// treat a nil result as "skip this pass" (bbnode.Node.Process step 6).
func (s *LP) GetReducedCost() []float64 { return nil }

func (s *LP) GetObjValue() float64 { return s.obj }

func (s *LP) IsProvenOptimal() bool          { return s.optimal }
func (s *LP) IsProvenPrimalInfeasible() bool { return s.infeasible }

func (s *LP) MarkHotStart()            {}
func (s *LP) SolveFromHotStart() error { return s.Resolve() }
func (s *LP) UnmarkHotStart()          {}

func (s *LP) GetWarmStart() interface{}      { return nil }
func (s *LP) SetWarmStart(state interface{}) {}

// Clone deep-copies every column/row array so mutating the clone (strong
// branching, branch.Execute's two children) never touches the parent.
func (s *LP) Clone() solverapi.LPSolver {
	c := &LP{
		sense:   s.sense,
		optimal: s.optimal, infeasible: s.infeasible, obj: s.obj,
	}
	c.colLB = append(c.colLB, s.colLB...)
	c.colUB = append(c.colUB, s.colUB...)
	c.colObj = append(c.colObj, s.colObj...)
	c.rowLo = append(c.rowLo, s.rowLo...)
	c.rowUp = append(c.rowUp, s.rowUp...)
	for _, idx := range s.rowIdx {
		c.rowIdx = append(c.rowIdx, append([]int(nil), idx...))
	}
	for _, coeff := range s.rowCoeff {
		c.rowCoeff = append(c.rowCoeff, append([]float64(nil), coeff...))
	}
	if s.x != nil {
		c.x = append(c.x, s.x...)
	}
	return c
}

// ApplyCuts installs row cuts as new rows and column cuts as tightened
// bounds, the two shapes convex.Refresh and bound/obbt ever produce.
func (s *LP) ApplyCuts(rows []solverapi.RowCut, cols []solverapi.ColCut) {
	for _, r := range rows {
		s.AddRow(r.Lo, r.Up, r.Idx, r.Coeff)
	}
	for _, c := range cols {
		if c.HasLower {
			s.SetColLower(c.Col, c.Lower)
		}
		if c.HasUpper {
			s.SetColUpper(c.Col, c.Upper)
		}
	}
}

var _ solverapi.LPSolver = (*LP)(nil)
