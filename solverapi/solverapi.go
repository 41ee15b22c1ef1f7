// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solverapi declares the external collaborators the solver core
// consumes but never implements in full generality (§6): an LP solver, an
// NLP solver, the B&B tree manager's per-node record, and the cut shapes
// the core produces. Only internal/lpref provides a concrete LPSolver, as
// a reference/test double.
//
// Split into small, single-purpose interfaces -- grounded on
// fem/element.go's Elem/ElemConnector/ElemIntvars capability split -- so a
// caller that only needs, say, warm-starting does not have to satisfy the
// whole surface.
package solverapi

// LPSolver is the synchronous request/response LP relaxation backend
// every node resolves against (§6).
type LPSolver interface {
	AddCol(lb, ub, coeff float64) (col int)
	AddRow(lb, ub float64, idx []int, coeff []float64) (row int)
	SetColLower(col int, lb float64)
	SetColUpper(col int, ub float64)
	SetObjective(coeffs []float64)
	SetObjSense(sense int) // +1 minimize, -1 maximize

	Resolve() error

	GetColSolution() []float64
	GetColLower() []float64
	GetColUpper() []float64
	GetReducedCost() []float64
	GetObjValue() float64

	IsProvenOptimal() bool
	IsProvenPrimalInfeasible() bool

	MarkHotStart()
	SolveFromHotStart() error
	UnmarkHotStart()

	WarmStart
	Cloner
	CutApplier
}

// WarmStart captures and restores basis/solution state across resolves.
type WarmStart interface {
	GetWarmStart() interface{}
	SetWarmStart(state interface{})
}

// Cloner returns an independent copy of the solver's current state, used
// by strong branching and OBBT to probe without disturbing the caller.
type Cloner interface {
	Clone() LPSolver
}

// CutApplier installs a batch of row/column cuts into the solver.
type CutApplier interface {
	ApplyCuts(rows []RowCut, cols []ColCut)
}

// NLPSolver is the nonlinear solver the heuristic and (optionally) OBBT
// fall back on (§6).
type NLPSolver interface {
	InitialSolve() error
	Resolve() error
	SetColSolution(x []float64)
	SetColLower(col int, lb float64)
	SetColUpper(col int, ub float64)

	IsProvenOptimal() bool
	IsProvenPrimalInfeasible() bool
	IsAbandoned() bool
	IsIterationLimitReached() bool

	GetColSolution() []float64
	GetObjValue() float64

	WarmStart
}

// BranchingInformation is the per-node record the B&B tree manager hands
// the core at every invocation (§6 "OsiBranchingInformation-shaped").
type BranchingInformation struct {
	Solution []float64 // current LP point
	Lower    []float64 // current sub-box lower bounds
	Upper    []float64 // current sub-box upper bounds

	BeforeLower []float64 // parent-node lower bounds (for sparse chg[])
	BeforeUpper []float64 // parent-node upper bounds

	TimeRemaining float64
	Cutoff        float64
	Incumbent     float64 // best known objective value, +Inf if none yet
}

// RowCut is a·x ⋚ rhs for a sparse row of coefficients, tagged Local (only
// valid in the current sub-box) or global (§4.G "Cut assembly").
type RowCut struct {
	Lo, Up float64
	Idx    []int
	Coeff  []float64
	Local  bool
}

// ColCut tightens one variable's bound, tagged Local the same way RowCut is.
type ColCut struct {
	Col      int
	HasLower bool
	Lower    float64
	HasUpper bool
	Upper    float64
	Local    bool
}
