// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obbt implements optimality-based bound tightening (§4.F): for
// each variable whose interval still has slack, solve min/max x_i against
// the LP relaxation plus an objective cutoff row, and tighten L[i]/U[i]
// when the LP proves a better bound. Grounded on Couenne's
// convex/obbt.cpp (original_source) for the per-variable probe shape and
// the scheduling rule.
package obbt

import (
	"math"
	"math/rand"

	"github.com/cpmech/gonlin/bound"
	"github.com/cpmech/gonlin/couerr"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
	"github.com/cpmech/gonlin/variable"
)

// Engine runs OBBT probes against one node's LP relaxation.
type Engine struct {
	Store   *variable.Store
	Arena   *expr.Arena
	Order   []int
	MaxIter int // passed through to the bound.Engine run after each probe

	// Exact marks variables whose current bound is already known tight
	// (e.g. proven by a prior OBBT pass), so repeated probing can be
	// skipped (§4.F "exact-bound flags").
	Exact []bool

	eps float64
}

// New returns an OBBT engine sized to store's current variable count.
func New(arena *expr.Arena, store *variable.Store, order []int, maxIter int, eps float64) *Engine {
	return &Engine{
		Store:   store,
		Arena:   arena,
		Order:   order,
		MaxIter: maxIter,
		Exact:   make([]bool, store.Len()),
		eps:     eps,
	}
}

// Run probes every non-exact variable's lower and upper bound by solving
// the relaxation with a degenerate single-variable objective, tightening
// whenever the LP's optimum beats the current bound by more than eps.
// lp must already carry the cutoff row / objective bound the caller wants
// enforced; Run only ever changes column bounds and re-solves.
func (e *Engine) Run(lp solverapi.LPSolver) (infeasible bool, err error) {
	obj := make([]float64, e.Store.Len())
	for i := 0; i < e.Store.Len(); i++ {
		if e.Exact[i] {
			continue
		}
		v := e.Store.Get(i)
		if v.UB-v.LB < e.eps {
			e.Exact[i] = true
			continue
		}

		improved, infeas, perr := e.probe(lp, i, obj)
		if perr != nil {
			return false, perr
		}
		if infeas {
			return true, nil
		}
		if !improved {
			continue
		}

		eng := bound.New(e.Arena, e.Store, e.Order, e.MaxIter)
		if perr := eng.Run(); perr != nil {
			if couerr.Is(perr, couerr.KindNodeInfeasible) {
				return true, nil
			}
			return false, perr
		}
	}
	return false, nil
}

// probe solves minimize x_i then maximize x_i over lp's current
// relaxation, tightening Store's L[i]/U[i] when the LP proves a better
// bound than the one already on file. Always probes against a Clone, per
// solverapi.Cloner's own contract ("used by strong branching and OBBT to
// probe without disturbing the caller") -- lp's objective/sense and the
// caller's pending Resolve must come back untouched, not left at
// whatever the last probed column happened to be.
func (e *Engine) probe(lp solverapi.LPSolver, i int, obj []float64) (improved, infeasible bool, err error) {
	v := e.Store.Get(i)
	probeLP := lp.Clone()

	for k := range obj {
		obj[k] = 0
	}
	obj[i] = 1

	probeLP.SetObjective(obj)

	probeLP.SetObjSense(+1) // minimize x_i
	if err := probeLP.Resolve(); err != nil {
		return false, false, couerr.New(couerr.KindLPSolverError, "obbt: min probe on column %d: %v", i, err)
	}
	if probeLP.IsProvenPrimalInfeasible() {
		return false, true, nil
	}
	if probeLP.IsProvenOptimal() {
		x := probeLP.GetObjValue()
		if x > v.LB+e.eps {
			v.LB = x
			improved = true
		}
	}

	probeLP.SetObjSense(-1) // maximize x_i
	if err := probeLP.Resolve(); err != nil {
		return improved, false, couerr.New(couerr.KindLPSolverError, "obbt: max probe on column %d: %v", i, err)
	}
	if probeLP.IsProvenPrimalInfeasible() {
		return improved, true, nil
	}
	if probeLP.IsProvenOptimal() {
		x := probeLP.GetObjValue()
		if x < v.UB-e.eps {
			v.UB = x
			improved = true
		}
	}

	if v.LB > v.UB+1e-9 {
		return improved, true, nil
	}
	return improved, false, nil
}

// ShouldRun implements the scheduling rule of §4.F: always at the root and
// at the first cut-generation pass of every node; always at depth <=
// logObbtLev; at greater depth, with probability 2^(logObbtLev-depth-1).
// logObbtLev < 0 disables the level cap (always run); logObbtLev == 0
// disables OBBT entirely.
func ShouldRun(depth int, isRoot, isFirstPass bool, logObbtLev int) bool {
	if logObbtLev == 0 {
		return false
	}
	if isRoot || isFirstPass {
		return true
	}
	if logObbtLev < 0 {
		return true
	}
	if depth <= logObbtLev {
		return true
	}
	p := math.Pow(2, float64(logObbtLev-depth-1))
	return rand.Float64() < p
}
