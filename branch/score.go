// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package branch implements the branching objects of §4.H: infeasibility
// scoring, the five branch-point strategies, two-way branch execution,
// and the strong-branching hook. Grounded on Couenne's
// branch/CouenneObject.hpp, branch/CouenneVarObject.cpp,
// branch/infeasibility.cpp and branch/CouenneChooseStrong.cpp
// (original_source).
package branch

import (
	"math"

	"github.com/cpmech/gonlin/depgraph"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/variable"
)

// Weights are the four coefficients of the infeasibility score formula
// (§4.H): weiSum, weiAvg, weiMin, weiMax.
type Weights struct {
	Sum, Avg, Min, Max float64
}

// DefaultWeights mirrors Couenne's own default emphasis on the sum and
// the max contribution, the two terms its infeasibility.cpp weighs most.
func DefaultWeights() Weights {
	return Weights{Sum: 1, Avg: 0, Min: 0, Max: 1}
}

// AuxScore computes one Aux's infeasibility score at the current LP
// point x (§4.H): the equality violation `|x[w] - image(x)|`, apportioned
// across w's direct dependencies by the image's own sensitivity to each
// (|∂image/∂x_i|, since a dependency the image barely reacts to should
// not drive branching on it), then combined via the weighted
// sum/avg/min/max formula.
func AuxScore(a *expr.Arena, w int, image expr.NodeID, x, L, U []float64, wt Weights) float64 {
	violation := math.Abs(x[w] - a.Evaluate(image, x, L, U))
	if violation == 0 {
		return 0
	}

	deps := a.Deps(image)
	if len(deps) == 0 {
		return 0
	}

	contrib := make([]float64, len(deps))
	for i, d := range deps {
		deriv := math.Abs(a.Evaluate(a.Differentiate(image, d), x, L, U))
		contrib[i] = violation * deriv
	}

	sum, lo, hi := 0.0, contrib[0], contrib[0]
	for _, c := range contrib {
		sum += c
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	avg := sum / float64(len(contrib))
	return wt.Sum*sum + wt.Avg*avg + wt.Min*lo + wt.Max*hi
}

// OriginalScore aggregates the scores of every Aux that mentions x,
// directly or transitively, into a single branching priority for x
// itself (§4.H "for originals, score is aggregated over all auxiliaries
// that mention them"). feasTol-below variables report exactly zero (no
// branching candidate).
func OriginalScore(a *expr.Arena, store *variable.Store, graph *depgraph.Graph, x int, xpt, L, U []float64, wt Weights, feasTol float64) float64 {
	sum := 0.0
	for k := 0; k < store.Len(); k++ {
		v := store.Get(k)
		if !v.IsAux() {
			continue
		}
		if !graph.DependsOn(k, x, true) {
			continue
		}
		sum += AuxScore(a, k, v.Image, xpt, L, U, wt)
	}
	if sum < feasTol {
		return 0
	}
	return sum
}
