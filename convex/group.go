// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/solverapi"
)

// groupEnvelope implements the linking constraint for a Group aux whose
// Nonlin residual makes Arena.Classify report it Nonlinear (§4.D's Group
// shape: "c0 + Σ a_i x_i + Σ nonlinear args", where every nonlinear arg
// standardize.go ever installs is already a bare Var reference to some
// other, already-standardized Aux). Unlike every other registered
// generator this one is not an approximation of a curve: the combining
// operation is itself linear, so one equality row --
// `w - Σ a_i x_i - Σ (the nonlin vars) = c0` -- captures it exactly, and
// it never needs resampling the way a tangent/secant pair does.
func groupEnvelope(s *Sample, w int, n *expr.Node) []solverapi.RowCut {
	idx := make([]int, 0, 1+len(n.Lin)+len(n.Nonlin))
	coeff := make([]float64, 0, 1+len(n.Lin)+len(n.Nonlin))
	idx = append(idx, w)
	coeff = append(coeff, 1)
	for _, t := range n.Lin {
		idx = append(idx, t.Index)
		coeff = append(coeff, -t.Coef)
	}
	for _, c := range n.Nonlin {
		v := s.Arena.Node(c)
		if v.Code != expr.CodeVar {
			continue // flat-image invariant: standardize always wraps residuals as Var
		}
		idx = append(idx, v.VarIndex)
		coeff = append(coeff, -1)
	}
	return []solverapi.RowCut{{Lo: n.Const0, Up: n.Const0, Idx: idx, Coeff: coeff}}
}
