// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lpref

import "gonum.org/v1/gonum/mat"

// convertToEqualities turns a problem with inequalities (G, h) -- and,
// optionally, pre-existing equalities (A, b) -- into one with only
// equalities and nonnegative slack columns, the form gonum's lp.Simplex
// expects. Adapted from jjhbw-GoMILP/subproblem.go's function of the same
// name and signature; Resolve always calls it with A=nil, b=nil since its
// own tableau only ever produces inequalities (column widths and cuts).
func convertToEqualities(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) (cNew []float64, aNew *mat.Dense, bNew []float64) {
	nVar := len(c)
	nCons := len(b)
	nIneq := len(h)

	nNewVar := nVar + nIneq
	nNewCons := nCons + nIneq

	cNew = make([]float64, nNewVar)
	copy(cNew, c)

	bNew = make([]float64, nNewCons)
	copy(bNew, b)
	copy(bNew[nCons:], h)

	aNew = mat.NewDense(nNewCons, nNewVar, nil)
	if A != nil {
		aNew.Slice(0, nCons, 0, nVar).(*mat.Dense).Copy(A)
	}
	if G != nil {
		aNew.Slice(nCons, nNewCons, 0, nVar).(*mat.Dense).Copy(G)
	}

	slack := aNew.Slice(nCons, nNewCons, nVar, nVar+nIneq).(*mat.Dense)
	for i := 0; i < nIneq; i++ {
		slack.Set(i, i, 1)
	}
	return
}
