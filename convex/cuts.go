// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import "github.com/cpmech/gonlin/solverapi"

// CutPool accumulates row cuts across a node's lifetime in the flat
// (row, col, coefficient) triple layout Bonmin's TMINLP::addCuts/
// removeCuts use, rather than as a slice of solverapi.RowCut -- so that
// Remove's compaction is grounded directly on the source routine it
// replicates.
type CutPool struct {
	Lo, Up []float64 // one entry per row
	IRow   []int     // one entry per nonzero: which row it belongs to
	JCol   []int     // one entry per nonzero: variable index
	Elems  []float64 // one entry per nonzero: coefficient value
	NRows  int
}

// Add appends cuts as new rows, in order, at the end of the pool.
func (p *CutPool) Add(cuts []solverapi.RowCut) {
	base := p.NRows
	for i, c := range cuts {
		row := base + i
		p.Lo = append(p.Lo, c.Lo)
		p.Up = append(p.Up, c.Up)
		for j, idx := range c.Idx {
			p.IRow = append(p.IRow, row)
			p.JCol = append(p.JCol, idx)
			p.Elems = append(p.Elems, c.Coeff[j])
		}
	}
	p.NRows += len(cuts)
}

// Rows reconstructs the pool's current contents as a slice of RowCut,
// the shape solverapi.CutApplier.ApplyCuts and every other collaborator
// in this codebase consumes.
func (p *CutPool) Rows() []solverapi.RowCut {
	out := make([]solverapi.RowCut, p.NRows)
	for r := range out {
		out[r].Lo, out[r].Up = p.Lo[r], p.Up[r]
	}
	for i, r := range p.IRow {
		out[r].Idx = append(out[r].Idx, p.JCol[i])
		out[r].Coeff = append(out[r].Coeff, p.Elems[i])
	}
	return out
}

// Remove deletes the rows listed in toRemove and compacts IRow/JCol/
// Elems and Lo/Up, remapping every surviving row to its new, lower index
// (spec.md §9, Open Question 2, grounded on Bonmin's
// TMINLP::removeCuts).
//
// The source's own compaction loop has a transcription bug at its final
// assignment: it writes `elems_[iNew++] = jCol_[i]` -- the column index
// -- into the coefficient array, instead of `elems_[i]`, the actual
// coefficient value. This implementation writes the coefficient.
func (p *CutPool) Remove(toRemove []int) {
	if len(toRemove) == 0 {
		return
	}
	removed := make(map[int]bool, len(toRemove))
	for _, r := range toRemove {
		removed[r] = true
	}

	newLo := make([]float64, 0, p.NRows)
	newUp := make([]float64, 0, p.NRows)
	rowMap := make(map[int]int, p.NRows)
	for r := 0; r < p.NRows; r++ {
		if removed[r] {
			continue
		}
		rowMap[r] = len(newLo)
		newLo = append(newLo, p.Lo[r])
		newUp = append(newUp, p.Up[r])
	}

	newIRow := make([]int, 0, len(p.IRow))
	newJCol := make([]int, 0, len(p.JCol))
	newElems := make([]float64, 0, len(p.Elems))
	for i, r := range p.IRow {
		if removed[r] {
			continue
		}
		newIRow = append(newIRow, rowMap[r])
		newJCol = append(newJCol, p.JCol[i])
		newElems = append(newElems, p.Elems[i]) // the fixed line: the coefficient, not the column index
	}

	p.Lo, p.Up = newLo, newUp
	p.IRow, p.JCol, p.Elems = newIRow, newJCol, newElems
	p.NRows = len(newLo)
}

// RemoveLast drops the last number rows (TMINLP::removeLastCuts), the
// common case of discarding an entire round's worth of cuts on
// backtrack without needing to name individual row indices.
func (p *CutPool) RemoveLast(number int) {
	if number <= 0 {
		return
	}
	keep := p.NRows - number
	if keep < 0 {
		keep = 0
	}
	toRemove := make([]int, 0, number)
	for r := keep; r < p.NRows; r++ {
		toRemove = append(toRemove, r)
	}
	p.Remove(toRemove)
}
