// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package domain holds the mutable numeric state of one branch-and-bound
// node: the current point and the current variable bounds. Grounded on
// fem/domain.go's Solution (flat Y/Dydt/D2ydt2 arrays scoped to one stage);
// here the "stage" is a B&B node, and the push/pop stack replaces the
// source's implicit per-stage re-allocation with an explicit save/restore
// pair cheap enough to call once per strong-branching probe or OBBT solve.
package domain

// Domain holds the current value (X) and bound (L, U) arrays across every
// variable (original and auxiliary), plus a scratch stack of snapshots for
// operations that must try something and then back out (strong branching,
// OBBT per-variable probes, §4.F, §4.H).
type Domain struct {
	X []float64 // current point
	L []float64 // current lower bounds
	U []float64 // current upper bounds

	stack []snapshot
}

type snapshot struct {
	x, l, u []float64
}

// New returns a Domain sized for n variables, bounds initialized from lb/ub.
func New(lb, ub []float64) *Domain {
	n := len(lb)
	d := &Domain{
		X: make([]float64, n),
		L: append([]float64(nil), lb...),
		U: append([]float64(nil), ub...),
	}
	for i := range d.X {
		d.X[i] = midpoint(lb[i], ub[i])
	}
	return d
}

func midpoint(lo, hi float64) float64 {
	if lo == negInf || hi == posInf {
		return 0
	}
	return 0.5 * (lo + hi)
}

const (
	negInf = -posInf
	posInf = 1e300 // finite sentinel; midpoint treats a bound at it as "unbounded"
)

// Len returns the number of variables.
func (d *Domain) Len() int { return len(d.X) }

// Push saves a deep copy of the current (X, L, U) onto the scratch stack.
func (d *Domain) Push() {
	d.stack = append(d.stack, snapshot{
		x: append([]float64(nil), d.X...),
		l: append([]float64(nil), d.L...),
		u: append([]float64(nil), d.U...),
	})
}

// Pop restores (X, L, U) from the most recent Push, discarding it.
func (d *Domain) Pop() {
	n := len(d.stack) - 1
	top := d.stack[n]
	copy(d.X, top.x)
	copy(d.L, top.l)
	copy(d.U, top.u)
	d.stack = d.stack[:n]
}

// Depth returns how many snapshots are currently pushed.
func (d *Domain) Depth() int { return len(d.stack) }

// Clone returns an independent deep copy of the domain, with an empty
// scratch stack (used when a branch spawns a child node, §4.H).
func (d *Domain) Clone() *Domain {
	return &Domain{
		X: append([]float64(nil), d.X...),
		L: append([]float64(nil), d.L...),
		U: append([]float64(nil), d.U...),
	}
}
