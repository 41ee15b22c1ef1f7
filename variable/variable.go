// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package variable holds the flat store of original and auxiliary
// variables a problem is standardized into (§3, §4.B). An Aux's metadata
// (its defining image, rank, multiplicity) lives on Variable rather than
// on a dedicated expr.Code: nothing else ever references an Aux as a
// subtree, only as a Var(i) leaf by index, so the metadata belongs to the
// variable slot, not the expression shape (see DESIGN.md).
package variable

import (
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gonlin/expr"
)

// Variable is one column of the standardized problem: either an original
// decision variable (Image == expr.NoNode) or an auxiliary defined by
// exactly one operator node (§3 "Aux" invariant).
type Variable struct {
	Index     int         // position in Store.Vars, matches expr.Var(Index)
	Name      string      // diagnostic label, not used for identity
	LB, UB    float64     // current numeric bounds, mutated during B&B
	IsInteger bool        // discrete variable
	Image     expr.NodeID // defining operator node; expr.NoNode for originals
	Rank      int         // longest dependency chain under Image (§3 "Rank")
	Mult      int         // number of subtrees this Aux replaced (§3 "mult")
}

// IsAux reports whether v was introduced by standardization.
func (v *Variable) IsAux() bool { return v.Image != expr.NoNode }

// Store owns every variable (original and auxiliary) of one problem.
type Store struct {
	Arena *expr.Arena
	Vars  []Variable

	// auxIndex maps an already-interned image NodeID to the Aux variable
	// it defines. Because expr.Arena.Intern hash-conses every node built
	// through the New* smart constructors, two structurally equal images
	// already share one NodeID before reaching here, so a plain map keyed
	// on NodeID is a correct structural-equality index -- no second
	// recursive expr.Compare walk is needed on this path.
	auxIndex map[expr.NodeID]int
}

// NewStore returns an empty store bound to arena.
func NewStore(arena *expr.Arena) *Store {
	return &Store{Arena: arena, auxIndex: make(map[expr.NodeID]int)}
}

// AddOriginal appends a new original decision variable and returns its
// index. lb/ub are the user-supplied bounds (§3).
func (s *Store) AddOriginal(name string, lb, ub float64, isInteger bool) int {
	idx := len(s.Vars)
	s.Vars = append(s.Vars, Variable{
		Index: idx, Name: name, LB: lb, UB: ub, IsInteger: isInteger, Image: expr.NoNode, Rank: 1,
	})
	return idx
}

// InternAux returns the index of the Aux defined by image, allocating a
// fresh variable only if no existing Aux already shares that (interned)
// image -- the "common sub-expression is standardized once" invariant of
// §4.D.
func (s *Store) InternAux(image expr.NodeID, rank, mult int) int {
	if idx, ok := s.auxIndex[image]; ok {
		s.Vars[idx].Mult += mult
		return idx
	}
	lbExpr, ubExpr := s.Arena.Bounds(image)
	L, U := s.numericL(), s.numericU()
	lb := s.Arena.Evaluate(lbExpr, nil, L, U)
	ub := s.Arena.Evaluate(ubExpr, nil, L, U)
	idx := len(s.Vars)
	s.Vars = append(s.Vars, Variable{
		Index: idx, Name: auxName(idx), LB: lb, UB: ub, Image: image, Rank: rank, Mult: mult,
	})
	s.auxIndex[image] = idx
	return idx
}

func auxName(idx int) string {
	return "w" + itoa(idx)
}

// itoa avoids importing strconv for a single call site used only to build
// a diagnostic label.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// numericL and numericU snapshot the current bound arrays, in variable
// index order, for evaluating a freshly built Aux's symbolic bound
// expressions against its arguments' bounds at standardization time
// (§4.D). Called only while interning a new Aux, never on the
// bound-tightening hot path.
func (s *Store) numericL() []float64 {
	out := make([]float64, len(s.Vars))
	for i := range s.Vars {
		out[i] = s.Vars[i].LB
	}
	return out
}

func (s *Store) numericU() []float64 {
	out := make([]float64, len(s.Vars))
	for i := range s.Vars {
		out[i] = s.Vars[i].UB
	}
	return out
}

// Len returns the number of variables (original + auxiliary).
func (s *Store) Len() int { return len(s.Vars) }

// Get returns a pointer to variable i, panicking (InternalInvariant-class)
// on an out-of-range index.
func (s *Store) Get(i int) *Variable {
	if i < 0 || i >= len(s.Vars) {
		utl.Panic("variable: index %d out of range (len=%d)", i, len(s.Vars))
	}
	return &s.Vars[i]
}

// Bounds returns the current (L, U) arrays across every variable, in
// index order -- the shape expr.Evaluate and expr.Bounds expect.
func (s *Store) Bounds() (L, U []float64) {
	return s.numericL(), s.numericU()
}
