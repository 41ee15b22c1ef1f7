// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "github.com/cpmech/gosl/chk"

// NodeID is a tagged index into an Arena. NoNode marks the absence of a
// child (e.g. an Opp node only ever fills Child, never B).
type NodeID int

const NoNode NodeID = -1

// LinTerm is one (index, coefficient) entry of a Group's linear part.
type LinTerm struct {
	Index int
	Coef  float64
}

// QuadTerm is one (i, j, q_ij) entry of a Quad's bilinear part.
type QuadTerm struct {
	I, J int
	Q    float64
}

// Node is the tagged union for every variant of the closed expression set
// (data model §3). Only the fields relevant to Code are meaningful; the
// rest are zero. This flat-struct shape mirrors the scratchpad-record
// style of shp.Shape (teacher), which also keeps every geometry variant's
// fields side by side instead of behind a type switch of structs.
type Node struct {
	Code Code

	// CodeConst
	Value float64

	// CodeVar, CodeLowerBound, CodeUpperBound
	VarIndex int

	// CodeOpp, CodeAbs, CodeExp, CodeLog, CodeSin, CodeCos
	Child NodeID

	// CodeSum, CodeMul, CodeMin, CodeMax (n-ary, canonicalized order for
	// commutative ops)
	Args []NodeID

	// CodeSub (A - B), CodeDiv (A / B), CodePow (A ^ B)
	A, B NodeID

	// CodeGroup: c0 + sum(Lin) + sum(evaluate(Nonlin))
	Const0 float64
	Lin    []LinTerm
	Nonlin []NodeID

	// CodeQuad: Base (a Group id) + sum(Quad terms)
	Base  NodeID
	Quad_ []QuadTerm

	// CodeRef: non-owning view of another arena entry
	Target NodeID
}

// Arena owns every expression node created during one problem's lifetime.
// Arena indices replace the source's owning-pointer-plus-Clone scheme
// (design note §9): Ref(id) is the Clone view, and structural interning
// (Intern) folds syntactically equal subtrees onto one id so two "clones"
// of x+y become one Sum node referenced twice.
type Arena struct {
	nodes []Node
	index map[string]NodeID // canonical-key -> id, for Intern
}

// NewArena returns an empty, ready-to-use arena.
func NewArena() *Arena {
	return &Arena{index: make(map[string]NodeID)}
}

// Node returns a pointer to the node at id. Panics (InternalInvariant-class)
// on an out-of-range id; the arena is append-only so a valid id never
// becomes invalid.
func (a *Arena) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(a.nodes) {
		chk.Panic("expr: invalid NodeID %d", id)
	}
	return &a.nodes[id]
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int { return len(a.nodes) }

// alloc appends n and returns its fresh id. Never reused for interning:
// callers that want deduplication go through Intern.
func (a *Arena) alloc(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

// Intern returns the id of a node structurally equal (per Compare) to n,
// allocating a fresh one only on a miss. The key is built from the
// canonical (sorted, for commutative ops) key string produced by canonKey,
// which itself depends on already-interned child ids -- so children must
// be built (and interned, if they are themselves candidates for sharing)
// before their parent.
func (a *Arena) Intern(n Node) NodeID {
	key := canonKey(n)
	if id, ok := a.index[key]; ok {
		return id
	}
	id := a.alloc(n)
	a.index[key] = id
	return id
}
