// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package couerr defines the error taxonomy shared by every component of
// the solver core: local, expected outcomes (NodeInfeasible, BoundViolation)
// that cause a node to be pruned, collaborator errors that are logged and
// swallowed (LPSolverError, NLPSolverError), and fatal invariant breaches
// that abort the process (CycleInDependencies, InternalInvariant).
package couerr

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind identifies one of the six error alternatives of the taxonomy.
type Kind int

const (
	// KindNodeInfeasible means propagation or OBBT proved the current
	// sub-box has no solution. Local: the node is pruned, never fatal.
	KindNodeInfeasible Kind = iota

	// KindBoundViolation means L[i] > U[i] + eps was detected during
	// propagation. Handled the same way as NodeInfeasible.
	KindBoundViolation

	// KindLPSolverError means the LP solver reported a non-optimal,
	// non-infeasible status where optimality was expected. Non-fatal:
	// the node is treated as abandoned, forcing branching.
	KindLPSolverError

	// KindNLPSolverError means the NLP solver failed; the heuristic
	// discards its candidate and continues.
	KindNLPSolverError

	// KindCycleInDependencies means standardization produced a cyclic
	// dependency. Fatal: aborts setup.
	KindCycleInDependencies

	// KindInternalInvariant means a tree that should be a Group/Var
	// after standardization is not, or some other invariant broke.
	// Fatal.
	KindInternalInvariant
)

func (k Kind) String() string {
	switch k {
	case KindNodeInfeasible:
		return "NodeInfeasible"
	case KindBoundViolation:
		return "BoundViolation"
	case KindLPSolverError:
		return "LPSolverError"
	case KindNLPSolverError:
		return "NLPSolverError"
	case KindCycleInDependencies:
		return "CycleInDependencies"
	case KindInternalInvariant:
		return "InternalInvariant"
	}
	return "Unknown"
}

// Error is the single concrete error type for every alternative of the
// taxonomy; Kind discriminates which alternative applies. This mirrors the
// "sum-type alternative, not class hierarchy" guidance of the taxonomy: one
// type, a closed tag.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds a tagged error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: chk.Err(format, args...).Error()}
}

// Fatal panics for the two alternatives that must abort the process
// (CycleInDependencies, InternalInvariant); it is a programming error to
// call Fatal with any other Kind.
func Fatal(kind Kind, format string, args ...interface{}) {
	if kind != KindCycleInDependencies && kind != KindInternalInvariant {
		chk.Panic("couerr.Fatal called with non-fatal kind %s", kind)
	}
	chk.Panic("%s: "+format, append([]interface{}{kind}, args...)...)
}

// Is reports whether err is a tagged *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
