// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr implements the typed expression DAG: the closed set of
// operator-node variants, their evaluation, differentiation, bound
// derivation, canonical comparison and local simplification.
//
// Nodes live in an arena (NodeID-indexed slice, per the design note on
// Clone/Ref nodes): Ref(id) is the non-owning "Clone" view, folding
// naturally into a repeated reference to one arena entry once structurally
// equal subtrees are interned onto the same id (see Arena.Intern).
package expr

// Code is the closed tag every node carries (data model invariant 1).
type Code int

const (
	CodeConst Code = iota
	CodeVar
	CodeLowerBound
	CodeUpperBound
	CodeOpp
	CodeAbs
	CodeExp
	CodeLog
	CodeSin
	CodeCos
	CodeSum
	CodeSub
	CodeMul
	CodeDiv
	CodePow
	CodeMin
	CodeMax
	CodeGroup
	CodeQuad
	CodeRef
)

func (c Code) String() string {
	switch c {
	case CodeConst:
		return "Const"
	case CodeVar:
		return "Var"
	case CodeLowerBound:
		return "LowerBound"
	case CodeUpperBound:
		return "UpperBound"
	case CodeOpp:
		return "Opp"
	case CodeAbs:
		return "Abs"
	case CodeExp:
		return "Exp"
	case CodeLog:
		return "Log"
	case CodeSin:
		return "Sin"
	case CodeCos:
		return "Cos"
	case CodeSum:
		return "Sum"
	case CodeSub:
		return "Sub"
	case CodeMul:
		return "Mul"
	case CodeDiv:
		return "Div"
	case CodePow:
		return "Pow"
	case CodeMin:
		return "Min"
	case CodeMax:
		return "Max"
	case CodeGroup:
		return "Group"
	case CodeQuad:
		return "Quad"
	case CodeRef:
		return "Ref"
	}
	return "?"
}

// commutative reports whether a node's Args list may be freely reordered.
// Nothing in the package calls it; Compare compares Args in their stored
// order.
func (c Code) commutative() bool {
	switch c {
	case CodeSum, CodeMul, CodeMin, CodeMax:
		return true
	}
	return false
}

// Linearity classifies a node for the standardization driver (§4.D).
type Linearity int

const (
	Zero Linearity = iota
	Constant
	Linear
	Quadratic
	Nonlinear
)

func (l Linearity) String() string {
	switch l {
	case Zero:
		return "Zero"
	case Constant:
		return "Constant"
	case Linear:
		return "Linear"
	case Quadratic:
		return "Quadratic"
	case Nonlinear:
		return "Nonlinear"
	}
	return "?"
}
