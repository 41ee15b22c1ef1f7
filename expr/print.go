// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"strings"
)

// Print renders id as an infix expression string, for diagnostics only
// (§4.A: printing stays off the hot path; Evaluate/Differentiate never
// call this).
func (a *Arena) Print(id NodeID) string {
	var b strings.Builder
	a.print(&b, id)
	return b.String()
}

func (a *Arena) print(b *strings.Builder, id NodeID) {
	n := a.Node(id)
	switch n.Code {
	case CodeConst:
		fmt.Fprintf(b, "%g", n.Value)
	case CodeVar:
		fmt.Fprintf(b, "x%d", n.VarIndex)
	case CodeLowerBound:
		fmt.Fprintf(b, "L%d", n.VarIndex)
	case CodeUpperBound:
		fmt.Fprintf(b, "U%d", n.VarIndex)
	case CodeOpp:
		b.WriteString("-(")
		a.print(b, n.Child)
		b.WriteByte(')')
	case CodeAbs:
		b.WriteByte('|')
		a.print(b, n.Child)
		b.WriteByte('|')
	case CodeExp:
		b.WriteString("exp(")
		a.print(b, n.Child)
		b.WriteByte(')')
	case CodeLog:
		b.WriteString("log(")
		a.print(b, n.Child)
		b.WriteByte(')')
	case CodeSin:
		b.WriteString("sin(")
		a.print(b, n.Child)
		b.WriteByte(')')
	case CodeCos:
		b.WriteString("cos(")
		a.print(b, n.Child)
		b.WriteByte(')')
	case CodeSum:
		a.printArgs(b, n.Args, " + ")
	case CodeSub:
		a.print(b, n.A)
		b.WriteString(" - ")
		a.print(b, n.B)
	case CodeMul:
		a.printArgs(b, n.Args, "*")
	case CodeDiv:
		a.print(b, n.A)
		b.WriteString(" / ")
		a.print(b, n.B)
	case CodePow:
		a.print(b, n.A)
		b.WriteString(" ^ ")
		a.print(b, n.B)
	case CodeMin:
		b.WriteString("min(")
		a.printArgs(b, n.Args, ", ")
		b.WriteByte(')')
	case CodeMax:
		b.WriteString("max(")
		a.printArgs(b, n.Args, ", ")
		b.WriteByte(')')
	case CodeGroup:
		fmt.Fprintf(b, "%g", n.Const0)
		for _, t := range n.Lin {
			fmt.Fprintf(b, " + %g*x%d", t.Coef, t.Index)
		}
		for _, c := range n.Nonlin {
			b.WriteString(" + ")
			a.print(b, c)
		}
	case CodeQuad:
		a.print(b, n.Base)
		for _, t := range n.Quad_ {
			fmt.Fprintf(b, " + %g*x%d*x%d", t.Q, t.I, t.J)
		}
	case CodeRef:
		b.WriteString("ref(")
		a.print(b, n.Target)
		b.WriteByte(')')
	default:
		b.WriteString("?")
	}
}

func (a *Arena) printArgs(b *strings.Builder, args []NodeID, sep string) {
	for i, id := range args {
		if i > 0 {
			b.WriteString(sep)
		}
		a.print(b, id)
	}
}
