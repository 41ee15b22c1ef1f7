// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"math"

	"github.com/cpmech/gonlin/couerr"
	"github.com/cpmech/gonlin/expr"
)

// Standardize runs the algorithm of §4.D: every common sub-expression and
// every constraint/objective body is reduced, bottom-up, to a reference to
// exactly one Aux variable; the dependency graph is then topologically
// ordered and every Aux's initial numeric bounds are seeded by evaluating
// its (symbolic) Bounds() pair; no initial value is set.
func (p *Problem) Standardize() error {
	p.Objective.Index = p.standardize(p.objBody)

	p.Constraints = make([]Constraint, len(p.conBody))
	for i, body := range p.conBody {
		p.Constraints[i] = Constraint{Lo: p.conLo[i], Up: p.conUp[i], Index: p.standardize(body)}
	}

	// A cycle here is couerr.KindCycleInDependencies -- fatal per §7, not a
	// per-node outcome; the caller must treat a non-nil error from
	// Standardize as aborting setup, never retry it.
	order, err := p.Graph.CreateOrder()
	if err != nil {
		return err
	}
	p.Order = order

	for _, k := range order {
		v := p.Store.Get(k)
		if !v.IsAux() {
			continue
		}
		lbExpr, ubExpr := p.Arena.Bounds(v.Image)
		L, U := p.Store.Bounds()
		lb := p.Arena.Evaluate(lbExpr, nil, L, U)
		ub := p.Arena.Evaluate(ubExpr, nil, L, U)
		if v.IsInteger {
			lb = math.Ceil(lb)
			ub = math.Floor(ub)
		}
		if lb > ub+1e-9 {
			return couerr.New(couerr.KindBoundViolation, "standardize: w%d has L=%.6g > U=%.6g", k, lb, ub)
		}
		v.LB, v.UB = lb, ub
	}

	p.standardized = true
	return nil
}

// standardize reduces id to a variable index, interning a fresh Aux only
// when id is not already a bare Var reference (§4.D).
func (p *Problem) standardize(id expr.NodeID) int {
	n := *p.Arena.Node(id)
	switch n.Code {
	case expr.CodeVar:
		return n.VarIndex

	case expr.CodeConst:
		return p.internAux(expr.NewConst(p.Arena, n.Value))

	case expr.CodeSum, expr.CodeSub, expr.CodeGroup:
		const0, lin, nonlin := p.flattenLinear(id)
		nonlinVars := make([]expr.NodeID, len(nonlin))
		for i, c := range nonlin {
			nonlinVars[i] = expr.NewVar(p.Arena, p.standardize(c))
		}
		return p.internAux(expr.NewGroup(p.Arena, const0, lin, nonlinVars))

	case expr.CodeMul:
		return p.standardizeMul(n.Args)

	case expr.CodePow:
		if ne := p.Arena.Node(n.B); ne.Code == expr.CodeConst {
			switch ne.Value {
			case 1:
				return p.standardize(n.A)
			case 2:
				base := p.standardize(n.A)
				return p.internAux(expr.NewQuad(p.Arena, expr.NewConst(p.Arena, 0),
					[]expr.QuadTerm{{I: base, J: base, Q: 1}}))
			}
			base := expr.NewVar(p.Arena, p.standardize(n.A))
			return p.internAux(expr.NewPow(p.Arena, base, n.B))
		}
		a := expr.NewVar(p.Arena, p.standardize(n.A))
		b := expr.NewVar(p.Arena, p.standardize(n.B))
		return p.internAux(expr.NewPow(p.Arena, a, b))

	case expr.CodeOpp:
		c := expr.NewVar(p.Arena, p.standardize(n.Child))
		return p.internAux(expr.NewOpp(p.Arena, c))
	case expr.CodeAbs:
		c := expr.NewVar(p.Arena, p.standardize(n.Child))
		return p.internAux(expr.NewAbs(p.Arena, c))
	case expr.CodeExp:
		c := expr.NewVar(p.Arena, p.standardize(n.Child))
		return p.internAux(expr.NewExp(p.Arena, c))
	case expr.CodeLog:
		c := expr.NewVar(p.Arena, p.standardize(n.Child))
		return p.internAux(expr.NewLog(p.Arena, c))
	case expr.CodeSin:
		c := expr.NewVar(p.Arena, p.standardize(n.Child))
		return p.internAux(expr.NewSin(p.Arena, c))
	case expr.CodeCos:
		c := expr.NewVar(p.Arena, p.standardize(n.Child))
		return p.internAux(expr.NewCos(p.Arena, c))

	case expr.CodeDiv:
		a := expr.NewVar(p.Arena, p.standardize(n.A))
		b := expr.NewVar(p.Arena, p.standardize(n.B))
		return p.internAux(expr.NewDiv(p.Arena, a, b))

	case expr.CodeMin:
		args := make([]expr.NodeID, len(n.Args))
		for i, c := range n.Args {
			args[i] = expr.NewVar(p.Arena, p.standardize(c))
		}
		return p.internAux(expr.NewMin(p.Arena, args...))
	case expr.CodeMax:
		args := make([]expr.NodeID, len(n.Args))
		for i, c := range n.Args {
			args[i] = expr.NewVar(p.Arena, p.standardize(c))
		}
		return p.internAux(expr.NewMax(p.Arena, args...))

	case expr.CodeQuad:
		return p.internAux(id)

	case expr.CodeRef:
		return p.standardize(n.Target)
	}
	return p.internAux(id)
}

// standardizeMul implements flattenMul (§4.D): reduce each factor to a
// variable index first, merge repeated indices into an (index, exponent)
// multiset, then: one distinct factor reduces directly (or folds into a
// Pow aux if its exponent > 1); two distinct factors (each exponent 1)
// become a Quad entry; three or more become a single Mul aux over the
// (possibly Pow-wrapped) per-factor variables.
func (p *Problem) standardizeMul(args []expr.NodeID) int {
	counts := make(map[int]int)
	var order []int
	for _, a := range args {
		idx := p.standardize(a)
		if _, seen := counts[idx]; !seen {
			order = append(order, idx)
		}
		counts[idx]++
	}

	if len(order) == 1 {
		idx := order[0]
		if counts[idx] == 1 {
			return idx
		}
		v := expr.NewVar(p.Arena, idx)
		return p.internAux(expr.NewPow(p.Arena, v, expr.NewConst(p.Arena, float64(counts[idx]))))
	}

	if len(order) == 2 && counts[order[0]] == 1 && counts[order[1]] == 1 {
		return p.internAux(expr.NewQuad(p.Arena, expr.NewConst(p.Arena, 0),
			[]expr.QuadTerm{{I: order[0], J: order[1], Q: 1}}))
	}

	factors := make([]expr.NodeID, len(order))
	for i, idx := range order {
		v := expr.NewVar(p.Arena, idx)
		if counts[idx] == 1 {
			factors[i] = v
		} else {
			factors[i] = expr.NewPow(p.Arena, v, expr.NewConst(p.Arena, float64(counts[idx])))
		}
	}
	return p.internAux(expr.NewMul(p.Arena, factors...))
}

// flattenLinear decomposes a Sum/Sub/Group tree into its constant, linear
// and nonlinear-residual parts (§4.D), recognizing a constant-scaled
// variable (c*x) inside a Mul as a linear term too.
func (p *Problem) flattenLinear(id expr.NodeID) (const0 float64, lin []expr.LinTerm, nonlin []expr.NodeID) {
	var walk func(id expr.NodeID, sign float64)
	walk = func(id expr.NodeID, sign float64) {
		n := p.Arena.Node(id)
		switch n.Code {
		case expr.CodeConst:
			const0 += sign * n.Value
		case expr.CodeVar:
			lin = append(lin, expr.LinTerm{Index: n.VarIndex, Coef: sign})
		case expr.CodeOpp:
			walk(n.Child, -sign)
		case expr.CodeSum:
			for _, c := range n.Args {
				walk(c, sign)
			}
		case expr.CodeSub:
			walk(n.A, sign)
			walk(n.B, -sign)
		case expr.CodeGroup:
			const0 += sign * n.Const0
			for _, t := range n.Lin {
				lin = append(lin, expr.LinTerm{Index: t.Index, Coef: sign * t.Coef})
			}
			for _, c := range n.Nonlin {
				nonlin = append(nonlin, signedNode(p.Arena, c, sign))
			}
		case expr.CodeMul:
			if idx, coef, ok := asScaledVar(p.Arena, n); ok {
				lin = append(lin, expr.LinTerm{Index: idx, Coef: sign * coef})
				return
			}
			nonlin = append(nonlin, signedNode(p.Arena, id, sign))
		default:
			nonlin = append(nonlin, signedNode(p.Arena, id, sign))
		}
	}
	walk(id, 1)
	return
}

func signedNode(a *expr.Arena, id expr.NodeID, sign float64) expr.NodeID {
	if sign < 0 {
		return expr.NewOpp(a, id)
	}
	return id
}

// asScaledVar recognizes a Mul node shaped exactly like const*var (in
// either argument order, the only shape build.go's NewMul produces after
// canonicalizing and merging constants for a two-factor product).
func asScaledVar(a *expr.Arena, n *expr.Node) (idx int, coef float64, ok bool) {
	if len(n.Args) != 2 {
		return 0, 0, false
	}
	c0, c1 := a.Node(n.Args[0]), a.Node(n.Args[1])
	if c0.Code == expr.CodeConst && c1.Code == expr.CodeVar {
		return c1.VarIndex, c0.Value, true
	}
	if c1.Code == expr.CodeConst && c0.Code == expr.CodeVar {
		return c0.VarIndex, c1.Value, true
	}
	return 0, 0, false
}

// internAux computes an image's rank from its dependencies' ranks and
// interns it as an Aux, registering the new vertex in the dependency
// graph (§4.B, §4.C).
func (p *Problem) internAux(image expr.NodeID) int {
	deps := p.Arena.Deps(image)
	rank := 0
	for _, d := range deps {
		if r := p.Store.Get(d).Rank; r+1 > rank {
			rank = r + 1
		}
	}
	idx := p.Store.InternAux(image, rank, 1)
	p.Graph.InsertAux(p.Store.Get(idx))
	return idx
}
