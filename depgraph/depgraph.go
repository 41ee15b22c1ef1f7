// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package depgraph builds the dependency graph over variable indices
// (§4.C) and computes the topological order standardization, propagation
// and convexification all walk. Grounded on Couenne's
// problem/depGraph/depGraph.cpp: a DepNode per variable, an edge set to
// the variables its Aux image reads, and an in-progress sentinel during
// DFS to detect a cycle instead of recursing forever.
package depgraph

import (
	"fmt"

	"github.com/cpmech/gonlin/couerr"
	"github.com/cpmech/gonlin/expr"
	"github.com/cpmech/gonlin/variable"
)

const (
	orderUnset      = -1
	orderInProgress = -2
)

// node is one vertex: a variable index and the set of variables its image
// (if any) directly reads.
type node struct {
	index int
	deps  []int
	order int
}

// Graph owns one vertex per variable that has been inserted.
type Graph struct {
	store    *variable.Store
	vertices map[int]*node
}

// New returns an empty graph over store.
func New(store *variable.Store) *Graph {
	return &Graph{store: store, vertices: make(map[int]*node)}
}

// InsertVar registers an original variable as a vertex with no dependencies.
func (g *Graph) InsertVar(index int) {
	if _, ok := g.vertices[index]; ok {
		return
	}
	g.vertices[index] = &node{index: index, order: orderUnset}
}

// InsertAux registers an auxiliary's vertex, filling its dependency set
// from the variable indices its image reads (§4.A FillDeps, §4.C).
func (g *Graph) InsertAux(v *variable.Variable) {
	if n, ok := g.vertices[v.Index]; ok {
		g.fillDeps(n, v)
		return
	}
	n := &node{index: v.Index, order: orderUnset}
	g.vertices[v.Index] = n
	g.fillDeps(n, v)
}

func (g *Graph) fillDeps(n *node, v *variable.Variable) {
	if v.Image == expr.NoNode {
		return
	}
	set := make(map[int]bool)
	g.store.Arena.FillDeps(v.Image, set)
	n.deps = n.deps[:0]
	for i := range set {
		n.deps = append(n.deps, i)
	}
}

// Erase removes a vertex (used when a branch-and-bound restriction drops
// a variable from scope entirely; rare, kept for parity with the source).
func (g *Graph) Erase(index int) {
	delete(g.vertices, index)
}

// DependsOn reports whether w reads x directly (recursive=false) or
// through any chain of Aux images (recursive=true).
func (g *Graph) DependsOn(w, x int, recursive bool) bool {
	n, ok := g.vertices[w]
	if !ok {
		return false
	}
	for _, d := range n.deps {
		if d == x {
			return true
		}
		if recursive && g.DependsOn(d, x, true) {
			return true
		}
	}
	return false
}

// Lookup returns the dependency slice of a vertex, or nil if absent.
func (g *Graph) Lookup(index int) []int {
	if n, ok := g.vertices[index]; ok {
		return n.deps
	}
	return nil
}

// CreateOrder assigns a topological order number to every vertex and
// returns the variable indices sorted by that order (dependencies first).
// Returns a couerr.CycleInDependencies error if the graph is cyclic,
// mirroring DepNode::createOrder's in-progress sentinel.
func (g *Graph) CreateOrder() ([]int, error) {
	counter := 0
	order := make(map[int]int, len(g.vertices))
	var visit func(idx int) error
	visit = func(idx int) error {
		n, ok := g.vertices[idx]
		if !ok {
			return nil
		}
		if _, done := order[idx]; done {
			return nil
		}
		if n.order == orderInProgress {
			return couerr.New(couerr.KindCycleInDependencies, "depgraph: cycle detected at variable %d", idx)
		}
		n.order = orderInProgress
		for _, d := range n.deps {
			if err := visit(d); err != nil {
				return err
			}
		}
		n.order = counter
		order[idx] = counter
		counter++
		return nil
	}
	ids := g.sortedIDs()
	for _, idx := range ids {
		if err := visit(idx); err != nil {
			return nil, err
		}
	}
	out := make([]int, len(order))
	for idx, o := range order {
		out[o] = idx
	}
	return out, nil
}

func (g *Graph) sortedIDs() []int {
	out := make([]int, 0, len(g.vertices))
	for idx := range g.vertices {
		out = append(out, idx)
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1] > out[j] {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// Print renders the graph for diagnostics (off the hot path).
func (g *Graph) Print() string {
	s := "------------------------------ dependence graph\n"
	for _, idx := range g.sortedIDs() {
		n := g.vertices[idx]
		s += fmt.Sprintf("%d %v\n", n.index, n.deps)
	}
	return s + "------------------------------\n"
}
