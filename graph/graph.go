// Package graph: mutation and query methods on Graph.
//
// Mutators are idempotent wherever the operation permits it: re-adding
// what is already present, or removing what is already absent, changes
// nothing and leaves the modification counter untouched. Only effective
// state changes bump the counter.

package graph

import (
	"fmt"
	"sort"
)

// AddNode inserts the node with the given address.
// Re-adding an existing node is a no-op. Returns ErrMalformedAddress for
// an address not produced by a constructor.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(a NodeAddress) error {
	if !a.valid() {
		return fmt.Errorf("%w: %s", ErrMalformedAddress, a)
	}
	if _, exists := g.nodes[a]; exists {
		return nil // idempotent re-add
	}
	g.nodes[a] = struct{}{}
	g.modCount++

	return nil
}

// HasNode reports whether the node exists.
// Complexity: O(1).
func (g *Graph) HasNode(a NodeAddress) bool {
	_, exists := g.nodes[a]

	return exists
}

// RemoveNode deletes the node with the given address.
// Removing an absent node is a no-op. A node still referenced by any edge
// cannot be removed: the incident edges must go first (ErrNodeInUse).
// Complexity: O(1) amortized.
func (g *Graph) RemoveNode(a NodeAddress) error {
	if !a.valid() {
		return fmt.Errorf("%w: %s", ErrMalformedAddress, a)
	}
	if _, exists := g.nodes[a]; !exists {
		return nil // idempotent remove
	}
	if len(g.inEdges[a]) > 0 || len(g.outEdges[a]) > 0 {
		return fmt.Errorf("%w: %s", ErrNodeInUse, a)
	}
	delete(g.nodes, a)
	delete(g.inEdges, a)
	delete(g.outEdges, a)
	g.modCount++

	return nil
}

// AddEdge inserts the edge. Both endpoints must already be present
// (ErrNoSuchNode). Re-adding a byte-identical edge is a no-op; reusing an
// edge address with different endpoints is ErrEdgeConflict.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(e Edge) error {
	if !e.Address.valid() {
		return fmt.Errorf("%w: %s", ErrMalformedAddress, e.Address)
	}
	if !e.Src.valid() {
		return fmt.Errorf("%w: src %s", ErrMalformedAddress, e.Src)
	}
	if !e.Dst.valid() {
		return fmt.Errorf("%w: dst %s", ErrMalformedAddress, e.Dst)
	}
	if existing, ok := g.edges[e.Address]; ok {
		if existing == e {
			return nil // idempotent re-add
		}

		return fmt.Errorf("%w: %s", ErrEdgeConflict, e.Address)
	}
	if !g.HasNode(e.Src) {
		return fmt.Errorf("%w: src %s of %s", ErrNoSuchNode, e.Src, e.Address)
	}
	if !g.HasNode(e.Dst) {
		return fmt.Errorf("%w: dst %s of %s", ErrNoSuchNode, e.Dst, e.Address)
	}

	g.edges[e.Address] = e
	g.indexEdge(e)
	g.modCount++

	return nil
}

// HasEdge reports whether an edge with the given address exists.
// Complexity: O(1).
func (g *Graph) HasEdge(a EdgeAddress) bool {
	_, exists := g.edges[a]

	return exists
}

// Edge looks up an edge by address. The second result is false when the
// address is unbound.
// Complexity: O(1).
func (g *Graph) Edge(a EdgeAddress) (Edge, bool) {
	e, ok := g.edges[a]

	return e, ok
}

// RemoveEdge deletes the edge with the given address.
// Removing an absent edge is a no-op.
// Complexity: O(1) amortized.
func (g *Graph) RemoveEdge(a EdgeAddress) error {
	if !a.valid() {
		return fmt.Errorf("%w: %s", ErrMalformedAddress, a)
	}
	e, exists := g.edges[a]
	if !exists {
		return nil // idempotent remove
	}
	delete(g.edges, a)
	g.unindexEdge(e)
	g.modCount++

	return nil
}

// Nodes lists node addresses with the given prefix, sorted canonically.
// The empty prefix (zero value) lists every node.
// Complexity: O(V log V).
func (g *Graph) Nodes(prefix NodeAddress) []NodeAddress {
	out := make([]NodeAddress, 0, len(g.nodes))
	for a := range g.nodes {
		if a.HasPrefix(prefix) {
			out = append(out, a)
		}
	}
	SortNodeAddresses(out)

	return out
}

// Edges lists edges matching the filter, sorted by edge address.
// The zero filter lists every edge.
// Complexity: O(E log E).
func (g *Graph) Edges(filter EdgeFilter) []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if !e.Address.HasPrefix(filter.AddressPrefix) {
			continue
		}
		if !e.Src.HasPrefix(filter.SrcPrefix) {
			continue
		}
		if !e.Dst.HasPrefix(filter.DstPrefix) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })

	return out
}

// NodeCount returns the number of nodes. Complexity: O(1).
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges. Complexity: O(1).
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ModificationCount returns the monotonic mutation counter. Views snapshot
// this value and fail once it moves.
// Complexity: O(1).
func (g *Graph) ModificationCount() uint64 { return g.modCount }

// Equals reports structural equality: the same node set and the same edge
// set, regardless of the mutation history that produced either graph.
// A nil other is never equal.
// Complexity: O(V + E).
func (g *Graph) Equals(other *Graph) bool {
	if other == nil {
		return false
	}
	if len(g.nodes) != len(other.nodes) || len(g.edges) != len(other.edges) {
		return false
	}
	for a := range g.nodes {
		if _, ok := other.nodes[a]; !ok {
			return false
		}
	}
	for a, e := range g.edges {
		if oe, ok := other.edges[a]; !ok || oe != e {
			return false
		}
	}

	return true
}

// Copy returns an independent deep copy. The copy starts with a fresh
// modification counter; views bound to the original stay bound to it.
// Complexity: O(V + E).
func (g *Graph) Copy() *Graph {
	c := New()
	for a := range g.nodes {
		c.nodes[a] = struct{}{}
	}
	for a, e := range g.edges {
		c.edges[a] = e
		c.indexEdge(e)
	}

	return c
}

// indexEdge records e in the in/out adjacency indexes.
func (g *Graph) indexEdge(e Edge) {
	if g.outEdges[e.Src] == nil {
		g.outEdges[e.Src] = make(map[EdgeAddress]struct{})
	}
	g.outEdges[e.Src][e.Address] = struct{}{}
	if g.inEdges[e.Dst] == nil {
		g.inEdges[e.Dst] = make(map[EdgeAddress]struct{})
	}
	g.inEdges[e.Dst][e.Address] = struct{}{}
}

// unindexEdge drops e from the adjacency indexes, pruning empty sets.
func (g *Graph) unindexEdge(e Edge) {
	if m := g.outEdges[e.Src]; m != nil {
		delete(m, e.Address)
		if len(m) == 0 {
			delete(g.outEdges, e.Src)
		}
	}
	if m := g.inEdges[e.Dst]; m != nil {
		delete(m, e.Address)
		if len(m) == 0 {
			delete(g.inEdges, e.Dst)
		}
	}
}
