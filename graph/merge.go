// Package graph: composing graphs.

package graph

import "fmt"

// Merge unions the nodes and edges of the given graphs into a new Graph.
// An edge address appearing in several inputs must reference identical
// endpoints everywhere, otherwise ErrEdgeConflict. Nil inputs are
// ErrNilGraph. Merging nothing yields an empty graph.
// Complexity: O(ΣV + ΣE).
func Merge(graphs ...*Graph) (*Graph, error) {
	merged := New()
	for i, g := range graphs {
		if g == nil {
			return nil, fmt.Errorf("%w: input %d", ErrNilGraph, i)
		}
		for a := range g.nodes {
			if err := merged.AddNode(a); err != nil {
				return nil, err
			}
		}
	}
	// Edges in a second pass, with every endpoint already present.
	for _, g := range graphs {
		for _, e := range g.edges {
			if err := merged.AddEdge(e); err != nil {
				return nil, err
			}
		}
	}

	return merged, nil
}
