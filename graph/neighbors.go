// Package graph: the Neighbors query.

package graph

import (
	"fmt"
	"sort"
)

// Neighbors returns one entry per incident edge of the target that matches
// the orientation and both prefix filters: the adjacent node, the edge,
// and the orientation it matched under.
//
// A self-loop on the target matches In once and Out once, so a query with
// Direction Any yields it twice; downstream weight accounting depends on
// exactly that doubling. Entries are sorted by edge address, the In entry
// of a doubled loop first.
//
// Returns ErrNoSuchNode for an absent target — an existing node with no
// matches yields an empty, non-nil slice — and ErrInvalidDirection for a
// Direction outside Any/In/Out.
// Complexity: O(deg log deg).
func (g *Graph) Neighbors(a NodeAddress, opts NeighborsOptions) ([]Neighbor, error) {
	if !a.valid() {
		return nil, fmt.Errorf("%w: %s", ErrMalformedAddress, a)
	}
	if !g.HasNode(a) {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchNode, a)
	}
	if opts.Direction > Out {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, opts.Direction)
	}

	out := make([]Neighbor, 0, len(g.inEdges[a])+len(g.outEdges[a]))
	if opts.Direction == Any || opts.Direction == In {
		for ea := range g.inEdges[a] {
			e := g.edges[ea]
			// In orientation: the adjacent node is the edge's source.
			if n, ok := matchNeighbor(e, e.Src, In, opts); ok {
				out = append(out, n)
			}
		}
	}
	if opts.Direction == Any || opts.Direction == Out {
		for ea := range g.outEdges[a] {
			e := g.edges[ea]
			// Out orientation: the adjacent node is the edge's destination.
			if n, ok := matchNeighbor(e, e.Dst, Out, opts); ok {
				out = append(out, n)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Edge.Address != out[j].Edge.Address {
			return out[i].Edge.Address < out[j].Edge.Address
		}

		return out[i].Direction < out[j].Direction
	})

	return out, nil
}

// matchNeighbor applies the prefix filters and builds the entry.
func matchNeighbor(e Edge, adjacent NodeAddress, dir Direction, opts NeighborsOptions) (Neighbor, bool) {
	if !adjacent.HasPrefix(opts.NodePrefix) {
		return Neighbor{}, false
	}
	if !e.Address.HasPrefix(opts.EdgePrefix) {
		return Neighbor{}, false
	}

	return Neighbor{Node: adjacent, Edge: e, Direction: dir}, true
}
