package cred

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/credrank/graph"
)

// DecomposeNode breaks a's score into its synthetic-loop share and the
// contribution of every adjacency entry, largest first. Ties sort by edge
// address, then orientation, so the breakdown is fully deterministic.
//
// After RunPagerank has settled the scores, the parts reconstruct the
// whole: SyntheticLoopContribution + Σ entry contributions ≈ score(a).
//
// Complexity: O(deg(a) log deg(a)).
func (sg *ScoredGraph) DecomposeNode(a graph.NodeAddress) (NodeDecomposition, error) {
	if err := sg.stale(); err != nil {
		return NodeDecomposition{}, err
	}
	i, ok := sg.index[a]
	if !ok {
		return NodeDecomposition{}, fmt.Errorf("%w: %s", graph.ErrNoSuchNode, a)
	}

	entries, err := sg.Neighbors(a, graph.NeighborsOptions{})
	if err != nil {
		return NodeDecomposition{}, err
	}
	sort.Slice(entries, func(x, y int) bool {
		ex, ey := entries[x], entries[y]
		if ex.ScoreContribution != ey.ScoreContribution {
			return ex.ScoreContribution > ey.ScoreContribution
		}
		if ex.Neighbor.Edge.Address != ey.Neighbor.Edge.Address {
			return ex.Neighbor.Edge.Address < ey.Neighbor.Edge.Address
		}

		return ex.Neighbor.Direction < ey.Neighbor.Direction
	})

	loop, err := sg.SyntheticLoopScoreContribution(a)
	if err != nil {
		return NodeDecomposition{}, err
	}

	return NodeDecomposition{
		Address:                   a,
		Score:                     sg.scores[i],
		SyntheticLoopContribution: loop,
		Neighbors:                 entries,
	}, nil
}

// Decompose returns the decomposition of every node in canonical order.
// Complexity: O(V log V + E log E).
func (sg *ScoredGraph) Decompose() ([]NodeDecomposition, error) {
	if err := sg.stale(); err != nil {
		return nil, err
	}

	out := make([]NodeDecomposition, 0, len(sg.order))
	for _, a := range sg.order {
		d, err := sg.DecomposeNode(a)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, nil
}
