package cred

import (
	"github.com/katalvlaran/credrank/graph"
)

// Neighbors returns a's adjacency entries annotated with score flow,
// filtered by opts exactly as the underlying graph query. Every entry
// carries the resolved RawWeight for its orientation and the
// ScoreContribution the adjacent node sends to a through it.
//
// Summing ScoreContribution over the unfiltered Any listing, plus
// SyntheticLoopScoreContribution(a), reconstructs score(a) after the
// scores have settled.
//
// Returns graph.ErrNoSuchNode for an absent node and
// graph.ErrInvalidDirection for an out-of-range direction.
//
// Complexity: O(deg(a) log deg(a)).
func (sg *ScoredGraph) Neighbors(a graph.NodeAddress, opts graph.NeighborsOptions) ([]ScoredNeighbor, error) {
	if err := sg.stale(); err != nil {
		return nil, err
	}
	entries, err := sg.g.Neighbors(a, opts)
	if err != nil {
		return nil, err
	}

	out := make([]ScoredNeighbor, 0, len(entries))
	for _, nb := range entries {
		out = append(out, sg.scoreNeighbor(nb))
	}

	return out, nil
}

// scoreNeighbor annotates one adjacency entry. The orientation picks the
// weight component that actually flows toward the target: In entries carry
// the edge's ToWeight (src→target), Out entries its FroWeight (dst→target).
func (sg *ScoredGraph) scoreNeighbor(nb graph.Neighbor) ScoredNeighbor {
	w := sg.weights[nb.Edge.Address]

	var raw float64
	switch nb.Direction {
	case graph.In:
		raw = w.ToWeight
	case graph.Out:
		raw = w.FroWeight
	}

	adjacentScore := sg.scores[sg.index[nb.Node]]

	return ScoredNeighbor{
		Neighbor:          nb,
		Weight:            w,
		RawWeight:         raw,
		ScoreContribution: adjacentScore * raw / sg.totalOut[nb.Node],
	}
}
