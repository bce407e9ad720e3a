package cred

import (
	"math"

	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/markov"
	"github.com/katalvlaran/credrank/pagerank"
)

// RunPagerank settles the scores: it assembles the view's Markov chain
// from the cached weights, runs the stationary-distribution solver, and
// replaces the scores with the result in one step. Solver options pass
// straight through, so callers tune convergence, iteration caps, yielding,
// and cancellation exactly as with pagerank.FindStationaryDistribution.
//
// The counter is revalidated before the chain is built and again before
// the scores are committed; a graph mutated mid-run leaves the view's
// scores untouched and returns ErrModifiedGraph. Any solver error likewise
// leaves the previous scores in place.
//
// Complexity: O(iterations · (V + E)).
func (sg *ScoredGraph) RunPagerank(opts ...pagerank.Option) (*pagerank.Result, error) {
	if err := sg.stale(); err != nil {
		return nil, err
	}

	chain, err := markov.NewChainFromWeights(sg.g, sg.weights, sg.loopWeight)
	if err != nil {
		return nil, err
	}
	res, err := pagerank.FindStationaryDistribution(chain, opts...)
	if err != nil {
		return nil, err
	}

	// Commit only against the same graph the chain was built from.
	if err := sg.stale(); err != nil {
		return nil, err
	}
	copy(sg.scores, res.Distribution)

	return res, nil
}

// ScaledScores maps every node to its score scaled by a common factor,
// chosen so that the nodes under anchorPrefix sum to total. The empty
// address anchors on all nodes, making the full map sum to total.
//
// Returns ErrInvalidTotalScore for a non-positive or non-finite total and
// ErrZeroScoreMass when nothing under the prefix carries score.
//
// Complexity: O(V).
func (sg *ScoredGraph) ScaledScores(total float64, anchorPrefix graph.NodeAddress) (map[graph.NodeAddress]float64, error) {
	if err := sg.stale(); err != nil {
		return nil, err
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, ErrInvalidTotalScore
	}

	var mass float64
	for i, a := range sg.order {
		if a.HasPrefix(anchorPrefix) {
			mass += sg.scores[i]
		}
	}
	if mass == 0 {
		return nil, ErrZeroScoreMass
	}

	factor := total / mass
	out := make(map[graph.NodeAddress]float64, len(sg.order))
	for i, a := range sg.order {
		out[a] = sg.scores[i] * factor
	}

	return out, nil
}
