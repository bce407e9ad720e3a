// Package markov: building the ordered sparse chain from a weighted graph.

package markov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/credrank/graph"
)

// NodeOrder returns the fixed node ordering used for chain rows and
// distributions: every node of g in canonical address order.
// Complexity: O(V log V).
func NodeOrder(g *graph.Graph) []graph.NodeAddress {
	return g.Nodes("")
}

// EvaluateEdges runs the evaluator once per edge and collects the weight
// map, rejecting negative, NaN, or infinite components
// (ErrInvalidEdgeWeight, wrapped with the edge address).
// Complexity: O(E log E).
func EvaluateEdges(g *graph.Graph, ev EdgeEvaluator) (map[graph.EdgeAddress]EdgeWeight, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if ev == nil {
		return nil, ErrNilEvaluator
	}
	out := make(map[graph.EdgeAddress]EdgeWeight, g.EdgeCount())
	for _, e := range g.Edges(graph.EdgeFilter{}) {
		w := ev.Evaluate(e)
		if !validWeightComponent(w.ToWeight) || !validWeightComponent(w.FroWeight) {
			return nil, fmt.Errorf("%w: %s yielded (%v, %v)", ErrInvalidEdgeWeight, e.Address, w.ToWeight, w.FroWeight)
		}
		out[e.Address] = w
	}

	return out, nil
}

// TotalOutWeights derives every node's total out-weight:
//
//	selfLoopWeight + Σ ToWeight over edges with the node as Src
//	               + Σ FroWeight over edges with the node as Dst
//
// This is the single derivation routine for the out-weight cache: fresh
// construction and deserialization both go through it. The weight map must
// cover every edge of g and selfLoopWeight must be positive, so every
// result is strictly positive.
// Complexity: O(V + E log E).
func TotalOutWeights(g *graph.Graph, weights map[graph.EdgeAddress]EdgeWeight, selfLoopWeight float64) map[graph.NodeAddress]float64 {
	out := make(map[graph.NodeAddress]float64, g.NodeCount())
	for _, a := range g.Nodes("") {
		out[a] = selfLoopWeight
	}
	for _, e := range g.Edges(graph.EdgeFilter{}) {
		w := weights[e.Address]
		out[e.Src] += w.ToWeight
		out[e.Dst] += w.FroWeight
	}

	return out
}

// NewChain builds the ordered sparse Markov chain of g under the given
// evaluator and synthetic loop weight.
// Returns ErrNilGraph, ErrNilEvaluator, ErrEmptyGraph, ErrInvalidLoopWeight,
// or ErrInvalidEdgeWeight.
// Complexity: O(V log V + E log E).
func NewChain(g *graph.Graph, ev EdgeEvaluator, selfLoopWeight float64) (*OrderedSparseMarkovChain, error) {
	weights, err := EvaluateEdges(g, ev)
	if err != nil {
		return nil, err
	}

	return NewChainFromWeights(g, weights, selfLoopWeight)
}

// NewChainFromWeights builds the chain from an already-evaluated weight
// map. Every edge of g must appear in the map (ErrMissingEdgeWeight).
//
// Per destination node the row collects: the synthetic self-loop, one
// ToWeight connection per edge arriving at it, and one FroWeight
// connection per edge leaving it (reverse flow). Each connection is
// normalized by its source's total out-weight, so summed across all rows
// any source's outgoing probabilities total 1.
// Complexity: O(V log V + E log E).
func NewChainFromWeights(g *graph.Graph, weights map[graph.EdgeAddress]EdgeWeight, selfLoopWeight float64) (*OrderedSparseMarkovChain, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !validLoopWeight(selfLoopWeight) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLoopWeight, selfLoopWeight)
	}
	order := NodeOrder(g)
	if len(order) == 0 {
		return nil, ErrEmptyGraph
	}
	edges := g.Edges(graph.EdgeFilter{})
	for _, e := range edges {
		w, ok := weights[e.Address]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingEdgeWeight, e.Address)
		}
		if !validWeightComponent(w.ToWeight) || !validWeightComponent(w.FroWeight) {
			return nil, fmt.Errorf("%w: %s carries (%v, %v)", ErrInvalidEdgeWeight, e.Address, w.ToWeight, w.FroWeight)
		}
	}

	index := make(map[graph.NodeAddress]int, len(order))
	for i, a := range order {
		index[a] = i
	}
	totalOut := TotalOutWeights(g, weights, selfLoopWeight)

	rows := make([]ChainRow, len(order))
	// Synthetic self-loop connection for every node.
	for i, a := range order {
		rows[i].Sources = append(rows[i].Sources, i)
		rows[i].Probabilities = append(rows[i].Probabilities, selfLoopWeight/totalOut[a])
	}
	// Edge connections, in canonical edge order for reproducible rows.
	for _, e := range edges {
		w := weights[e.Address]
		si, di := index[e.Src], index[e.Dst]
		// Forward flow Src→Dst carries ToWeight into the destination.
		rows[di].Sources = append(rows[di].Sources, si)
		rows[di].Probabilities = append(rows[di].Probabilities, w.ToWeight/totalOut[e.Src])
		// Reverse flow Dst→Src carries FroWeight into the source.
		rows[si].Sources = append(rows[si].Sources, di)
		rows[si].Probabilities = append(rows[si].Probabilities, w.FroWeight/totalOut[e.Dst])
	}

	return &OrderedSparseMarkovChain{Order: order, Rows: rows}, nil
}

// UniformDistribution returns the distribution assigning every one of n
// nodes mass 1/n. Returns ErrEmptyGraph for n ≤ 0.
// Complexity: O(n).
func UniformDistribution(n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n = %d", ErrEmptyGraph, n)
	}
	dist := make([]float64, n)
	mass := 1 / float64(n)
	for i := range dist {
		dist[i] = mass
	}

	return dist, nil
}

// validWeightComponent accepts non-negative finite values.
func validWeightComponent(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// validLoopWeight accepts strictly positive finite values.
func validLoopWeight(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
