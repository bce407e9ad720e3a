package cred

import (
	"fmt"

	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/markov"
)

// ScoredGraph is a frozen, score-annotated view over a Graph.
//
// Construction evaluates every edge once, caches the weights and the
// per-node total outbound weight, and seeds scores with the uniform
// distribution. The view snapshots the graph's modification counter:
// every later operation revalidates it and fails with ErrModifiedGraph
// if the graph has mutated, so a view can never silently serve stale
// numbers. Scores line up with the canonical (sorted) node order.
type ScoredGraph struct {
	g          *graph.Graph
	loopWeight float64

	// snapshot of the graph's modification counter at construction
	snapshot uint64

	// order and index fix the canonical node positions; scores[i]
	// belongs to order[i].
	order  []graph.NodeAddress
	index  map[graph.NodeAddress]int
	scores []float64

	weights  map[graph.EdgeAddress]markov.EdgeWeight
	totalOut map[graph.NodeAddress]float64
}

// New builds a ScoredGraph over g, evaluating every edge with ev.
//
// The evaluator is consumed here: its results become the view's edge
// weights and it is not retained, which keeps views comparable and
// serializable. Scores start uniform; call RunPagerank to settle them.
//
// Returns ErrNilGraph, ErrNilEvaluator, ErrEmptyGraph, ErrOptionViolation,
// or a weight-validation error from evaluation.
//
// Complexity: O(V log V + E).
func New(g *graph.Graph, ev markov.EdgeEvaluator, opts ...Option) (*ScoredGraph, error) {
	// 1) Assemble options, surfacing any recorded violation.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 2) Validate inputs.
	if g == nil {
		return nil, ErrNilGraph
	}
	if ev == nil {
		return nil, ErrNilEvaluator
	}
	order := markov.NodeOrder(g)
	if len(order) == 0 {
		return nil, ErrEmptyGraph
	}

	// 3) Evaluate edges and derive the per-node totals.
	weights, err := markov.EvaluateEdges(g, ev)
	if err != nil {
		return nil, err
	}
	totalOut := markov.TotalOutWeights(g, weights, o.SelfLoopWeight)

	// 4) Seed uniform scores and freeze the counter.
	scores, err := markov.UniformDistribution(len(order))
	if err != nil {
		return nil, err
	}
	index := make(map[graph.NodeAddress]int, len(order))
	for i, a := range order {
		index[a] = i
	}

	return &ScoredGraph{
		g:          g,
		loopWeight: o.SelfLoopWeight,
		snapshot:   g.ModificationCount(),
		order:      order,
		index:      index,
		scores:     scores,
		weights:    weights,
		totalOut:   totalOut,
	}, nil
}

// stale reports ErrModifiedGraph once the underlying graph has mutated
// past this view's snapshot.
func (sg *ScoredGraph) stale() error {
	if now := sg.g.ModificationCount(); now != sg.snapshot {
		return fmt.Errorf("%w: view froze at %d, graph is at %d", ErrModifiedGraph, sg.snapshot, now)
	}

	return nil
}

// Graph returns the underlying graph. Mutating it invalidates this view:
// every subsequent operation will fail with ErrModifiedGraph.
func (sg *ScoredGraph) Graph() *graph.Graph { return sg.g }

// SyntheticLoopWeight returns the synthetic loop weight the view was
// built with. It is a construction parameter, not graph state, so it
// stays readable even after the graph mutates.
func (sg *ScoredGraph) SyntheticLoopWeight() float64 { return sg.loopWeight }

// Node returns the scored node at a, and whether it exists.
// Complexity: O(1).
func (sg *ScoredGraph) Node(a graph.NodeAddress) (ScoredNode, bool, error) {
	if err := sg.stale(); err != nil {
		return ScoredNode{}, false, err
	}
	i, ok := sg.index[a]
	if !ok {
		return ScoredNode{}, false, nil
	}

	return ScoredNode{Address: a, Score: sg.scores[i]}, true, nil
}

// Nodes returns all scored nodes under prefix in canonical order.
// The empty address matches every node.
// Complexity: O(V).
func (sg *ScoredGraph) Nodes(prefix graph.NodeAddress) ([]ScoredNode, error) {
	if err := sg.stale(); err != nil {
		return nil, err
	}

	out := make([]ScoredNode, 0, len(sg.order))
	for i, a := range sg.order {
		if a.HasPrefix(prefix) {
			out = append(out, ScoredNode{Address: a, Score: sg.scores[i]})
		}
	}

	return out, nil
}

// Edge returns the weighted edge at a, and whether it exists.
// Complexity: O(1).
func (sg *ScoredGraph) Edge(a graph.EdgeAddress) (WeightedEdge, bool, error) {
	if err := sg.stale(); err != nil {
		return WeightedEdge{}, false, err
	}
	e, ok := sg.g.Edge(a)
	if !ok {
		return WeightedEdge{}, false, nil
	}

	return WeightedEdge{Edge: e, Weight: sg.weights[a]}, true, nil
}

// Edges returns all weighted edges matching filter, sorted by address.
// The zero filter matches every edge.
// Complexity: O(E log E).
func (sg *ScoredGraph) Edges(filter graph.EdgeFilter) ([]WeightedEdge, error) {
	if err := sg.stale(); err != nil {
		return nil, err
	}

	edges := sg.g.Edges(filter)
	out := make([]WeightedEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, WeightedEdge{Edge: e, Weight: sg.weights[e.Address]})
	}

	return out, nil
}

// TotalOutWeight returns the total outbound connection weight of a: the
// synthetic loop weight plus the ToWeight of every edge leaving a plus
// the FroWeight of every edge entering a. Always strictly positive.
// Complexity: O(1).
func (sg *ScoredGraph) TotalOutWeight(a graph.NodeAddress) (float64, error) {
	if err := sg.stale(); err != nil {
		return 0, err
	}
	w, ok := sg.totalOut[a]
	if !ok {
		return 0, fmt.Errorf("%w: %s", graph.ErrNoSuchNode, a)
	}

	return w, nil
}

// SyntheticLoopScoreContribution returns the share of a's score that it
// retains through its own synthetic loop:
//
//	score(a) · loopWeight / totalOutWeight(a).
//
// Complexity: O(1).
func (sg *ScoredGraph) SyntheticLoopScoreContribution(a graph.NodeAddress) (float64, error) {
	if err := sg.stale(); err != nil {
		return 0, err
	}
	i, ok := sg.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %s", graph.ErrNoSuchNode, a)
	}

	return sg.scores[i] * sg.loopWeight / sg.totalOut[a], nil
}

// Equals reports exact equality of two views: same loop weight, equal
// graphs, identical edge weights, and bitwise-equal scores. The original
// evaluator plays no part; its output is fully captured by the weights.
// Both views must still match their underlying graphs.
// Complexity: O(V + E).
func (sg *ScoredGraph) Equals(other *ScoredGraph) (bool, error) {
	if other == nil {
		return false, ErrNilScoredGraph
	}
	if err := sg.stale(); err != nil {
		return false, err
	}
	if err := other.stale(); err != nil {
		return false, err
	}

	if sg.loopWeight != other.loopWeight {
		return false, nil
	}
	if !sg.g.Equals(other.g) {
		return false, nil
	}
	if len(sg.weights) != len(other.weights) {
		return false, nil
	}
	for a, w := range sg.weights {
		if ow, ok := other.weights[a]; !ok || ow != w {
			return false, nil
		}
	}
	if len(sg.scores) != len(other.scores) {
		return false, nil
	}
	for i, s := range sg.scores {
		if other.scores[i] != s {
			return false, nil
		}
	}

	return true, nil
}
