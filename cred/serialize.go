package cred

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/markov"
)

// FormatVersion tags the canonical JSON envelope of a ScoredGraph.
const FormatVersion = "credrank/cred/v1"

// scoredGraphJSON is the canonical wire shape. The graph rides in its own
// canonical envelope, edge weights follow the canonical edge order, and
// scores align with the canonical node order, so equal views marshal to
// identical bytes regardless of construction history. The evaluator is
// deliberately absent: the weights are its complete observable output.
type scoredGraphJSON struct {
	Version        string           `json:"version"`
	SelfLoopWeight float64          `json:"selfLoopWeight"`
	Graph          *graph.Graph     `json:"graph"`
	EdgeWeights    []edgeWeightJSON `json:"edgeWeights"`
	Scores         []float64        `json:"scores"`
}

type edgeWeightJSON struct {
	Address   []string `json:"address"`
	ToWeight  float64  `json:"toWeight"`
	FroWeight float64  `json:"froWeight"`
}

// MarshalJSON encodes the view in canonical form. The view must still
// match its underlying graph.
func (sg *ScoredGraph) MarshalJSON() ([]byte, error) {
	if err := sg.stale(); err != nil {
		return nil, err
	}

	weights := make([]edgeWeightJSON, 0, len(sg.weights))
	for _, e := range sg.g.Edges(graph.EdgeFilter{}) {
		w := sg.weights[e.Address]
		weights = append(weights, edgeWeightJSON{
			Address:   e.Address.Parts(),
			ToWeight:  w.ToWeight,
			FroWeight: w.FroWeight,
		})
	}

	return json.Marshal(scoredGraphJSON{
		Version:        FormatVersion,
		SelfLoopWeight: sg.loopWeight,
		Graph:          sg.g,
		EdgeWeights:    weights,
		Scores:         sg.scores,
	})
}

// ToJSON serializes the view to its canonical JSON envelope.
func (sg *ScoredGraph) ToJSON() ([]byte, error) { return json.Marshal(sg) }

// FromJSON restores a view from its canonical envelope in two phases:
// first the raw state (graph, loop weight, edge weights, scores) is
// decoded and validated, then the cached per-node totals are derived
// through the same routine construction uses. Scores come back exactly
// as stored; no solver run is implied.
//
// Returns ErrFormatVersion for an unknown version tag and
// ErrMalformedPayload for structurally inconsistent data.
func FromJSON(data []byte) (*ScoredGraph, error) {
	// Phase 1: decode and validate the raw state.
	var raw scoredGraphJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cred: decode: %w", err)
	}
	if raw.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %q", ErrFormatVersion, raw.Version)
	}
	if raw.Graph == nil {
		return nil, fmt.Errorf("%w: missing graph", ErrMalformedPayload)
	}
	if !(raw.SelfLoopWeight > 0) || math.IsInf(raw.SelfLoopWeight, 0) {
		return nil, fmt.Errorf("%w: selfLoopWeight %v", ErrMalformedPayload, raw.SelfLoopWeight)
	}

	g := raw.Graph
	order := markov.NodeOrder(g)
	if len(order) == 0 {
		return nil, ErrEmptyGraph
	}

	weights := make(map[graph.EdgeAddress]markov.EdgeWeight, len(raw.EdgeWeights))
	for _, ew := range raw.EdgeWeights {
		a, err := graph.NewEdgeAddress(ew.Address...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		if !g.HasEdge(a) {
			return nil, fmt.Errorf("%w: weight for absent edge %s", ErrMalformedPayload, a)
		}
		if _, dup := weights[a]; dup {
			return nil, fmt.Errorf("%w: duplicate weight for edge %s", ErrMalformedPayload, a)
		}
		if !validStoredWeight(ew.ToWeight) || !validStoredWeight(ew.FroWeight) {
			return nil, fmt.Errorf("%w: weight for edge %s", ErrMalformedPayload, a)
		}
		weights[a] = markov.EdgeWeight{ToWeight: ew.ToWeight, FroWeight: ew.FroWeight}
	}
	if len(weights) != g.EdgeCount() {
		return nil, fmt.Errorf("%w: %d weights for %d edges", ErrMalformedPayload, len(weights), g.EdgeCount())
	}

	if len(raw.Scores) != len(order) {
		return nil, fmt.Errorf("%w: %d scores for %d nodes", ErrMalformedPayload, len(raw.Scores), len(order))
	}
	for i, s := range raw.Scores {
		if !validStoredWeight(s) {
			return nil, fmt.Errorf("%w: score %d is %v", ErrMalformedPayload, i, s)
		}
	}

	// Phase 2: rebuild the derived caches.
	index := make(map[graph.NodeAddress]int, len(order))
	for i, a := range order {
		index[a] = i
	}
	scores := make([]float64, len(raw.Scores))
	copy(scores, raw.Scores)

	return &ScoredGraph{
		g:          g,
		loopWeight: raw.SelfLoopWeight,
		snapshot:   g.ModificationCount(),
		order:      order,
		index:      index,
		scores:     scores,
		weights:    weights,
		totalOut:   markov.TotalOutWeights(g, weights, raw.SelfLoopWeight),
	}, nil
}

// validStoredWeight accepts non-negative finite values.
func validStoredWeight(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
