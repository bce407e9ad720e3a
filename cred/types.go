// Package cred: central types, sentinel errors, and construction options
// for score-annotated graph views.
package cred

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/markov"
)

// Defaults for score runs and normalization.
const (
	// DefaultSelfLoopWeight is the synthetic loop weight applied when no
	// WithSelfLoopWeight option is given.
	DefaultSelfLoopWeight = markov.DefaultSyntheticLoopWeight

	// DefaultTotalScore is the conventional normalization target: scaled
	// scores of the anchor nodes sum to this value.
	DefaultTotalScore = 1000.0
)

// Sentinel errors for view construction and queries.
var (
	// ErrNilGraph is returned if New receives a nil graph.
	ErrNilGraph = errors.New("cred: graph is nil")

	// ErrNilEvaluator is returned if New receives a nil evaluator.
	ErrNilEvaluator = errors.New("cred: evaluator is nil")

	// ErrNilScoredGraph is returned when comparing against a nil view.
	ErrNilScoredGraph = errors.New("cred: scored graph is nil")

	// ErrEmptyGraph is returned if New receives a graph with no nodes.
	ErrEmptyGraph = errors.New("cred: graph has no nodes")

	// ErrModifiedGraph is returned by every operation once the underlying
	// graph has mutated since this view was constructed.
	ErrModifiedGraph = errors.New("cred: underlying graph has been modified")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("cred: invalid option supplied")

	// ErrInvalidTotalScore is returned by ScaledScores for a non-positive
	// or non-finite normalization target.
	ErrInvalidTotalScore = errors.New("cred: total score must be positive and finite")

	// ErrZeroScoreMass is returned by ScaledScores when no score mass
	// falls under the anchor prefix, leaving nothing to normalize by.
	ErrZeroScoreMass = errors.New("cred: no score mass under the given prefix")

	// ErrFormatVersion is returned for serialized data with an
	// unsupported version tag.
	ErrFormatVersion = errors.New("cred: unsupported serialization version")

	// ErrMalformedPayload is returned when a serialized view is
	// structurally inconsistent (score count, weight coverage, values).
	ErrMalformedPayload = errors.New("cred: malformed scored-graph payload")
)

// ScoredNode pairs a node address with its current score.
type ScoredNode struct {
	Address graph.NodeAddress
	Score   float64
}

// WeightedEdge pairs an edge with its evaluated weight.
type WeightedEdge struct {
	Edge   graph.Edge
	Weight markov.EdgeWeight
}

// ScoredNeighbor is one adjacency entry annotated with score flow.
//
// RawWeight resolves the edge weight for the entry's orientation: the
// ToWeight for In entries (mass flowing src→target) and the FroWeight for
// Out entries (mass flowing dst→target). ScoreContribution is the share of
// the target's score received through this entry:
//
//	score(adjacent) · RawWeight / totalOutWeight(adjacent).
//
// A self-loop contributes once per orientation, so its In and Out entries
// together account for both weight components.
type ScoredNeighbor struct {
	Neighbor          graph.Neighbor
	Weight            markov.EdgeWeight
	RawWeight         float64
	ScoreContribution float64
}

// NodeDecomposition is the ordered breakdown of one node's score into the
// synthetic-loop share and per-adjacency contributions. Neighbors are
// sorted by descending ScoreContribution; ties fall back to edge address,
// then orientation. The parts reconstruct the score:
//
//	Score = SyntheticLoopContribution + Σ Neighbors[i].ScoreContribution.
type NodeDecomposition struct {
	Address                   graph.NodeAddress
	Score                     float64
	SyntheticLoopContribution float64
	Neighbors                 []ScoredNeighbor
}

// Option configures view construction via functional arguments. An invalid
// value is recorded internally and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the construction parameters.
type Options struct {
	// SelfLoopWeight is the synthetic loop weight attached to every node.
	// Must be positive and finite.
	SelfLoopWeight float64

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the standard parameters:
//   - SelfLoopWeight 1e-3.
func DefaultOptions() Options {
	return Options{SelfLoopWeight: DefaultSelfLoopWeight, err: nil}
}

// WithSelfLoopWeight overrides the synthetic loop weight.
//
//	w > 0 and finite: use w
//	otherwise: invalid option → ErrOptionViolation
func WithSelfLoopWeight(w float64) Option {
	return func(o *Options) {
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			o.err = fmt.Errorf("%w: SelfLoopWeight %v", ErrOptionViolation, w)
			return
		}
		o.SelfLoopWeight = w
	}
}
