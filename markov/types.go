// Package markov: edge weights, the evaluator capability, and the sparse
// chain types.

package markov

import (
	"errors"

	"github.com/katalvlaran/credrank/graph"
)

// DefaultSyntheticLoopWeight is the standard minimum self-transition
// weight. It guarantees every node a strictly positive total out-weight,
// playing the role of a teleportation term.
const DefaultSyntheticLoopWeight = 1e-3

// Sentinel errors for chain construction.
var (
	// ErrNilGraph is returned if a nil graph pointer is passed.
	ErrNilGraph = errors.New("markov: graph is nil")

	// ErrNilEvaluator is returned if a nil evaluator is passed.
	ErrNilEvaluator = errors.New("markov: evaluator is nil")

	// ErrEmptyGraph is returned when the graph has no nodes to spread mass over.
	ErrEmptyGraph = errors.New("markov: graph has no nodes")

	// ErrInvalidLoopWeight is returned for a synthetic loop weight that is
	// not strictly positive and finite.
	ErrInvalidLoopWeight = errors.New("markov: synthetic loop weight must be positive and finite")

	// ErrInvalidEdgeWeight is returned when an evaluator yields a negative,
	// NaN, or infinite weight component.
	ErrInvalidEdgeWeight = errors.New("markov: edge weight must be non-negative and finite")

	// ErrMissingEdgeWeight is returned when a weight map lacks an edge of the graph.
	ErrMissingEdgeWeight = errors.New("markov: no weight for edge")
)

// EdgeWeight is the pair of directed flows one edge carries: ToWeight
// along Src→Dst and FroWeight along Dst→Src. Both must be non-negative
// and finite; asymmetric influence is the normal case.
type EdgeWeight struct {
	ToWeight  float64
	FroWeight float64
}

// EdgeEvaluator maps an edge to its weight pair. Implementations must be
// pure: same edge in, same weights out, no side effects. The weighting
// policy behind it is injected by the caller and is no concern of this
// package.
type EdgeEvaluator interface {
	Evaluate(e graph.Edge) EdgeWeight
}

// EdgeEvaluatorFunc adapts a plain function to the EdgeEvaluator interface.
type EdgeEvaluatorFunc func(graph.Edge) EdgeWeight

// Evaluate calls f(e).
func (f EdgeEvaluatorFunc) Evaluate(e graph.Edge) EdgeWeight { return f(e) }

// ConstantEvaluator returns an evaluator assigning every edge the same
// weight pair.
func ConstantEvaluator(to, fro float64) EdgeEvaluator {
	return EdgeEvaluatorFunc(func(graph.Edge) EdgeWeight {
		return EdgeWeight{ToWeight: to, FroWeight: fro}
	})
}

// ChainRow lists the connections flowing INTO one node as parallel slices:
// Sources[k] is the node-order index the k-th connection comes from and
// Probabilities[k] its transition probability. A source index may repeat
// (parallel edges, self-loops); consumers sum the entries.
type ChainRow struct {
	Sources       []int
	Probabilities []float64
}

// OrderedSparseMarkovChain is a Markov chain in sparse, index-aligned
// form. Order fixes the node indexing once; Rows[i] holds the in-bound
// connections of Order[i]. Summed over all rows, the outgoing
// probabilities of any one source index total 1.
type OrderedSparseMarkovChain struct {
	Order []graph.NodeAddress
	Rows  []ChainRow
}
