// Package markov turns a weighted contribution graph into an ordered
// sparse Markov chain, the input of the credrank/pagerank solver.
//
// What
//
//   - EdgeWeight: the (ToWeight, FroWeight) pair of directed flows one
//     edge carries — forward along Src→Dst and reverse along Dst→Src.
//   - EdgeEvaluator: the injected weighting capability, a pure function
//     from edge to weight pair. The policy that picks the numbers lives
//     with the caller.
//   - NewChain / NewChainFromWeights: fix the canonical node order, derive
//     every node's total out-weight (synthetic loop + outgoing ToWeights +
//     incoming FroWeights), and emit per-destination rows of
//     (source index, probability) connections, each normalized by its
//     source's total out-weight.
//   - TotalOutWeights: the one shared derivation routine for the
//     out-weight cache; credrank/cred calls it for fresh views and again
//     after deserialization, so there is exactly one code path computing
//     it.
//   - UniformDistribution: the 1/n starting vector.
//
// The synthetic loop
//
//	Every node receives a self-connection of the synthetic loop weight
//	(DefaultSyntheticLoopWeight = 1e-3 unless overridden). It keeps every
//	total out-weight strictly positive, so normalization never divides by
//	zero and the chain has no dead ends.
//
// Determinism
//
//	Node order and row layout follow canonical address order; building a
//	chain twice from the same graph and weights yields identical rows.
//
// Errors
//
//   - ErrNilGraph, ErrNilEvaluator  nil inputs.
//   - ErrEmptyGraph                 no nodes to spread mass over.
//   - ErrInvalidLoopWeight          loop weight not positive and finite.
//   - ErrInvalidEdgeWeight          evaluator yielded negative/NaN/Inf.
//   - ErrMissingEdgeWeight          weight map missing an edge.
//
// Complexity (V = |nodes|, E = |edges|)
//
//   - Chain construction: O(V log V + E log E) time, O(V + E) memory.
package markov
