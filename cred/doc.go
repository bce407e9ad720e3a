// Package cred annotates a graph with relative importance scores and
// explains where every point of score comes from.
//
// What:
//
//	A ScoredGraph is a frozen view over a graph.Graph. Construction
//	evaluates each edge into a ToWeight/FroWeight pair, attaches a
//	synthetic self-loop of configurable weight to every node, and seeds
//	each node with a uniform score. RunPagerank settles the scores into
//	the stationary distribution of the induced Markov chain, after which
//	Neighbors and DecomposeNode break any node's score into the exact
//	contributions flowing in through each connection.
//
// Why:
//
//	Scores alone say who matters; decompositions say why. Because every
//	node retains a sliver of score through its synthetic loop, the chain
//	stays irreducible even on graphs with sinks or isolated nodes, and
//	every node's total outbound weight is strictly positive.
//
// Change detection:
//
//	The view snapshots the graph's modification counter at construction.
//	Every operation revalidates it and fails with ErrModifiedGraph once
//	the graph has mutated; stale numbers are never served silently.
//	Rebuild the view (or keep the graph frozen) after mutations.
//
// Determinism:
//
//	Listings follow the canonical address order, decompositions order
//	contributions deterministically, and serialization is canonical:
//	equal views produce byte-identical JSON.
//
// Usage:
//
//	sg, err := cred.New(g, markov.ConstantEvaluator(1, 0.5),
//	    cred.WithSelfLoopWeight(1e-3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := sg.RunPagerank(); err != nil {
//	    log.Fatal(err)
//	}
//	scaled, err := sg.ScaledScores(cred.DefaultTotalScore, "")
//	...
//	breakdown, err := sg.DecomposeNode(addr)
//	...
//
// Errors:
//
//	ErrModifiedGraph     - the underlying graph mutated after construction
//	ErrNilGraph          - New received a nil graph
//	ErrNilEvaluator      - New received a nil evaluator
//	ErrEmptyGraph        - the graph has no nodes
//	ErrOptionViolation   - an Option carried an invalid value
//	ErrInvalidTotalScore - ScaledScores target not positive and finite
//	ErrZeroScoreMass     - nothing under the anchor prefix carries score
//	ErrFormatVersion     - serialized data has an unknown version tag
//	ErrMalformedPayload  - serialized data is structurally inconsistent
//	graph.ErrNoSuchNode  - a lookup referenced an absent node
package cred
