// Package pagerank finds the stationary distribution of an ordered sparse
// Markov chain by power iteration.
//
// What:
//
//	FindStationaryDistribution starts from the uniform distribution and
//	repeatedly redistributes probability mass along the chain's rows until
//	one further step would change no component by more than the convergence
//	threshold (max-norm), or until the iteration cap is reached. The cap is
//	a reported outcome, not a failure: callers inspect Result.ConvergenceDelta
//	to see how settled the vector is.
//
// Why:
//
//	Chains produced by markov.NewChain always carry a synthetic self-loop on
//	every node, which makes them irreducible and aperiodic, so power
//	iteration converges to a unique stationary vector. The solver itself
//	stays agnostic: it iterates whatever well-formed chain it is given.
//
// Determinism:
//
//	The trajectory is a pure function of the chain and the options. Yielding
//	to the scheduler is paced on the wall clock but only ever pauses the
//	loop between steps; it never reorders or perturbs the arithmetic, so
//	two runs with equal inputs produce bit-identical distributions.
//
// Complexity:
//
//	O(iterations · (V + E)) time, O(V) extra memory.
//
// Usage:
//
//	chain, _ := markov.NewChain(g, evaluator, markov.DefaultSyntheticLoopWeight)
//	res, err := pagerank.FindStationaryDistribution(
//	    chain,
//	    pagerank.WithConvergenceThreshold(1e-7),
//	    pagerank.WithMaxIterations(255),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, a := range chain.Order {
//	    fmt.Printf("%s: %.6f\n", a, res.Distribution[i])
//	}
//
// Errors:
//
//	ErrNilChain        - chain pointer is nil
//	ErrEmptyChain      - chain has no nodes
//	ErrMalformedChain  - rows disagree with the node order
//	ErrOptionViolation - an Option carried an invalid value
//	context errors     - Ctx canceled at a yield point
package pagerank
