package pagerank_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/markov"
	"github.com/katalvlaran/credrank/pagerank"
)

// PageRankSuite exercises the solver against two-node chains whose
// stationary behavior is known in closed form.
type PageRankSuite struct {
	suite.Suite
	a graph.NodeAddress
	b graph.NodeAddress
}

func (s *PageRankSuite) SetupTest() {
	s.a = graph.MustNodeAddress("user", "alpha")
	s.b = graph.MustNodeAddress("user", "beta")
}

// buildChain returns the chain of a two-node graph with a single edge
// a→b weighted (to, fro) and the given synthetic loop weight.
func (s *PageRankSuite) buildChain(to, fro, loop float64) *markov.OrderedSparseMarkovChain {
	g := graph.New()
	require.NoError(s.T(), g.AddNode(s.a))
	require.NoError(s.T(), g.AddNode(s.b))
	require.NoError(s.T(), g.AddEdge(graph.Edge{
		Address: graph.MustEdgeAddress("follows", "ab"),
		Src:     s.a,
		Dst:     s.b,
	}))

	chain, err := markov.NewChain(g, markov.ConstantEvaluator(to, fro), loop)
	require.NoError(s.T(), err)

	return chain
}

// drainChain sends all non-loop mass a→b; its stationary vector is (0, 1).
func (s *PageRankSuite) drainChain() *markov.OrderedSparseMarkovChain {
	return s.buildChain(1, 0, 0.1)
}

// slowChain mixes at rate ≈0.74 per step, so it needs many iterations to
// settle; its stationary vector is (6/17, 11/17).
func (s *PageRankSuite) slowChain() *markov.OrderedSparseMarkovChain {
	return s.buildChain(0.2, 0.1, 1)
}

func (s *PageRankSuite) TestDefaultsConvergeOnDrain() {
	res, err := pagerank.FindStationaryDistribution(s.drainChain())
	require.NoError(s.T(), err)

	require.Len(s.T(), res.Distribution, 2)
	require.InDelta(s.T(), 0, res.Distribution[0], 1e-6)
	require.InDelta(s.T(), 1, res.Distribution[1], 1e-6)
	require.Greater(s.T(), res.Distribution[1], res.Distribution[0])
	require.LessOrEqual(s.T(), res.ConvergenceDelta, pagerank.DefaultConvergenceThreshold)
	require.Greater(s.T(), res.Iterations, 0)
}

func (s *PageRankSuite) TestZeroIterationsKeepsUniform() {
	res, err := pagerank.FindStationaryDistribution(s.slowChain(), pagerank.WithMaxIterations(0))
	require.NoError(s.T(), err)

	require.Equal(s.T(), []float64{0.5, 0.5}, res.Distribution)
	require.Equal(s.T(), 0, res.Iterations)
	require.Greater(s.T(), res.ConvergenceDelta, 0.0)
}

func (s *PageRankSuite) TestTightThresholdHitsCap() {
	res, err := pagerank.FindStationaryDistribution(
		s.slowChain(),
		pagerank.WithConvergenceThreshold(1e-18),
		pagerank.WithMaxIterations(17),
	)
	require.NoError(s.T(), err)

	require.Equal(s.T(), 17, res.Iterations)
	require.Greater(s.T(), res.ConvergenceDelta, 1e-18)
}

func (s *PageRankSuite) TestGenerousThresholdConverges() {
	res, err := pagerank.FindStationaryDistribution(
		s.slowChain(),
		pagerank.WithConvergenceThreshold(0.01),
		pagerank.WithMaxIterations(170),
	)
	require.NoError(s.T(), err)

	require.LessOrEqual(s.T(), res.ConvergenceDelta, 0.01)
	require.Less(s.T(), res.Iterations, 170)
}

func (s *PageRankSuite) TestMassIsConserved() {
	res, err := pagerank.FindStationaryDistribution(s.slowChain())
	require.NoError(s.T(), err)

	var sum float64
	for _, p := range res.Distribution {
		sum += p
	}
	require.InDelta(s.T(), 1, sum, 1e-12)
}

func (s *PageRankSuite) TestSlowChainStationary() {
	res, err := pagerank.FindStationaryDistribution(s.slowChain())
	require.NoError(s.T(), err)

	require.InDelta(s.T(), 6.0/17.0, res.Distribution[0], 1e-6)
	require.InDelta(s.T(), 11.0/17.0, res.Distribution[1], 1e-6)
}

func (s *PageRankSuite) TestOptionViolations() {
	chain := s.drainChain()
	bad := [][]pagerank.Option{
		{pagerank.WithConvergenceThreshold(-1)},
		{pagerank.WithConvergenceThreshold(math.NaN())},
		{pagerank.WithConvergenceThreshold(math.Inf(1))},
		{pagerank.WithMaxIterations(-3)},
		{pagerank.WithYieldInterval(0)},
		{pagerank.WithYieldInterval(-time.Second)},
	}
	for _, opts := range bad {
		_, err := pagerank.FindStationaryDistribution(chain, opts...)
		require.ErrorIs(s.T(), err, pagerank.ErrOptionViolation)
	}
}

func (s *PageRankSuite) TestNilAndEmptyChains() {
	_, err := pagerank.FindStationaryDistribution(nil)
	require.ErrorIs(s.T(), err, pagerank.ErrNilChain)

	_, err = pagerank.FindStationaryDistribution(&markov.OrderedSparseMarkovChain{})
	require.ErrorIs(s.T(), err, pagerank.ErrEmptyChain)
}

func (s *PageRankSuite) TestMalformedChains() {
	order := []graph.NodeAddress{s.a, s.b}
	malformed := []*markov.OrderedSparseMarkovChain{
		{ // row count disagrees with the order
			Order: order,
			Rows:  []markov.ChainRow{{Sources: []int{0}, Probabilities: []float64{1}}},
		},
		{ // source index out of range
			Order: order,
			Rows: []markov.ChainRow{
				{Sources: []int{5}, Probabilities: []float64{1}},
				{Sources: []int{1}, Probabilities: []float64{1}},
			},
		},
		{ // parallel slices of different length
			Order: order,
			Rows: []markov.ChainRow{
				{Sources: []int{0, 1}, Probabilities: []float64{1}},
				{Sources: []int{1}, Probabilities: []float64{1}},
			},
		},
	}
	for _, chain := range malformed {
		_, err := pagerank.FindStationaryDistribution(chain)
		require.ErrorIs(s.T(), err, pagerank.ErrMalformedChain)
	}
}

func (s *PageRankSuite) TestCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pagerank.FindStationaryDistribution(
		s.slowChain(),
		pagerank.WithContext(ctx),
		pagerank.WithConvergenceThreshold(0),
		pagerank.WithMaxIterations(10_000),
		pagerank.WithYieldInterval(time.Nanosecond),
	)
	require.ErrorIs(s.T(), err, context.Canceled)
}

func (s *PageRankSuite) TestNilContextKeepsDefault() {
	res, err := pagerank.FindStationaryDistribution(s.drainChain(), pagerank.WithContext(nil))
	require.NoError(s.T(), err)
	require.NotNil(s.T(), res)
}

func TestPageRankSuite(t *testing.T) {
	suite.Run(t, new(PageRankSuite))
}
