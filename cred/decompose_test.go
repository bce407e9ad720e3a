package cred_test

import (
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/credrank/cred"
	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/pagerank"
)

// settleTight converges far below the default threshold so that score
// reconstruction holds to high relative precision.
func (s *CredSuite) settleTight(sg *cred.ScoredGraph) {
	_, err := sg.RunPagerank(
		pagerank.WithConvergenceThreshold(1e-13),
		pagerank.WithMaxIterations(10_000),
	)
	require.NoError(s.T(), err)
}

func (s *CredSuite) TestDecompositionReconstructsScores() {
	sg := s.richView()
	s.settleTight(sg)

	decomp, err := sg.Decompose()
	require.NoError(s.T(), err)
	require.Len(s.T(), decomp, 3)

	for _, d := range decomp {
		sum := d.SyntheticLoopContribution
		for _, n := range d.Neighbors {
			sum += n.ScoreContribution
		}
		require.InEpsilon(s.T(), d.Score, sum, 1e-9)
	}
}

func (s *CredSuite) TestDecompositionSelfLoopCountsBothOrientations() {
	sg := s.richView()
	s.settleTight(sg)

	d, err := sg.DecomposeNode(s.gamma)
	require.NoError(s.T(), err)

	var loopEntries int
	var loopSum float64
	for _, n := range d.Neighbors {
		if n.Neighbor.Edge.Address == s.gg {
			loopEntries++
			loopSum += n.ScoreContribution
		}
	}
	require.Equal(s.T(), 2, loopEntries)

	// Both orientations together carry (to+fro)/totalOut of gamma's score.
	gamma, _, err := sg.Node(s.gamma)
	require.NoError(s.T(), err)
	require.InEpsilon(s.T(), gamma.Score*(0.5+0.25)/1.25, loopSum, 1e-9)
}

func (s *CredSuite) TestDecompositionOrderedByContribution() {
	sg := s.richView()
	s.settleTight(sg)

	decomp, err := sg.Decompose()
	require.NoError(s.T(), err)

	for _, d := range decomp {
		for i := 1; i < len(d.Neighbors); i++ {
			require.GreaterOrEqual(s.T(),
				d.Neighbors[i-1].ScoreContribution,
				d.Neighbors[i].ScoreContribution,
				"node %s entries out of order", d.Address)
		}
	}

	// Canonical node order for the full listing.
	require.Equal(s.T(), s.alpha, decomp[0].Address)
	require.Equal(s.T(), s.beta, decomp[1].Address)
	require.Equal(s.T(), s.gamma, decomp[2].Address)
}

func (s *CredSuite) TestDecomposeNodeErrors() {
	sg := s.richView()

	_, err := sg.DecomposeNode(graph.MustNodeAddress("ghost"))
	require.ErrorIs(s.T(), err, graph.ErrNoSuchNode)
}

func (s *CredSuite) TestDecompositionBeforeRunUsesUniformScores() {
	sg := s.drainView()

	d, err := sg.DecomposeNode(s.beta)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 0.5, d.Score, 1e-15)

	// beta's total outbound weight is just its loop: 0.1; the loop share
	// is score·0.1/0.1 = score.
	require.InDelta(s.T(), 0.5, d.SyntheticLoopContribution, 1e-15)
	require.Len(s.T(), d.Neighbors, 1)
	// alpha contributes score(alpha)·to(ab)/totalOut(alpha) = 0.5·1/1.1.
	require.InDelta(s.T(), 0.5/1.1, d.Neighbors[0].ScoreContribution, 1e-15)
}
