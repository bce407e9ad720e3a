package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/credrank/cred"
	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/markov"
	"github.com/katalvlaran/credrank/observability"
	"github.com/katalvlaran/credrank/pagerank"
)

func newScoreCmd() *cobra.Command {
	var (
		topN        int
		filterExpr  string
		anchorParts []string
	)

	scoreCmd := &cobra.Command{
		Use:   "score <repoID>",
		Short: "Run pagerank over a stored graph and persist the scores",
		Long: `Loads the repository's merged graph from the registry, weighs its edges
with the configured policy, runs the pagerank solver, records the run in the
registry, and prints the top scaled scores.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoID := args[0]
			ctx := cmd.Context()
			logger := observability.GetLogger()

			var matcher glob.Glob
			if filterExpr != "" {
				m, err := glob.Compile(filterExpr)
				if err != nil {
					return fmt.Errorf("bad --filter pattern %q: %w", filterExpr, err)
				}
				matcher = m
			}

			anchorPrefix, err := graph.NewNodeAddress(anchorParts...)
			if err != nil {
				return fmt.Errorf("bad --anchor prefix: %w", err)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			g, err := store.LoadGraph(repoID)
			if err != nil {
				return fmt.Errorf("load graph for %s: %w", repoID, err)
			}

			wc, err := loadWeightsConfig()
			if err != nil {
				return err
			}
			ev, err := evaluatorFromConfig(wc)
			if err != nil {
				return err
			}

			selfLoop := viper.GetFloat64("weights.self_loop")
			sg, err := cred.New(g, ev, cred.WithSelfLoopWeight(selfLoop))
			if err != nil {
				return fmt.Errorf("build scored graph for %s: %w", repoID, err)
			}

			threshold := viper.GetFloat64("solver.threshold")
			maxIterations := viper.GetInt("solver.max_iterations")

			start := time.Now()
			res, err := sg.RunPagerank(
				pagerank.WithContext(ctx),
				pagerank.WithConvergenceThreshold(threshold),
				pagerank.WithMaxIterations(maxIterations),
			)
			if err != nil {
				observability.ScoreRunsTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("score run for %s: %w", repoID, err)
			}
			elapsed := time.Since(start)

			outcome := "converged"
			if res.ConvergenceDelta > threshold {
				outcome = "capped"
			}
			observability.ScoreRunsTotal.WithLabelValues(outcome).Inc()
			observability.ScoreRunDuration.Observe(elapsed.Seconds())
			observability.ScoreIterations.Observe(float64(res.Iterations))
			observability.ScoreConvergenceDelta.Set(res.ConvergenceDelta)

			runID, err := store.SaveScoreRun(repoID, sg, res)
			if err != nil {
				return fmt.Errorf("save score run for %s: %w", repoID, err)
			}
			observability.StoreWritesTotal.WithLabelValues("score_run").Inc()

			logger.Info("score run saved",
				zap.String("repo", repoID),
				zap.String("run_id", runID),
				zap.String("outcome", outcome),
				zap.Int("iterations", res.Iterations),
				zap.Float64("convergence_delta", res.ConvergenceDelta),
				zap.Duration("elapsed", elapsed))

			totalScore := viper.GetFloat64("solver.total_score")
			scaled, err := sg.ScaledScores(totalScore, anchorPrefix)
			if err != nil {
				return fmt.Errorf("scale scores for %s: %w", repoID, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %s after %d iteration(s), delta %.3g\n",
				runID, outcome, res.Iterations, res.ConvergenceDelta)
			printTopScores(out, scaled, matcher, topN)

			return nil
		},
	}

	scoreCmd.Flags().Float64("self-loop-weight", markov.DefaultSyntheticLoopWeight, "synthetic self-loop weight added to every node")
	scoreCmd.Flags().Float64("threshold", pagerank.DefaultConvergenceThreshold, "stop once one more step would move no score by more than this")
	scoreCmd.Flags().Int("max-iterations", pagerank.DefaultMaxIterations, "cap on applied power-iteration steps")
	scoreCmd.Flags().Float64("total-score", cred.DefaultTotalScore, "scale so the anchored score mass sums to this")
	scoreCmd.Flags().IntVar(&topN, "top", 10, "print only the best N nodes (0 = all)")
	scoreCmd.Flags().StringVar(&filterExpr, "filter", "", `glob over rendered addresses, e.g. "*alice*"`)
	scoreCmd.Flags().StringArrayVar(&anchorParts, "anchor", nil, "node address part anchoring the scale, repeatable (default: whole graph)")

	_ = viper.BindPFlag("weights.self_loop", scoreCmd.Flags().Lookup("self-loop-weight"))
	_ = viper.BindPFlag("solver.threshold", scoreCmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("solver.max_iterations", scoreCmd.Flags().Lookup("max-iterations"))
	_ = viper.BindPFlag("solver.total_score", scoreCmd.Flags().Lookup("total-score"))

	return scoreCmd
}

// printTopScores renders the scaled scores best-first. Ties break on
// address order so output is reproducible.
func printTopScores(w io.Writer, scaled map[graph.NodeAddress]float64, matcher glob.Glob, top int) {
	type entry struct {
		addr  graph.NodeAddress
		score float64
	}

	entries := make([]entry, 0, len(scaled))
	for addr, score := range scaled {
		if matcher != nil && !matcher.Match(addr.String()) {
			continue
		}
		entries = append(entries, entry{addr: addr, score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}

		return entries[i].addr < entries[j].addr
	})
	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%12.2f  %s\n", e.score, e.addr.String())
	}
}
