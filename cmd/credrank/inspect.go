package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/credrank/cred"
	"github.com/katalvlaran/credrank/graph"
)

func newInspectCmd() *cobra.Command {
	var runID string

	inspectCmd := &cobra.Command{
		Use:   "inspect <repoID> <part>...",
		Short: "Break a node's score down into its flows",
		Long: `Loads a recorded score run and prints where the named node's score came
from: the synthetic self-loop share plus one row per incident edge,
largest contribution first. The node is addressed by its parts, e.g.

  credrank inspect myorg/research github user alice`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoID := args[0]
			addr, err := graph.NewNodeAddress(args[1:]...)
			if err != nil {
				return fmt.Errorf("bad node address: %w", err)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if runID == "" {
				runs, err := store.ListScoreRuns(repoID)
				if err != nil {
					return fmt.Errorf("list runs for %s: %w", repoID, err)
				}
				if len(runs) == 0 {
					return fmt.Errorf("no score runs recorded for %s; run \"credrank score %s\" first", repoID, repoID)
				}
				runID = runs[0].RunID
			}

			sg, err := store.LoadScoreRun(runID)
			if err != nil {
				return fmt.Errorf("load run %s: %w", runID, err)
			}

			dec, err := sg.DecomposeNode(addr)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run   %s\n", runID)
			printDecomposition(out, dec)

			return nil
		},
	}

	inspectCmd.Flags().StringVar(&runID, "run", "", "score run ID to inspect (default: the latest run for the repo)")

	return inspectCmd
}

// printDecomposition renders one node's score breakdown as a table.
func printDecomposition(w io.Writer, dec cred.NodeDecomposition) {
	fmt.Fprintf(w, "node  %s\n", dec.Address.String())
	fmt.Fprintf(w, "score %.6f (synthetic loop %.6f)\n\n", dec.Score, dec.SyntheticLoopContribution)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTRIBUTION\tSHARE\tDIR\tEDGE\tADJACENT")
	for _, nb := range dec.Neighbors {
		share := 0.0
		if dec.Score > 0 {
			share = nb.ScoreContribution / dec.Score * 100
		}
		fmt.Fprintf(tw, "%.6f\t%.1f%%\t%s\t%s\t%s\n",
			nb.ScoreContribution, share,
			nb.Neighbor.Direction,
			nb.Neighbor.Edge.Address.String(),
			nb.Neighbor.Node.String())
	}
	_ = tw.Flush()
}

func newRunsCmd() *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs <repoID>",
		Short: "List recorded score runs for a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoID := args[0]

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListScoreRuns(repoID)
			if err != nil {
				return fmt.Errorf("list runs for %s: %w", repoID, err)
			}
			if len(runs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no score runs recorded for %s\n", repoID)

				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tCREATED\tITERATIONS\tDELTA\tNODES\tEDGES")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.3g\t%d\t%d\n",
					r.RunID, r.CreatedAt.Format(time.RFC3339),
					r.Iterations, r.ConvergenceDelta, r.NodeCount, r.EdgeCount)
			}

			return tw.Flush()
		},
	}

	return runsCmd
}
