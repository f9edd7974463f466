package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/output"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
)

var (
	runsDataset string
	runsShow    int64
	runsLatest  bool
	runsLabels  string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the history of saved mining runs",
	Long: `List mining runs recorded with 'apriori mine --save' or 'apriori watch --save',
newest first, or show the itemsets found by one run.`,
	Example: `  # All runs
  apriori runs

  # Runs for one dataset
  apriori runs --dataset weekday

  # Itemsets of run 12, or of the latest run
  apriori runs --show 12
  apriori runs --latest`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsDataset, "dataset", "", "only runs of this dataset")
	runsCmd.Flags().Int64Var(&runsShow, "show", 0, "show the itemsets of a run")
	runsCmd.Flags().BoolVar(&runsLatest, "latest", false, "show the itemsets of the most recent run")
	runsCmd.Flags().StringVar(&runsLabels, "labels", "", "item labels file (default: ~/.config/apriori/labels)")
	runsCmd.MarkFlagsMutuallyExclusive("show", "latest")

	// Register with root command
	RootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	var run *store.Run
	switch {
	case runsShow != 0:
		run, err = st.GetRun(runsShow)
	case runsLatest:
		run, err = st.LatestRun(runsDataset)
	default:
		runs, err := st.ListRuns(runsDataset)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RenderRunTable(runs))
		return nil
	}
	if err != nil {
		return err
	}

	return showRun(cmd, st, run)
}

// showRun prints one run's header and its itemsets, smallest first.
func showRun(cmd *cobra.Command, st *store.Store, run *store.Run) error {
	itemsets, err := st.GetRunItemsets(run.ID)
	if err != nil {
		return err
	}
	apriori.SortFrequentBySize(itemsets)

	labels, err := loadLabels(runsLabels)
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run #%d on %s (stop rule %s)\n", run.ID, run.Dataset, run.StopRule)
	fmt.Fprintln(out, output.RenderSummary(len(itemsets), run.Rounds, run.UniverseSize, run.Threshold, run.Duration))
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderItemsetTable(itemsets, run.Transactions, labels))
	return nil
}
