package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/watcher"
)

var (
	watchSupport   int
	watchClassical bool
	watchStopRule  string
	watchWorkers   int
	watchPrune     bool
	watchSave      bool
	watchLabels    string
	watchDebounce  time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-mine a transaction file whenever it changes",
		Long: `Mine a transaction file, then keep watching it and mine again every time it
is written. Useful while appending receipts or tuning an export.

Load errors (for example a half-written line) are logged and the watcher
keeps running. Press Ctrl+C to stop.`,
		Example: `  # Watch a file with support 3
  apriori watch receipts.txt --support 3

  # Record every re-mine in the run history
  apriori watch receipts.txt --support 3 --save`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().IntVarP(&watchSupport, "support", "s", 2, "minimum number of transactions containing an itemset")
	watchCmd.Flags().BoolVar(&watchClassical, "classical", false, "shorthand for --stop-rule when-empty")
	watchCmd.Flags().StringVar(&watchStopRule, "stop-rule", apriori.StopAtMostOne.String(), "when to stop growing itemsets: at-most-one or when-empty")
	watchCmd.MarkFlagsMutuallyExclusive("stop-rule", "classical")
	watchCmd.Flags().IntVar(&watchWorkers, "workers", 1, "goroutines counting supports")
	watchCmd.Flags().BoolVar(&watchPrune, "prune", false, "drop items below the support before generating candidates")
	watchCmd.Flags().BoolVar(&watchSave, "save", false, "record every run in the database")
	watchCmd.Flags().StringVar(&watchLabels, "labels", "", "item labels file (default: ~/.config/apriori/labels)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period after a change before re-mining")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchSupport < 0 {
		return fmt.Errorf("invalid support %d (must be non-negative): %w", watchSupport, apriori.ErrNegativeThreshold)
	}
	if watchWorkers < 1 {
		return fmt.Errorf("invalid workers: %d (must be at least 1)", watchWorkers)
	}

	stopRule, err := resolveStopRule(watchStopRule, watchClassical)
	if err != nil {
		return err
	}

	labels, err := loadLabels(watchLabels)
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr())

	job := &miningJob{
		source:    args[0],
		threshold: watchSupport,
		labels:    labels,
		quiet:     true,
		options: apriori.Options{
			Workers:              watchWorkers,
			StopRule:             stopRule,
			PruneInfrequentItems: watchPrune,
			Logger:               logger,
		},
	}

	if watchSave {
		var st *store.Store
		st, err = openStore(true)
		if err != nil {
			return err
		}
		defer st.Close()
		job.store = st
	}

	w, err := watcher.New(args[0], func(ctx context.Context, transactions []apriori.Transaction[int64]) error {
		fmt.Fprintf(cmd.OutOrStdout(), "\n=== %s (%d transactions) ===\n", time.Now().Format(time.TimeOnly), len(transactions))
		_, err := job.run(ctx, cmd, transactions)
		return err
	}, logger)
	if err != nil {
		return err
	}
	w.SetDebounce(watchDebounce)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx)
}
