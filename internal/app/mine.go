package app

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/dataset"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
)

var (
	mineSupport   int
	mineDataset   string
	mineSample    bool
	mineClassical bool
	mineStopRule  string
	mineWorkers   int
	minePrune     bool
	mineSave      bool
	mineLabels    string
	mineQuiet     bool

	mineCmd = &cobra.Command{
		Use:   "mine [file]",
		Short: "Find frequent itemsets in a transaction database",
		Long: `Mine frequent itemsets from a transaction file, a stored dataset or the
built-in sample.

Candidates of size 2, 3, 4, ... are generated from every distinct item and
counted against all transactions. An itemset is frequent when at least
--support transactions contain it. Results are printed smallest itemsets first.

By default mining stops after a round that keeps at most one itemset. With
--stop-rule when-empty (or --classical) it only stops after a round that keeps
none; both settings report the same itemsets.

Item labels are read from ~/.config/apriori/labels ("SKU = name" per line)
unless --labels points elsewhere.`,
		Example: `  # Mine a file
  apriori mine receipts.txt --support 3

  # Mine a stored dataset and record the run
  apriori mine --dataset weekday --support 5 --save

  # Count supports on 8 goroutines and prune rare items first
  apriori mine receipts.txt --support 50 --workers 8 --prune`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMine,
	}
)

func init() {
	mineCmd.Flags().IntVarP(&mineSupport, "support", "s", 2, "minimum number of transactions containing an itemset")
	mineCmd.Flags().StringVar(&mineDataset, "dataset", "", "mine a dataset stored with 'apriori import'")
	mineCmd.Flags().BoolVar(&mineSample, "sample", false, "mine the built-in supermarket example")
	mineCmd.Flags().BoolVar(&mineClassical, "classical", false, "shorthand for --stop-rule when-empty")
	mineCmd.Flags().StringVar(&mineStopRule, "stop-rule", apriori.StopAtMostOne.String(), "when to stop growing itemsets: at-most-one or when-empty")
	mineCmd.MarkFlagsMutuallyExclusive("stop-rule", "classical")
	mineCmd.Flags().IntVar(&mineWorkers, "workers", 1, fmt.Sprintf("goroutines counting supports (this machine has %d CPUs)", runtime.NumCPU()))
	mineCmd.Flags().BoolVar(&minePrune, "prune", false, "drop items below the support before generating candidates")
	mineCmd.Flags().BoolVar(&mineSave, "save", false, "record the run in the database")
	mineCmd.Flags().StringVar(&mineLabels, "labels", "", "item labels file (default: ~/.config/apriori/labels)")
	mineCmd.Flags().BoolVarP(&mineQuiet, "quiet", "q", false, "suppress the progress spinner")
}

func runMine(cmd *cobra.Command, args []string) error {
	// Validate flags
	if mineSupport < 0 {
		return fmt.Errorf("invalid support %d (must be non-negative): %w", mineSupport, apriori.ErrNegativeThreshold)
	}
	if mineWorkers < 1 {
		return fmt.Errorf("invalid workers: %d (must be at least 1)", mineWorkers)
	}

	sources := 0
	if len(args) == 1 {
		sources++
	}
	if mineDataset != "" {
		sources++
	}
	if mineSample {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("specify exactly one of a file, --dataset or --sample")
	}

	stopRule, err := resolveStopRule(mineStopRule, mineClassical)
	if err != nil {
		return err
	}

	labels, err := loadLabels(mineLabels)
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}

	job := &miningJob{
		threshold: mineSupport,
		labels:    labels,
		quiet:     mineQuiet,
		options: apriori.Options{
			Workers:              mineWorkers,
			StopRule:             stopRule,
			PruneInfrequentItems: minePrune,
			Logger:               newLogger(cmd.ErrOrStderr()),
		},
	}

	var st *store.Store
	if mineSave || mineDataset != "" {
		st, err = openStore(mineSave)
		if err != nil {
			return err
		}
		defer st.Close()
	}
	if mineSave {
		job.store = st
	}

	var transactions []apriori.Transaction[int64]
	switch {
	case mineSample:
		job.source = dataset.SampleName
		transactions = dataset.Sample()
	case mineDataset != "":
		job.source = mineDataset
		transactions, err = dataset.NewImporter(st).Load(mineDataset)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("dataset %q not found (see 'apriori datasets')", mineDataset)
		}
		if err != nil {
			return err
		}
	default:
		job.source = args[0]
		transactions, err = dataset.LoadFile(args[0])
		if err != nil {
			return err
		}
	}

	_, err = job.run(commandContext(cmd), cmd, transactions)
	return err
}
