package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/config"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/output"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
)

// newLogger returns the structured logger shared by the miner and watcher.
// Debug records (one per mining round) are only emitted with --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore opens the database, creating the schema when create is set.
func openStore(create bool) (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if create {
		if err := st.CreateSchema(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to create database schema: %w", err)
		}
	}

	return st, nil
}

// loadLabels reads the item labels file. An empty path means the default
// location under the config directory.
func loadLabels(path string) (*config.Labels, error) {
	if path != "" {
		return config.LoadLabelsFile(path)
	}
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return config.LoadLabels(dir)
}

// commandContext returns the command's context, or Background when the
// command is invoked outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveStopRule combines --stop-rule with its --classical shorthand.
func resolveStopRule(name string, classical bool) (apriori.StopRule, error) {
	if classical {
		return apriori.StopWhenEmpty, nil
	}
	return apriori.ParseStopRule(name)
}

// miningJob is one mining invocation as the CLI runs it.
type miningJob struct {
	source    string // dataset name, file path or "sample"
	threshold int
	options   apriori.Options
	labels    *config.Labels
	store     *store.Store // nil disables saving
	quiet     bool         // no spinner
}

// run mines transactions, prints the result sorted by size and records the
// run when a store is set.
func (j *miningJob) run(ctx context.Context, cmd *cobra.Command, transactions []apriori.Transaction[int64]) (*apriori.Result[int64], error) {
	if j.threshold < 0 {
		return nil, fmt.Errorf("invalid support %d: %w", j.threshold, apriori.ErrNegativeThreshold)
	}

	out := cmd.OutOrStdout()
	miner := apriori.NewMiner[int64](j.options)

	var spinner *output.Spinner
	if !j.quiet {
		spinner = output.NewSpinner("Mining itemsets")
		spinner.SetWriter(cmd.ErrOrStderr())
		spinner.Start()
	}

	started := time.Now()
	res, err := miner.Mine(ctx, transactions, j.threshold)
	took := time.Since(started)

	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mine %s: %w", j.source, err)
	}

	itemsets := append([]apriori.Frequent[int64](nil), res.Itemsets...)
	apriori.SortFrequentBySize(itemsets)

	fmt.Fprintln(out, output.RenderSummary(len(itemsets), res.Rounds, res.UniverseSize, j.threshold, took))
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderItemsetTable(itemsets, len(transactions), j.labels))

	if j.store != nil {
		run := &store.Run{
			Dataset:      j.source,
			Threshold:    j.threshold,
			Transactions: len(transactions),
			StopRule:     j.options.StopRule.String(),
			Rounds:       res.Rounds,
			UniverseSize: res.UniverseSize,
			StartedAt:    started,
			Duration:     took,
		}
		id, err := j.store.InsertRun(run, res.Itemsets)
		if err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(out, "\nSaved as run #%d (view with 'apriori runs --show %d')\n", id, id)
	}

	return res, nil
}
