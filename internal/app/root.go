package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool

	// RootCmd is the root command for apriori
	RootCmd = &cobra.Command{
		Use:   "apriori",
		Short: "Frequent itemset mining for transaction databases",
		Long: `apriori finds items that are frequently bought together.

Given a transaction database (one receipt per line, each a set of SKUs) and a
minimum support, it reports every combination of two or more items that occurs
in at least that many transactions.

Quick Start:
  1. apriori demo
  2. apriori mine receipts.txt --support 3
  3. apriori import receipts.txt && apriori mine --dataset receipts --save

Transaction file format:
  {1,2,3,4}      # braces optional
  1 2 4          # commas and/or whitespace
  # comments and blank lines are skipped

Examples:
  # Mine a file directly
  apriori mine receipts.txt --support 3

  # Store a dataset and keep a history of runs
  apriori import receipts.txt --name weekday
  apriori mine --dataset weekday --support 5 --save
  apriori runs

  # Re-mine whenever the file changes
  apriori watch receipts.txt --support 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "apriori: frequent itemset mining for transaction databases")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'apriori demo' to mine the built-in supermarket example.")
			fmt.Fprintln(out, "Run 'apriori --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.apriori/apriori.db)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each mining round to stderr")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(mineCmd)
	RootCmd.AddCommand(demoCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(datasetsCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	// Create .apriori directory if it doesn't exist
	dir := filepath.Join(home, ".apriori")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create apriori directory: %w", err)
	}

	return filepath.Join(dir, "apriori.db"), nil
}
