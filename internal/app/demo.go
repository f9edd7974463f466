package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/config"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/dataset"
)

// demoSupport is the threshold used for the supermarket example.
const demoSupport = 3

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Mine the built-in supermarket example",
	Long: `Mine a small supermarket database in which each item is identified by a
numerical SKU and each transaction is the set of SKUs bought together:

  {1,2,3,4}  {1,2,4}  {1,2}  {2,3,4}  {2,3}  {3,4}  {2,4}

With a support of 3 the pairs {1,2}, {2,3}, {2,4} and {3,4} are frequent and
no triple is.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	transactions := dataset.Sample()

	fmt.Fprintln(cmd.OutOrStdout(), "Transactions:")
	if err := dataset.Write(cmd.OutOrStdout(), transactions); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())

	job := &miningJob{
		source:    dataset.SampleName,
		threshold: demoSupport,
		labels:    &config.Labels{},
		quiet:     true,
		options:   apriori.Options{Logger: newLogger(cmd.ErrOrStderr())},
	}
	_, err := job.run(commandContext(cmd), cmd, transactions)
	return err
}
