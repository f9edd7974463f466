package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/dataset"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/output"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
)

var (
	datasetsDelete string
	datasetsExport string

	datasetsCmd = &cobra.Command{
		Use:   "datasets",
		Short: "List, export or delete stored datasets",
		Example: `  # List datasets
  apriori datasets

  # Print a dataset in the transaction file format
  apriori datasets --export weekday > weekday.txt

  # Delete a dataset
  apriori datasets --delete weekday`,
		Args: cobra.NoArgs,
		RunE: runDatasets,
	}
)

func init() {
	datasetsCmd.Flags().StringVar(&datasetsDelete, "delete", "", "delete the named dataset")
	datasetsCmd.Flags().StringVar(&datasetsExport, "export", "", "print the named dataset to stdout")
	datasetsCmd.MarkFlagsMutuallyExclusive("delete", "export")
}

func runDatasets(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	switch {
	case datasetsDelete != "":
		if err := st.DeleteDataset(datasetsDelete); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("dataset %q not found", datasetsDelete)
			}
			return err
		}
		fmt.Fprintf(out, "✓ Deleted dataset %q\n", datasetsDelete)
		return nil

	case datasetsExport != "":
		transactions, err := dataset.NewImporter(st).Load(datasetsExport)
		if err != nil {
			return err
		}
		return dataset.Write(out, transactions)
	}

	datasets, err := st.ListDatasets()
	if err != nil {
		return err
	}
	fmt.Fprint(out, output.RenderDatasetTable(datasets))
	return nil
}
