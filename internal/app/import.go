package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/dataset"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/output"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
)

var (
	importName   string
	importSample bool

	importCmd = &cobra.Command{
		Use:   "import [file]",
		Short: "Store a transaction file as a named dataset",
		Long: `Parse a transaction file and store it in the apriori database so it can be
mined repeatedly with 'apriori mine --dataset NAME'.

Importing under an existing name replaces that dataset. Recorded runs are kept.`,
		Example: `  # Import as "receipts" (name taken from the file)
  apriori import receipts.txt

  # Import under an explicit name
  apriori import data/2024-03.txt --name march

  # Import the built-in supermarket example as "sample"
  apriori import --sample`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImport,
	}
)

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "dataset name (default: file name without extension)")
	importCmd.Flags().BoolVar(&importSample, "sample", false, "import the built-in supermarket example")
}

func runImport(cmd *cobra.Command, args []string) error {
	if importSample == (len(args) == 1) {
		return fmt.Errorf("specify either a file or --sample")
	}

	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	im := dataset.NewImporter(st)

	source := dataset.SampleName
	if !importSample {
		source = args[0]
	}
	spinner := output.NewSpinner("Importing " + source)
	spinner.SetWriter(cmd.OutOrStdout())
	spinner.Start()

	var ds *store.Dataset
	if importSample {
		ds, err = im.ImportSample()
	} else {
		ds, err = im.Import(importName, args[0])
	}
	if err != nil {
		spinner.Stop()
		return err
	}

	spinner.StopWithMessage(fmt.Sprintf("✓ Imported %d transactions over %d items as %q",
		ds.TransactionCount, ds.ItemCount, ds.Name))
	return nil
}
