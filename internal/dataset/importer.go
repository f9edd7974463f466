package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
)

// SampleName is the source label used for the built-in example database.
const SampleName = "sample"

// Importer loads transaction files into the store.
type Importer struct {
	store *store.Store
}

// NewImporter creates an Importer backed by st.
func NewImporter(st *store.Store) *Importer {
	return &Importer{store: st}
}

// Import parses path and stores it as dataset name. An empty name is derived
// from the file name without its extension.
func (im *Importer) Import(name, path string) (*store.Dataset, error) {
	if name == "" {
		name = NameFromPath(path)
	}

	transactions, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	source, err := filepath.Abs(path)
	if err != nil {
		source = path
	}

	if err := im.store.SaveDataset(name, source, transactions); err != nil {
		return nil, fmt.Errorf("failed to save dataset %s: %w", name, err)
	}

	return im.store.GetDataset(name)
}

// ImportSample stores the built-in example under SampleName.
func (im *Importer) ImportSample() (*store.Dataset, error) {
	if err := im.store.SaveDataset(SampleName, "", Sample()); err != nil {
		return nil, fmt.Errorf("failed to save sample dataset: %w", err)
	}
	return im.store.GetDataset(SampleName)
}

// Load returns the transactions of a stored dataset.
func (im *Importer) Load(name string) ([]apriori.Transaction[int64], error) {
	transactions, err := im.store.LoadTransactions(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", name, err)
	}
	return transactions, nil
}

// NameFromPath derives a dataset name from a file path: "data/shop.txt" -> "shop".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
