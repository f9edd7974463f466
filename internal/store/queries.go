package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
)

// Dataset operations

// SaveDataset stores transactions under name, replacing any dataset with the
// same name. The whole dataset is written in a single SQL transaction.
func (s *Store) SaveDataset(name, source string, transactions []apriori.Transaction[int64]) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM datasets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to replace dataset %s: %w", name, classify(err))
	}

	_, err = tx.Exec(`
		INSERT INTO datasets (name, source, transaction_count, item_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		name,
		source,
		len(transactions),
		len(apriori.Universe(transactions)),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert dataset %s: %w", name, err)
	}

	txStmt, err := tx.Prepare(`INSERT INTO transactions (dataset, position) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer txStmt.Close()

	itemStmt, err := tx.Prepare(`INSERT INTO transaction_items (transaction_id, item) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for i, t := range transactions {
		result, err := txStmt.Exec(name, i)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", i, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get transaction id: %w", err)
		}
		for _, item := range t.Items() {
			if _, err := itemStmt.Exec(id, item); err != nil {
				return fmt.Errorf("failed to insert item %d of transaction %d: %w", item, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset %s: %w", name, err)
	}
	return nil
}

// GetDataset retrieves a dataset's metadata by name.
func (s *Store) GetDataset(name string) (*Dataset, error) {
	query := `
		SELECT name, source, transaction_count, item_count, created_at
		FROM datasets
		WHERE name = ?
	`

	var ds Dataset
	var createdAt string

	err := s.db.QueryRow(query, name).Scan(
		&ds.Name,
		&ds.Source,
		&ds.TransactionCount,
		&ds.ItemCount,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dataset %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset %s: %w", name, classify(err))
	}

	ds.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for %s: %w", name, err)
	}

	return &ds, nil
}

// ListDatasets returns all datasets ordered by name.
func (s *Store) ListDatasets() ([]*Dataset, error) {
	query := `
		SELECT name, source, transaction_count, item_count, created_at
		FROM datasets
		ORDER BY name
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", classify(err))
	}
	defer rows.Close()

	var datasets []*Dataset
	for rows.Next() {
		var ds Dataset
		var createdAt string

		if err := rows.Scan(&ds.Name, &ds.Source, &ds.TransactionCount, &ds.ItemCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}

		ds.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for %s: %w", ds.Name, err)
		}

		datasets = append(datasets, &ds)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating datasets: %w", err)
	}

	return datasets, nil
}

// DeleteDataset removes a dataset and its transactions.
func (s *Store) DeleteDataset(name string) error {
	result, err := s.db.Exec(`DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete dataset %s: %w", name, classify(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("dataset %s: %w", name, ErrNotFound)
	}

	return nil
}

// LoadTransactions returns the transactions of a dataset in import order.
func (s *Store) LoadTransactions(name string) ([]apriori.Transaction[int64], error) {
	if _, err := s.GetDataset(name); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, ti.item
		FROM transactions t
		LEFT JOIN transaction_items ti ON ti.transaction_id = t.id
		WHERE t.dataset = ?
		ORDER BY t.position, ti.item
	`

	rows, err := s.db.Query(query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %s: %w", name, err)
	}
	defer rows.Close()

	var transactions []apriori.Transaction[int64]
	var current []int64
	currentID := int64(-1)

	// Rows arrive grouped by transaction; emit one Transaction per group.
	for rows.Next() {
		var id int64
		var item sql.NullInt64
		if err := rows.Scan(&id, &item); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}

		if id != currentID {
			if currentID != -1 {
				transactions = append(transactions, apriori.NewTransaction(current...))
			}
			currentID = id
			current = current[:0]
		}
		if item.Valid {
			current = append(current, item.Int64)
		}
	}
	if currentID != -1 {
		transactions = append(transactions, apriori.NewTransaction(current...))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Run operations

// InsertRun records a mining run and its frequent itemsets. The run's ID is
// set from the database and also returned.
func (s *Store) InsertRun(run *Run, itemsets []apriori.Frequent[int64]) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO runs
		(dataset, threshold, transaction_count, stop_rule, rounds, universe_size, itemset_count, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.Dataset,
		run.Threshold,
		run.Transactions,
		run.StopRule,
		run.Rounds,
		run.UniverseSize,
		len(itemsets),
		run.StartedAt.UTC().Format(runTimeLayout),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_itemsets (run_id, position, size, items, support)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare itemset insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range itemsets {
		itemsJSON, err := json.Marshal([]int64(f.Items))
		if err != nil {
			return 0, fmt.Errorf("failed to marshal itemset %v: %w", f.Items, err)
		}
		if _, err := stmt.Exec(id, i, f.Items.Len(), string(itemsJSON), f.Support); err != nil {
			return 0, fmt.Errorf("failed to insert itemset %v: %w", f.Items, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = id
	run.ItemsetCount = len(itemsets)
	return id, nil
}

// runTimeLayout keeps fractional seconds fixed-width so started_at sorts as
// text. The driver hands TIMESTAMP columns back as time values, which
// database/sql formats with time.RFC3339Nano, so reads parse with that layout.
const runTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = `id, dataset, threshold, transaction_count, stop_rule, rounds, universe_size, itemset_count, started_at, duration_ms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var startedAt string
	var durationMS int64

	err := row.Scan(
		&run.ID,
		&run.Dataset,
		&run.Threshold,
		&run.Transactions,
		&run.StopRule,
		&run.Rounds,
		&run.UniverseSize,
		&run.ItemsetCount,
		&startedAt,
		&durationMS,
	)
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at for run %d: %w", run.ID, err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond

	return &run, nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, classify(err))
	}
	return run, nil
}

// ListRuns returns runs newest first. An empty dataset lists every run.
func (s *Store) ListRuns(dataset string) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if dataset != "" {
		query += ` WHERE dataset = ?`
		args = append(args, dataset)
	}
	query += ` ORDER BY started_at DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", classify(err))
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// LatestRun returns the most recent run for dataset, or for any dataset when
// dataset is empty.
func (s *Store) LatestRun(dataset string) (*Run, error) {
	runs, err := s.ListRuns(dataset)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs recorded: %w", ErrNotFound)
	}
	return runs[0], nil
}

// GetRunItemsets returns the frequent itemsets of a run in discovery order.
func (s *Store) GetRunItemsets(runID int64) ([]apriori.Frequent[int64], error) {
	query := `
		SELECT items, support
		FROM run_itemsets
		WHERE run_id = ?
		ORDER BY position
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itemsets for run %d: %w", runID, classify(err))
	}
	defer rows.Close()

	var itemsets []apriori.Frequent[int64]
	for rows.Next() {
		var itemsJSON string
		var f apriori.Frequent[int64]

		if err := rows.Scan(&itemsJSON, &f.Support); err != nil {
			return nil, fmt.Errorf("failed to scan itemset row: %w", err)
		}

		var items []int64
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal itemset for run %d: %w", runID, err)
		}
		f.Items = apriori.NewItemset(items...)

		itemsets = append(itemsets, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itemsets: %w", err)
	}

	return itemsets, nil
}
