package store

import "time"

// Dataset describes a stored transaction database.
type Dataset struct {
	Name             string
	Source           string // file the dataset was imported from
	TransactionCount int
	ItemCount        int // distinct items
	CreatedAt        time.Time
}

// Run records one mining invocation.
type Run struct {
	ID           int64
	Dataset      string // dataset name, file path or "sample"
	Threshold    int
	Transactions int // transactions mined
	StopRule     string
	Rounds       int
	UniverseSize int
	ItemsetCount int
	StartedAt    time.Time
	Duration     time.Duration
}
