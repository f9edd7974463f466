package store

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
    name TEXT PRIMARY KEY,
    source TEXT,
    transaction_count INTEGER NOT NULL,
    item_count INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset TEXT NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (dataset) REFERENCES datasets(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS transaction_items (
    transaction_id INTEGER NOT NULL,
    item INTEGER NOT NULL,
    PRIMARY KEY (transaction_id, item),
    FOREIGN KEY (transaction_id) REFERENCES transactions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset TEXT NOT NULL,
    threshold INTEGER NOT NULL,
    transaction_count INTEGER NOT NULL,
    stop_rule TEXT NOT NULL,
    rounds INTEGER NOT NULL,
    universe_size INTEGER NOT NULL,
    itemset_count INTEGER NOT NULL,
    started_at TIMESTAMP NOT NULL,
    duration_ms INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_itemsets (
    run_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    size INTEGER NOT NULL,
    items TEXT NOT NULL,
    support INTEGER NOT NULL,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_transactions_dataset ON transactions(dataset, position);
CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
