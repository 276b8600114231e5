package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"itemdeck/internal"
)

var ErrNoSnapshot = errors.New("no raw snapshot stored")

type DB struct {
	conn *sql.DB
}

type Snapshot struct {
	ID        int64
	Source    string
	Language  string
	Payload   []byte
	ItemCount int
	FetchedAt string
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS raw_snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  language TEXT NOT NULL DEFAULT '',
  payload BLOB NOT NULL,
  itemCount INTEGER NOT NULL,
  fetchedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS processed_items (
  ordinal INTEGER PRIMARY KEY,
  className TEXT NOT NULL,
  id INTEGER NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  tier INTEGER NOT NULL,
  cost INTEGER NOT NULL,
  itemJson TEXT NOT NULL,
  runId TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_processed_items_className ON processed_items(className);

CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  snapshotId INTEGER,
  rawCount INTEGER NOT NULL,
  shopCount INTEGER NOT NULL,
  statCount INTEGER NOT NULL,
  startedAt TEXT NOT NULL,
  durationMs INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(snapshotId) REFERENCES raw_snapshots(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	if err := d.dropLegacyProcessedItems(); err != nil {
		return err
	}
	_, err := d.conn.Exec(schema)
	return err
}

// dropLegacyProcessedItems removes a processed_items table keyed by className.
// Its rows are derived data and the next process run rebuilds them.
func (d *DB) dropLegacyProcessedItems() error {
	var columns, ordinal int
	err := d.conn.QueryRow(`
SELECT COUNT(*), COALESCE(SUM(name = 'ordinal'), 0) FROM pragma_table_info('processed_items')
`).Scan(&columns, &ordinal)
	if err != nil {
		return err
	}
	if columns == 0 || ordinal > 0 {
		return nil
	}
	_, err = d.conn.Exec(`DROP TABLE processed_items`)
	return err
}

func (d *DB) InsertSnapshot(source, language string, payload []byte, itemCount int) (int64, error) {
	result, err := d.conn.Exec(`
INSERT INTO raw_snapshots (source, language, payload, itemCount) VALUES (?, ?, ?, ?)
`, source, language, payload, itemCount)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// LatestSnapshot returns the most recently stored payload or ErrNoSnapshot.
func (d *DB) LatestSnapshot() (Snapshot, error) {
	var s Snapshot
	err := d.conn.QueryRow(`
SELECT id, source, language, payload, itemCount, fetchedAt
FROM raw_snapshots ORDER BY id DESC LIMIT 1
`).Scan(&s.ID, &s.Source, &s.Language, &s.Payload, &s.ItemCount, &s.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// SaveRun stores a run row and replaces the stored item set with its output in one transaction.
// Items keep their slice order. A run without an id gets a fresh one.
func (d *DB) SaveRun(run internal.ProcessRun, items []internal.ProcessedItem) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	var snapshotID *int64
	if run.SnapshotID > 0 {
		snapshotID = &run.SnapshotID
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
INSERT INTO runs (id, snapshotId, rawCount, shopCount, statCount, startedAt, durationMs)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, run.ID, snapshotID, run.RawCount, run.ShopCount, run.StatCount, run.StartedAt, run.DurationMs); err != nil {
		return "", err
	}

	if _, err := tx.Exec(`DELETE FROM processed_items`); err != nil {
		return "", err
	}

	stmt, err := tx.Prepare(`
INSERT INTO processed_items (ordinal, className, id, name, category, tier, cost, itemJson, runId)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, item := range items {
		blob, err := json.Marshal(item)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", item.ClassName, err)
		}
		if _, err := stmt.Exec(i, item.ClassName, item.ID, item.Name, string(item.Category), item.Tier, item.Cost, string(blob), run.ID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListProcessedItems returns the stored items in the order the run produced them.
func (d *DB) ListProcessedItems() ([]internal.ProcessedItem, error) {
	rows, err := d.conn.Query(`SELECT itemJson FROM processed_items ORDER BY ordinal ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]internal.ProcessedItem, 0)
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var item internal.ProcessedItem
		if err := json.Unmarshal([]byte(blob), &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetProcessedItem returns the first stored item with the class name.
func (d *DB) GetProcessedItem(className string) (*internal.ProcessedItem, error) {
	var blob string
	err := d.conn.QueryRow(`
SELECT itemJson FROM processed_items WHERE className = ? ORDER BY ordinal ASC LIMIT 1
`, className).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var item internal.ProcessedItem
	if err := json.Unmarshal([]byte(blob), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (d *DB) LatestRun() (*internal.ProcessRun, error) {
	var run internal.ProcessRun
	var snapshotID sql.NullInt64
	err := d.conn.QueryRow(`
SELECT id, snapshotId, rawCount, shopCount, statCount, startedAt, durationMs
FROM runs ORDER BY createdAt DESC, rowid DESC LIMIT 1
`).Scan(&run.ID, &snapshotID, &run.RawCount, &run.ShopCount, &run.StatCount, &run.StartedAt, &run.DurationMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.SnapshotID = snapshotID.Int64
	return &run, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
