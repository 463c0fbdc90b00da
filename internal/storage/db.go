package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"gribdefs/internal"
)

type DB struct {
	conn *sql.DB
}

// Open opens the run journal at path, creating it if needed.
func Open(path string) (*DB, error) {
	db, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("open run journal %s: %w", path, err)
	}
	return db, nil
}

func open(path string) (*DB, error) {
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
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  status TEXT NOT NULL,
  keyCount INTEGER NOT NULL,
  tablesFetched INTEGER NOT NULL,
  records INTEGER NOT NULL,
  error TEXT,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS run_outputs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  path TEXT NOT NULL,
  FOREIGN KEY(runId) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertRun records one build and the files it produced.
func (d *DB) InsertRun(run internal.RunRow, timings map[string]float64, outputs []string) (int64, error) {
	timingsJSON, _ := json.Marshal(timings)

	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var errText *string
	if run.Error != "" {
		errText = &run.Error
	}
	result, err := tx.Exec(`
INSERT INTO runs (traceId, status, keyCount, tablesFetched, records, error, timingsJson)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, run.TraceID, run.Status, run.Keys, run.TablesFetched, run.Records, errText, string(timingsJSON))
	if err != nil {
		return 0, err
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, path := range outputs {
		if _, err := tx.Exec(`INSERT INTO run_outputs (runId, path) VALUES (?, ?)`, runID, path); err != nil {
			return 0, err
		}
	}

	return runID, tx.Commit()
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, status, keyCount, tablesFetched, records, COALESCE(error, ''), timingsJson, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		var row internal.RunRow
		if err := rows.Scan(&row.ID, &row.TraceID, &row.Status, &row.Keys, &row.TablesFetched, &row.Records, &row.Error, &row.TimingsJSON, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) ListRunOutputs(runID int) ([]string, error) {
	rows, err := d.conn.Query(`SELECT path FROM run_outputs WHERE runId = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, rows.Err()
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
