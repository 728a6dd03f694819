/*
Package sqlite provides a SQLite-backed implementation of the snapshot store.

PURPOSE:
  Implements engine.SnapshotStore using SQLite. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

REPLACE-ONLY ENFORCEMENT:
  A refresh swaps a domain's rows inside one transaction: delete the old
  rows, insert the new ones, record the refresh. There is no row-level
  UPDATE path; the refresh history table is append-only.

KEY TABLES:
  snapshot_rows: Current rows per domain, JSON-encoded, positional order
  refreshes:     Append-only refresh history per domain

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/hub.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: Interface definition
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/config-ops-hub/engine"
)

// Store implements engine.SnapshotStore using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Current snapshot rows per domain. Wholesale-replaced on refresh.
	CREATE TABLE IF NOT EXISTS snapshot_rows (
		domain TEXT NOT NULL,
		idx INTEGER NOT NULL,
		fields_json TEXT NOT NULL,
		PRIMARY KEY (domain, idx)
	);

	-- Refresh history (append-only).
	CREATE TABLE IF NOT EXISTS refreshes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL,
		source TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		loaded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_refreshes_domain
		ON refreshes(domain, id DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Replace atomically swaps the stored rows for info.Domain and appends the
// refresh to the history.
func (s *Store) Replace(ctx context.Context, rows []engine.RawRow, info engine.RefreshInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshot_rows WHERE domain = ?`, info.Domain); err != nil {
		return fmt.Errorf("clear snapshot for %s: %w", info.Domain, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_rows (domain, idx, fields_json) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		fields, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, info.Domain, i, string(fields)); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	loadedAt := info.LoadedAt
	if loadedAt.IsZero() {
		loadedAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO refreshes (domain, source, row_count, loaded_at) VALUES (?, ?, ?, ?)`,
		info.Domain, info.Source, len(rows), loadedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record refresh: %w", err)
	}

	return tx.Commit()
}

// Load returns the latest snapshot for a domain.
func (s *Store) Load(ctx context.Context, domain string) ([]engine.RawRow, engine.RefreshInfo, error) {
	infos, err := s.History(ctx, domain, 1)
	if err != nil {
		return nil, engine.RefreshInfo{}, err
	}
	info := infos[0]

	rows, err := s.db.QueryContext(ctx,
		`SELECT fields_json FROM snapshot_rows WHERE domain = ? ORDER BY idx`, domain)
	if err != nil {
		return nil, engine.RefreshInfo{}, fmt.Errorf("load snapshot for %s: %w", domain, err)
	}
	defer rows.Close()

	var out []engine.RawRow
	for rows.Next() {
		var fields string
		if err := rows.Scan(&fields); err != nil {
			return nil, engine.RefreshInfo{}, err
		}
		var row engine.RawRow
		if err := json.Unmarshal([]byte(fields), &row); err != nil {
			return nil, engine.RefreshInfo{}, fmt.Errorf("decode snapshot row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, engine.RefreshInfo{}, err
	}
	return out, info, nil
}

// History returns refresh metadata, newest first, at most limit entries.
func (s *Store) History(ctx context.Context, domain string, limit int) ([]engine.RefreshInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT domain, source, row_count, loaded_at
		 FROM refreshes WHERE domain = ? ORDER BY id DESC LIMIT ?`, domain, limit)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", domain, err)
	}
	defer rows.Close()

	var out []engine.RefreshInfo
	for rows.Next() {
		var info engine.RefreshInfo
		var loadedAt string
		if err := rows.Scan(&info.Domain, &info.Source, &info.RowCount, &loadedAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, loadedAt); err == nil {
			info.LoadedAt = t
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("domain %s: %w", domain, engine.ErrSnapshotNotFound)
	}
	return out, nil
}
