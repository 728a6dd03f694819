/*
store.go - Persistence interface for snapshots of source rows

PURPOSE:
  Defines the interface between the hub and the database. The hub never
  edits individual rows: a refresh replaces the whole snapshot for a
  domain, so the dashboard always reflects exactly one source read.

REPLACE-ONLY CONTRACT:
  - Replace(): wholesale swap of a domain's rows, atomic
  - Load():    latest snapshot plus its refresh metadata
  - NO per-row Update() or Delete() methods exist

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - engine/store/memory.go: In-memory for testing

SEE ALSO:
  - types.go: RawRow
  - errors.go: ErrSnapshotNotFound
*/
package engine

import (
	"context"
	"time"
)

// =============================================================================
// SNAPSHOT STORE - Interface for snapshot persistence (replace-only)
// =============================================================================

// RefreshInfo describes one stored snapshot of a domain's source rows.
type RefreshInfo struct {
	Domain   string    `json:"domain"`
	Source   string    `json:"source"` // "excel", "mock", ...
	RowCount int       `json:"row_count"`
	LoadedAt time.Time `json:"loaded_at"`
}

// SnapshotStore persists raw source rows per domain.
// IMPORTANT: SnapshotStore is REPLACE-ONLY. A refresh swaps the entire
// snapshot; there is no row-level mutation.
type SnapshotStore interface {
	// Replace atomically swaps the stored rows for info.Domain.
	Replace(ctx context.Context, rows []RawRow, info RefreshInfo) error

	// Load returns the latest snapshot for a domain.
	// Returns ErrSnapshotNotFound if the domain was never refreshed.
	Load(ctx context.Context, domain string) ([]RawRow, RefreshInfo, error)

	// History returns refresh metadata, newest first, at most limit entries.
	History(ctx context.Context, domain string, limit int) ([]RefreshInfo, error)
}
