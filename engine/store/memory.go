// Package store provides SnapshotStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/config-ops-hub/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	rows    map[string][]engine.RawRow
	history map[string][]engine.RefreshInfo
}

func NewMemory() *Memory {
	return &Memory{
		rows:    make(map[string][]engine.RawRow),
		history: make(map[string][]engine.RefreshInfo),
	}
}

// Replace swaps the full snapshot for info.Domain.
func (m *Memory) Replace(_ context.Context, rows []engine.RawRow, info engine.RefreshInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]engine.RawRow, len(rows))
	for i, r := range rows {
		cp := make(engine.RawRow, len(r))
		for k, v := range r {
			cp[k] = v
		}
		stored[i] = cp
	}
	info.RowCount = len(stored)

	m.rows[info.Domain] = stored
	// Newest first.
	m.history[info.Domain] = append([]engine.RefreshInfo{info}, m.history[info.Domain]...)
	return nil
}

func (m *Memory) Load(_ context.Context, domain string) ([]engine.RawRow, engine.RefreshInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist := m.history[domain]
	if len(hist) == 0 {
		return nil, engine.RefreshInfo{}, engine.ErrSnapshotNotFound
	}
	rows := m.rows[domain]
	result := make([]engine.RawRow, len(rows))
	for i, r := range rows {
		cp := make(engine.RawRow, len(r))
		for k, v := range r {
			cp[k] = v
		}
		result[i] = cp
	}
	return result, hist[0], nil
}

func (m *Memory) History(_ context.Context, domain string, limit int) ([]engine.RefreshInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist := m.history[domain]
	if len(hist) == 0 {
		return nil, engine.ErrSnapshotNotFound
	}
	if limit > 0 && limit < len(hist) {
		hist = hist[:limit]
	}
	result := make([]engine.RefreshInfo, len(hist))
	copy(result, hist)
	return result, nil
}
