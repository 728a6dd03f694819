/*
hub.go - Multi-board orchestration

PURPOSE:
  The Hub owns the registered boards and their current datasets. A refresh
  loads rows from the board's source, rebuilds the classified dataset
  against today, and replaces the persisted snapshot - wholesale, never a
  patch. Reads are lock-free copies of a shared immutable dataset, so any
  number of sessions can drill down concurrently.

LIFECYCLE:
  1. New(...) registers the boards (presets through the factory)
  2. Restore(ctx) rebuilds datasets from persisted snapshots at startup
  3. Refresh(ctx, id) on demand replaces one board's snapshot and dataset
  4. Dataset(id) hands the current immutable dataset to the read path

SEE ALSO:
  - presets.go: the board definitions
  - engine/store.go: SnapshotStore contract
  - source/: loaders feeding Refresh
*/
package hub

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/warp/config-ops-hub/engine"
	"github.com/warp/config-ops-hub/factory"
)

// SourceSpec binds a board to its workbook. File is resolved against the
// loader's data directory; Sheet falls back to the first sheet when absent
// from the workbook.
type SourceSpec struct {
	File  string
	Sheet string
}

// Board is one registered line-of-business view: its rule configuration
// plus where its rows come from.
type Board struct {
	Config engine.DomainConfig
	Source SourceSpec
}

// Loader produces raw rows for one board. Implementations report which
// source actually served the rows ("excel", "mock").
type Loader interface {
	Load(ctx context.Context, domainID, file, sheet string) ([]engine.RawRow, string, error)
}

// Hub serves every registered board from shared immutable datasets.
type Hub struct {
	boards []Board
	byID   map[string]int

	store  engine.SnapshotStore
	loader Loader

	mu       sync.RWMutex
	datasets map[string]*engine.Dataset
}

// New builds a Hub over the given boards.
func New(store engine.SnapshotStore, loader Loader, boards []Board) *Hub {
	h := &Hub{
		boards:   boards,
		byID:     make(map[string]int, len(boards)),
		store:    store,
		loader:   loader,
		datasets: make(map[string]*engine.Dataset),
	}
	for i, b := range boards {
		h.byID[b.Config.ID] = i
	}
	return h
}

// Presets parses every built-in board definition. Source files follow the
// operations team's workbook names.
func Presets() ([]Board, error) {
	sources := map[string]SourceSpec{
		"arc":                 {File: "ARC Data.xlsx", Sheet: "Surge List"},
		"crm_configuration":   {File: "CRM Data.xlsx", Sheet: "Stores Checklist"},
		"crm_pre_go_live":     {File: "CRM Data.xlsx", Sheet: "Stores Checklist"},
		"crm_go_live_testing": {File: "CRM Data.xlsx", Sheet: "Stores Checklist"},
		"integration":         {File: "Integration Data.xlsx"},
		"regression":          {File: "E2E Testing Check.xlsx", Sheet: "Stores Checklist"},
	}

	f := factory.NewDomainFactory()
	var boards []Board
	for _, js := range PresetJSON() {
		cfg, err := f.ParseDomain(js)
		if err != nil {
			return nil, err
		}
		boards = append(boards, Board{Config: cfg, Source: sources[cfg.ID]})
	}
	return boards, nil
}

// Boards returns the registered boards in display order.
func (h *Hub) Boards() []Board {
	return h.boards
}

// Board returns one registered board by id.
func (h *Hub) Board(id string) (Board, error) {
	i, ok := h.byID[id]
	if !ok {
		return Board{}, fmt.Errorf("board %q: %w", id, engine.ErrDomainNotFound)
	}
	return h.boards[i], nil
}

// Dataset returns the current dataset for a board. The returned dataset is
// immutable; callers filter it with their own Selection.
func (h *Hub) Dataset(id string) (*engine.Dataset, error) {
	if _, ok := h.byID[id]; !ok {
		return nil, fmt.Errorf("board %q: %w", id, engine.ErrDomainNotFound)
	}
	h.mu.RLock()
	ds := h.datasets[id]
	h.mu.RUnlock()
	if ds == nil {
		return nil, fmt.Errorf("board %q: %w", id, engine.ErrSnapshotNotFound)
	}
	return ds, nil
}

// Refresh reloads one board from its source, replaces the persisted
// snapshot and swaps in the rebuilt dataset.
func (h *Hub) Refresh(ctx context.Context, id string) (engine.RefreshInfo, error) {
	b, err := h.Board(id)
	if err != nil {
		return engine.RefreshInfo{}, err
	}

	rows, src, err := h.loader.Load(ctx, id, b.Source.File, b.Source.Sheet)
	if err != nil {
		return engine.RefreshInfo{}, &engine.SourceError{Domain: id, Source: src, Err: err}
	}

	info := engine.RefreshInfo{
		Domain:   id,
		Source:   src,
		RowCount: len(rows),
		LoadedAt: time.Now().UTC(),
	}
	if err := h.store.Replace(ctx, rows, info); err != nil {
		return engine.RefreshInfo{}, fmt.Errorf("persist snapshot for %q: %w", id, err)
	}

	h.swap(id, engine.Build(b.Config, rows, engine.Today()))
	log.Printf("hub: refreshed %s from %s (%d rows)", id, src, len(rows))
	return info, nil
}

// RefreshAll refreshes every board, continuing past per-board failures.
// It returns the first error encountered, if any.
func (h *Hub) RefreshAll(ctx context.Context) error {
	var first error
	for _, b := range h.boards {
		if _, err := h.Refresh(ctx, b.Config.ID); err != nil {
			log.Printf("hub: refresh %s failed: %v", b.Config.ID, err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Restore rebuilds datasets from persisted snapshots, classifying the
// stored rows against today. Boards without a snapshot are skipped; they
// stay empty until their first refresh.
func (h *Hub) Restore(ctx context.Context) error {
	for _, b := range h.boards {
		rows, info, err := h.store.Load(ctx, b.Config.ID)
		if err != nil {
			if engine.IsNotFound(err) {
				continue
			}
			return fmt.Errorf("restore %q: %w", b.Config.ID, err)
		}
		h.swap(b.Config.ID, engine.Build(b.Config, rows, engine.Today()))
		log.Printf("hub: restored %s from snapshot of %s (%d rows)",
			b.Config.ID, info.LoadedAt.Format("2006-01-02 15:04"), len(rows))
	}
	return nil
}

// History returns refresh metadata for one board, newest first.
func (h *Hub) History(ctx context.Context, id string, limit int) ([]engine.RefreshInfo, error) {
	if _, ok := h.byID[id]; !ok {
		return nil, fmt.Errorf("board %q: %w", id, engine.ErrDomainNotFound)
	}
	return h.store.History(ctx, id, limit)
}

func (h *Hub) swap(id string, ds *engine.Dataset) {
	h.mu.Lock()
	h.datasets[id] = ds
	h.mu.Unlock()
}
