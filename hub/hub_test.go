package hub_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/config-ops-hub/engine"
	"github.com/warp/config-ops-hub/engine/store"
	"github.com/warp/config-ops-hub/hub"
)

// stubLoader serves canned rows per board and records what was asked of it.
type stubLoader struct {
	rows  map[string][]engine.RawRow
	err   map[string]error
	calls []string
}

func (s *stubLoader) Load(_ context.Context, domainID, file, sheet string) ([]engine.RawRow, string, error) {
	s.calls = append(s.calls, domainID)
	if err := s.err[domainID]; err != nil {
		return nil, "stub", err
	}
	return s.rows[domainID], "stub", nil
}

func newHub(t *testing.T, loader hub.Loader) *hub.Hub {
	t.Helper()
	boards, err := hub.Presets()
	require.NoError(t, err)
	return hub.New(store.NewMemory(), loader, boards)
}

// =============================================================================
// PRESETS
// =============================================================================

func TestPresets_RegisterAllBoards(t *testing.T) {
	boards, err := hub.Presets()
	require.NoError(t, err)
	require.Len(t, boards, 6)

	byID := make(map[string]hub.Board)
	for _, b := range boards {
		byID[b.Config.ID] = b
	}

	// The three CRM sub-boards read the same workbook and sheet.
	crm := []string{"crm_configuration", "crm_pre_go_live", "crm_go_live_testing"}
	for _, id := range crm {
		b, ok := byID[id]
		require.True(t, ok, "missing board %s", id)
		assert.Equal(t, "CRM Data.xlsx", b.Source.File)
		assert.Equal(t, "Stores Checklist", b.Source.Sheet)
	}

	assert.Equal(t, "ARC Data.xlsx", byID["arc"].Source.File)
	assert.Equal(t, engine.RuleReadiness, byID["integration"].Config.Kind)
	assert.Equal(t, "SIM Start Date", byID["regression"].Config.SecondaryDateField)
}

// =============================================================================
// REFRESH / DATASET LIFECYCLE
// =============================================================================

func TestHub_RefreshBuildsDataset(t *testing.T) {
	loader := &stubLoader{rows: map[string][]engine.RawRow{
		"arc": {
			{"Dealership Name": "Alpha Ford", "Go Live Date": "2025-11-01", "Status": "Complete"},
			{"Dealership Name": "Bravo Kia", "Go Live Date": "2025-11-02", "Status": "In Progress"},
		},
	}}
	h := newHub(t, loader)
	ctx := context.Background()

	info, err := h.Refresh(ctx, "arc")
	require.NoError(t, err)
	assert.Equal(t, 2, info.RowCount)
	assert.Equal(t, "stub", info.Source)

	ds, err := h.Dataset("arc")
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	// The synonym table canonicalizes the sheet's status spellings.
	assert.Equal(t, engine.StatusCompleted, ds.Records[0].Status.Status)
	assert.Equal(t, engine.StatusWIP, ds.Records[1].Status.Status)
}

func TestHub_DatasetBeforeRefresh(t *testing.T) {
	h := newHub(t, &stubLoader{})

	_, err := h.Dataset("arc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrSnapshotNotFound))
	assert.True(t, engine.IsNotFound(err))
}

func TestHub_UnknownBoard(t *testing.T) {
	h := newHub(t, &stubLoader{})
	ctx := context.Background()

	_, err := h.Refresh(ctx, "nope")
	assert.True(t, errors.Is(err, engine.ErrDomainNotFound))

	_, err = h.Dataset("nope")
	assert.True(t, errors.Is(err, engine.ErrDomainNotFound))

	_, err = h.History(ctx, "nope", 5)
	assert.True(t, errors.Is(err, engine.ErrDomainNotFound))
}

func TestHub_RefreshSourceFailure(t *testing.T) {
	loader := &stubLoader{err: map[string]error{"arc": errors.New("file locked")}}
	h := newHub(t, loader)

	_, err := h.Refresh(context.Background(), "arc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrSourceUnavailable))

	// A failed refresh must not publish a dataset.
	_, err = h.Dataset("arc")
	assert.True(t, errors.Is(err, engine.ErrSnapshotNotFound))
}

func TestHub_RefreshAllContinuesPastFailures(t *testing.T) {
	loader := &stubLoader{
		rows: map[string][]engine.RawRow{
			"integration": {{"Dealer Name": "Alpha Ford", "Go Live Date": "2025-11-01",
				"Implementation Type": "Conquest", "PEM": "PK", "Director": "DR", "Assignee": "AA",
				"Dealer ID": "D-1", "Vendor List Updated": "Yes"}},
		},
		err: map[string]error{"arc": errors.New("boom")},
	}
	h := newHub(t, loader)

	err := h.RefreshAll(context.Background())
	require.Error(t, err, "first failure should be reported")

	// Every board was still attempted.
	assert.Len(t, loader.calls, 6)

	// Boards after the failing one still refreshed.
	_, dsErr := h.Dataset("integration")
	assert.NoError(t, dsErr)
}

// =============================================================================
// RESTORE
// =============================================================================

func TestHub_RestoreFromSnapshot(t *testing.T) {
	mem := store.NewMemory()
	boards, err := hub.Presets()
	require.NoError(t, err)
	ctx := context.Background()

	// GIVEN: a snapshot persisted by an earlier run
	rows := []engine.RawRow{{"Dealership Name": "Alpha Ford", "Go Live Date": "2025-11-01", "Status": "Complete"}}
	require.NoError(t, mem.Replace(ctx, rows, engine.RefreshInfo{Domain: "arc", Source: "excel"}))

	// WHEN: a fresh hub restores over the same store
	h := hub.New(mem, &stubLoader{}, boards)
	require.NoError(t, h.Restore(ctx))

	// THEN: the snapshotted board is served, the rest stay empty
	ds, err := h.Dataset("arc")
	require.NoError(t, err)
	assert.Len(t, ds.Records, 1)

	_, err = h.Dataset("integration")
	assert.True(t, errors.Is(err, engine.ErrSnapshotNotFound))
}
