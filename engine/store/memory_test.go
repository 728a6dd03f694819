package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/warp/config-ops-hub/engine"
	"github.com/warp/config-ops-hub/engine/store"
)

func refreshInfo(domain, source string, at time.Time) engine.RefreshInfo {
	return engine.RefreshInfo{Domain: domain, Source: source, LoadedAt: at}
}

func TestMemory_EmptyDomainIsNotFound(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if _, _, err := m.Load(ctx, "arc"); !errors.Is(err, engine.ErrSnapshotNotFound) {
		t.Errorf("Load on empty store: err = %v", err)
	}
	if _, err := m.History(ctx, "arc", 0); !errors.Is(err, engine.ErrSnapshotNotFound) {
		t.Errorf("History on empty store: err = %v", err)
	}
}

func TestMemory_ReplaceIsWholesale(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	now := time.Now()

	// GIVEN: an initial three-row snapshot
	first := []engine.RawRow{
		{"Dealer Name": "Alpha"}, {"Dealer Name": "Bravo"}, {"Dealer Name": "Charlie"},
	}
	if err := m.Replace(ctx, first, refreshInfo("arc", "mock", now)); err != nil {
		t.Fatal(err)
	}

	// WHEN: a one-row refresh lands
	second := []engine.RawRow{{"Dealer Name": "Delta"}}
	if err := m.Replace(ctx, second, refreshInfo("arc", "excel", now.Add(time.Minute))); err != nil {
		t.Fatal(err)
	}

	// THEN: the old rows are gone entirely
	rows, info, err := m.Load(ctx, "arc")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["Dealer Name"] != "Delta" {
		t.Errorf("rows after replace = %+v", rows)
	}
	if info.Source != "excel" || info.RowCount != 1 {
		t.Errorf("info after replace = %+v", info)
	}
}

func TestMemory_HistoryNewestFirst(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	base := time.Now()

	for i, src := range []string{"mock", "excel", "excel"} {
		err := m.Replace(ctx, []engine.RawRow{{"n": "x"}}, refreshInfo("crm", src, base.Add(time.Duration(i)*time.Minute)))
		if err != nil {
			t.Fatal(err)
		}
	}

	hist, err := m.History(ctx, "crm", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("len(hist) = %d, want limit applied", len(hist))
	}
	if !hist[0].LoadedAt.After(hist[1].LoadedAt) {
		t.Error("history should come back newest first")
	}
}

func TestMemory_DomainsAreIsolated(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if err := m.Replace(ctx, []engine.RawRow{{"n": "x"}}, refreshInfo("arc", "mock", time.Now())); err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Load(ctx, "crm"); !errors.Is(err, engine.ErrSnapshotNotFound) {
		t.Errorf("other domain leaked: err = %v", err)
	}
}

func TestMemory_LoadReturnsCopies(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if err := m.Replace(ctx, []engine.RawRow{{"Dealer Name": "Alpha"}}, refreshInfo("arc", "mock", time.Now())); err != nil {
		t.Fatal(err)
	}

	rows, _, _ := m.Load(ctx, "arc")
	rows[0]["Dealer Name"] = "mutated"

	again, _, _ := m.Load(ctx, "arc")
	if again[0]["Dealer Name"] != "Alpha" {
		t.Error("caller mutation leaked into the store")
	}
}
