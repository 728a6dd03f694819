package engine_test

import (
	"testing"

	"github.com/warp/config-ops-hub/engine"
)

// fleet is a small mixed dataset used by the filter and KPI tests.
func fleet(t *testing.T) *engine.Dataset {
	t.Helper()
	rows := []engine.RawRow{
		{"Dealer Name": "Alpha Ford", "Go Live Date": "2025-10-10", "Implementation Type": "Conquest", "Region": "NAM", "Vendor List Updated": "No"},
		{"Dealer Name": "Bravo Kia", "Go Live Date": "2025-10-20", "Implementation Type": "Conquest", "Region": "EMEA", "Vendor List Updated": "Yes"},
		{"Dealer Name": "Charlie BMW", "Go Live Date": "2025-11-05", "Implementation Type": "New Point", "Region": "nam", "Vendor List Updated": "Yes"},
		{"Dealer Name": "Delta Honda", "Go Live Date": "", "Implementation Type": "Conquest", "Region": "NAM", "Vendor List Updated": "Yes"},
	}
	return engine.Build(readinessConfig(), rows, testNow)
}

// =============================================================================
// SELECTION CLEARING
// =============================================================================

func TestSelection_LaterStagesClearOnEarlierSet(t *testing.T) {
	// GIVEN: a fully drilled-down selection
	var sel engine.Selection
	sel.Set(engine.FieldWindow, "current_month")
	sel.Set(engine.FieldStatus, string(engine.StatusCritical))
	sel.Set(engine.FieldSubCategory, "Conquest")
	sel.Set(engine.FieldRegion, "NAM")

	// WHEN: the status is re-picked
	sel.Set(engine.FieldStatus, string(engine.StatusOnTrack))

	// THEN: subcategory and region are gone, the window survives
	if sel.Window != engine.WindowCurrentMonth {
		t.Errorf("window = %v, want current_month", sel.Window)
	}
	if sel.SubCategory != "" || sel.Region != "" {
		t.Errorf("stale narrow filters survived: subcategory=%q region=%q", sel.SubCategory, sel.Region)
	}
}

func TestSelection_WindowClearsEverything(t *testing.T) {
	var sel engine.Selection
	sel.Set(engine.FieldStatus, string(engine.StatusCritical))
	sel.Set(engine.FieldRegion, "NAM")

	sel.Set(engine.FieldWindow, "next_month")

	if sel.Status != "" || sel.SubCategory != "" || sel.Region != "" {
		t.Errorf("window change kept stale filters: %+v", sel)
	}
}

func TestSelection_Reset(t *testing.T) {
	var sel engine.Selection
	sel.Set(engine.FieldWindow, "ytd")
	sel.Set(engine.FieldRegion, "EMEA")
	sel.Reset()
	if sel != (engine.Selection{}) {
		t.Errorf("Reset left state behind: %+v", sel)
	}
}

func TestParseSelectionField(t *testing.T) {
	for name, want := range map[string]engine.SelectionField{
		"window":      engine.FieldWindow,
		"status":      engine.FieldStatus,
		"subcategory": engine.FieldSubCategory,
		"region":      engine.FieldRegion,
	} {
		got, ok := engine.ParseSelectionField(name)
		if !ok || got != want {
			t.Errorf("ParseSelectionField(%q) = (%v, %v)", name, got, ok)
		}
	}
	if _, ok := engine.ParseSelectionField("dealer"); ok {
		t.Error("unknown field name should not parse")
	}
}

// =============================================================================
// MATERIALIZE
// =============================================================================

func TestMaterialize_NarrowsInOrder(t *testing.T) {
	ds := fleet(t)

	var sel engine.Selection
	sel.Set(engine.FieldWindow, "current_month")
	sel.Set(engine.FieldStatus, string(engine.StatusGTG))
	rows := engine.Materialize(ds, sel)

	// Only Bravo is GTG inside October.
	if len(rows) != 1 || rows[0].Identity != "Bravo Kia" {
		t.Fatalf("got %d rows, want just Bravo Kia", len(rows))
	}

	sel.Set(engine.FieldRegion, "nam") // case-insensitive match
	if rows = engine.Materialize(ds, sel); len(rows) != 0 {
		t.Errorf("Bravo is EMEA; NAM narrowing should leave 0 rows, got %d", len(rows))
	}
}

func TestMaterialize_SortsByDateNullsLast(t *testing.T) {
	ds := fleet(t)
	rows := engine.Materialize(ds, engine.Selection{})
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	for i := 1; i < 3; i++ {
		if rows[i].EventDate.Before(rows[i-1].EventDate) {
			t.Errorf("rows out of date order at %d", i)
		}
	}
	if !rows[3].EventDate.IsZero() {
		t.Error("undated record should sort last")
	}
}

func TestMaterialize_DoesNotMutateDataset(t *testing.T) {
	ds := fleet(t)
	before := len(ds.Records)

	var sel engine.Selection
	sel.Set(engine.FieldRegion, "EMEA")
	engine.Materialize(ds, sel)

	if len(ds.Records) != before {
		t.Errorf("Materialize shrank the dataset: %d -> %d", before, len(ds.Records))
	}
}

// =============================================================================
// GROUPED COUNTS
// =============================================================================

func TestCountBy_GroupsCaseVariants(t *testing.T) {
	ds := fleet(t)
	counts := engine.CountBy(ds.Records, "Region")

	// "NAM" and "nam" group together, labels come back title-cased and
	// sorted; Delta's NAM joins too.
	want := []engine.LabelCount{{Label: "Emea", Count: 1}, {Label: "Nam", Count: 3}}
	if len(counts) != len(want) {
		t.Fatalf("got %d groups, want %d: %+v", len(counts), len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("group %d = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestCountByStatus_JointLabelDecomposes(t *testing.T) {
	// GIVEN: one record failing a blocking check and a non-blocking check
	ds := engine.Build(checklistConfig(), []engine.RawRow{
		{"Dealer Name": "Echo Mazda", "Go Live Date": "2025-09-20",
			"Sample ADF": "Issues Found", "Data Migration": "Yes",
			"Inbound Email": "Issues Found", "Outbound Email": "Yes"},
	}, testNow)

	counts := engine.CountByStatus(ds, ds.Records)

	// THEN: it counts under BOTH labels, and no synthetic joint group exists
	got := make(map[string]int)
	for _, c := range counts {
		got[c.Label] = c.Count
	}
	if got[string(engine.StatusBlocker)] != 1 {
		t.Errorf("blocker count = %d, want 1", got[string(engine.StatusBlocker)])
	}
	if got[string(engine.StatusNonBlocker)] != 1 {
		t.Errorf("non-blocker count = %d, want 1", got[string(engine.StatusNonBlocker)])
	}
	if _, ok := got[string(engine.StatusBlockerBoth)]; ok {
		t.Error("joint label must not surface as its own group")
	}
}

func TestCountByStatus_SuppressesZeroAndNotApplicable(t *testing.T) {
	ds := engine.Build(checklistConfig(), []engine.RawRow{
		// future go-live, not applicable
		{"Dealer Name": "Foxtrot Audi", "Go Live Date": "2025-12-01",
			"Sample ADF": "Yes", "Data Migration": "Yes",
			"Inbound Email": "Yes", "Outbound Email": "Yes"},
	}, testNow)

	if counts := engine.CountByStatus(ds, ds.Records); len(counts) != 0 {
		t.Errorf("not-applicable records should produce no groups, got %+v", counts)
	}
}
