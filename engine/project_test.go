package engine_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/warp/config-ops-hub/engine"
)

func projectionConfig() engine.DomainConfig {
	cfg := readinessConfig()
	cfg.IdentityColumn = "Dealership Name"
	cfg.DaysColumn = "Days to Go Live"
	cfg.StatusColumn = "Status"
	cfg.DisplayColumns = []string{
		"Dealership Name", "Go Live Date", "Days to Go Live",
		"Implementation Type", "Region", "Status",
	}
	return cfg
}

// =============================================================================
// TABLE PROJECTION
// =============================================================================

func TestProject_ColumnsAndDerivedCells(t *testing.T) {
	cfg := projectionConfig()
	ds := engine.Build(cfg, []engine.RawRow{
		{"Dealer Name": "Alpha Ford", "Go Live Date": "2026-01-05",
			"Implementation Type": "Conquest", "Region": "NAM", "Vendor List Updated": "Yes"},
	}, testNow)

	table := engine.Project(cfg, ds.Records)

	if len(table.Columns) != 6 || table.Columns[0] != "Dealership Name" {
		t.Fatalf("columns = %v", table.Columns)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	if row[0] != "Alpha Ford" {
		t.Errorf("identity cell = %q", row[0])
	}
	if row[1] != "05-Jan-2026" {
		t.Errorf("date cell = %q, want DD-Mon-YYYY form", row[1])
	}
	if row[2] != "91" {
		t.Errorf("days cell = %q, want 91", row[2])
	}
	if row[5] != string(engine.StatusGTG) {
		t.Errorf("status cell = %q", row[5])
	}
}

func TestProject_RolledOutDaysCell(t *testing.T) {
	cfg := projectionConfig()
	ds := engine.Build(cfg, []engine.RawRow{
		{"Dealer Name": "Bravo Kia", "Go Live Date": "2025-09-01",
			"Implementation Type": "Conquest", "Region": "NAM", "Vendor List Updated": "Yes"},
		{"Dealer Name": "Delta Honda", "Go Live Date": "",
			"Implementation Type": "Conquest", "Region": "NAM", "Vendor List Updated": "Yes"},
	}, testNow)

	table := engine.Project(cfg, ds.Records)

	// Negative days render as the rolled-out marker, undated as blank.
	if got := table.Rows[0][2]; got != engine.RolledOutText {
		t.Errorf("rolled-out days cell = %q, want %q", got, engine.RolledOutText)
	}
	if got := table.Rows[1][2]; got != "" {
		t.Errorf("undated days cell = %q, want blank", got)
	}
	if got := table.Rows[1][1]; got != "" {
		t.Errorf("undated date cell = %q, want blank", got)
	}
}

func TestProject_NotApplicableStatusCellBlank(t *testing.T) {
	cfg := checklistConfig()
	cfg.IdentityColumn = "Dealership Name"
	cfg.StatusColumn = "Status"
	cfg.DisplayColumns = []string{"Dealership Name", "Status"}

	ds := engine.Build(cfg, []engine.RawRow{
		{"Dealer Name": "Foxtrot Audi", "Go Live Date": "2025-12-01"},
	}, testNow)

	table := engine.Project(cfg, ds.Records)
	if got := table.Rows[0][1]; got != "" {
		t.Errorf("not-applicable status cell = %q, want blank", got)
	}
}

// =============================================================================
// CSV EXPORT
// =============================================================================

func TestWriteCSV_RoundTrip(t *testing.T) {
	cfg := projectionConfig()
	ds := engine.Build(cfg, []engine.RawRow{
		{"Dealer Name": "Alpha Ford", "Go Live Date": "2026-01-05",
			"Implementation Type": "Conquest", "Region": "NAM", "Vendor List Updated": "Yes"},
		{"Dealer Name": `Bravo "Downtown" Kia`, "Go Live Date": "2025-09-01",
			"Implementation Type": "New Point", "Region": "EMEA", "Vendor List Updated": "No"},
	}, testNow)
	table := engine.Project(cfg, ds.Records)

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	// The export reads back as header + one line per record, with quoting
	// and date formatting intact.
	parsed, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("parsed %d lines, want header + 2 rows", len(parsed))
	}
	if parsed[0][0] != "Dealership Name" {
		t.Errorf("header = %v", parsed[0])
	}
	if parsed[1][1] != "05-Jan-2026" {
		t.Errorf("date survived as %q", parsed[1][1])
	}
	if parsed[2][0] != `Bravo "Downtown" Kia` {
		t.Errorf("quoted name survived as %q", parsed[2][0])
	}
	if parsed[2][2] != engine.RolledOutText {
		t.Errorf("rolled-out cell survived as %q", parsed[2][2])
	}
}
