/*
Package engine provides the core classification and filtering engine.

PURPOSE:
  This package contains domain-agnostic types and algorithms for tracking
  operational go-live data. Whether the board covers ARC configuration, CRM
  checklists, integration readiness, or regression testing, the same engine
  handles schema normalization, status classification, date-window filtering,
  and drill-down aggregation.

KEY CONCEPTS IN THIS FILE (types.go):
  - RawRow: An untyped key/value row as loaded from a source file
  - Record: A normalized, classified unit of tracked work
  - Status: Canonical status vocabulary shared across domains
  - Classification: The result of rule evaluation (status + labels)
  - Dataset: An immutable snapshot of classified records

DESIGN PRINCIPLES:
  1. Totality: Classification never fails - missing data IS a result
  2. Purity: Derived fields are a function of (fields, event date, "now")
  3. Wholesale refresh: a Dataset is rebuilt, never patched
  4. Presence semantics: a blank field is distinct from a negative value

USAGE:
  ds := engine.Build(cfg, rows, engine.Today())
  sel := engine.Selection{}
  sel.Set(engine.FieldWindow, string(engine.WindowCurrentMonth))
  rows := engine.Materialize(ds, sel)

SEE ALSO:
  - rules.go: DomainConfig and status rule evaluation
  - window.go: Calendar-window membership
  - filter.go: Drill-down selection and aggregation
*/
package engine

import (
	"strings"
)

// =============================================================================
// RAW INPUT - Untyped rows from a source file
// =============================================================================

// RawRow is one row as loaded from Excel/SharePoint, keyed by source column
// name. Loaders do not interpret values; normalization happens in the engine.
type RawRow map[string]string

// =============================================================================
// STATUS VOCABULARY - Canonical values across all domains
// =============================================================================

type Status string

const (
	// Completion statuses
	StatusCompleted     Status = "Completed"
	StatusWIP           Status = "WIP"
	StatusNotConfigured Status = "Not Configured"
	StatusStandard      Status = "Standard"
	StatusCopy          Status = "Copy"

	// Readiness statuses
	StatusGTG       Status = "GTG"
	StatusOnTrack   Status = "On Track"
	StatusCritical  Status = "Critical"
	StatusEscalated Status = "Escalated"

	// Checklist statuses
	StatusFail       Status = "Fail"
	StatusPartial    Status = "Partial"
	StatusBlocker    Status = "Go Live Blocker"
	StatusNonBlocker Status = "Non-Blocker"
	// StatusBlockerBoth is the joint display label. Blocker and NonBlocker
	// remain individually present in Classification.Labels; this is the one
	// deliberately non-exclusive pair in the vocabulary.
	StatusBlockerBoth Status = "Go Live Blocker & Non-Blocker"

	StatusUnableToComplete Status = "Unable to Complete"

	// Synthetic statuses. Incomplete means required fields were never filled;
	// Incorrect means fields are blank although the record already rolled out.
	StatusDataIncomplete Status = "Data Incomplete"
	StatusDataIncorrect  Status = "Data Incorrect"
)

// Classification is the outcome of rule evaluation for one record.
//
// Applicable is false when the domain's rules do not apply to the record at
// all (e.g. a go-live test board evaluating a future go-live). That is not a
// status - the record is excluded from the domain's KPI counts entirely.
type Classification struct {
	Status     Status
	Labels     []Status
	Applicable bool
}

// HasLabel reports whether the classification carries the given label.
// Blocker and NonBlocker can both be present on the same record.
func (c Classification) HasLabel(s Status) bool {
	if c.Status == s {
		return true
	}
	for _, l := range c.Labels {
		if l == s {
			return true
		}
	}
	return false
}

// NotApplicable is the zero classification for excluded records.
func NotApplicable() Classification { return Classification{} }

func classified(s Status, labels ...Status) Classification {
	return Classification{Status: s, Labels: labels, Applicable: true}
}

// =============================================================================
// RECORD - One normalized, classified unit of tracked work
// =============================================================================

// Record is one tracked go-live for a line of business. Fields holds the
// normalized category inputs; everything below Fields is derived and is
// recomputed whenever the dataset is rebuilt.
type Record struct {
	Identity  string
	EventDate Date // zero = unknown, excluded from every date window
	// AltDate is the secondary tracking date (e.g. a SIM start) on domains
	// that key their real-time KPIs off something other than the go-live.
	AltDate Date
	Fields  map[string]string

	// Derived - pure functions of Fields, EventDate and the dataset's AsOf.
	Month     int // 1-12, 0 when EventDate is zero
	Year      int
	DaysUntil int  // negative = rolled out
	HasDays   bool // false when EventDate is zero
	Status    Classification
	Score     *Score // weighted checklist score, nil for non-checklist domains
}

// Get returns the trimmed value of a named field.
func (r Record) Get(field string) string {
	return strings.TrimSpace(r.Fields[field])
}

// Has reports whether a field is present with a meaningful value. This is the
// single presence check every domain rule goes through: blank, "NA" and "N/A"
// all count as absent, while an explicit negative value ("No") is present.
func (r Record) Has(field string) bool {
	return IsPresent(r.Get(field))
}

// IsPresent implements the presence check on a bare value.
func IsPresent(v string) bool {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "", "NA", "N/A", "NONE", "NAN":
		return false
	}
	return true
}

// RolledOut reports whether the record's event date is strictly in the past.
// A go-live happening today has not rolled out yet.
func (r Record) RolledOut(now Date) bool {
	return !r.EventDate.IsZero() && r.EventDate.Before(now)
}

// =============================================================================
// DATASET - Immutable snapshot of classified records
// =============================================================================

// Dataset is one wholesale load of records for a domain, classified against a
// fixed AsOf date. Filter selections never mutate a Dataset; a refresh
// replaces it entirely.
type Dataset struct {
	Domain  DomainConfig
	Records []Record
	AsOf    Date
}

// Build normalizes, derives and classifies raw rows into a Dataset.
// It never drops a row: malformed input degrades to synthetic statuses.
func Build(cfg DomainConfig, rows []RawRow, now Date) *Dataset {
	ds := &Dataset{Domain: cfg, AsOf: now}
	n := NewNormalizer(cfg)
	for _, raw := range rows {
		rec := n.Normalize(raw)
		if cfg.SecondaryDateField != "" {
			rec.AltDate = ParseDate(rec.Get(cfg.SecondaryDateField))
		}
		deriveTemporal(&rec, now)
		rec.Status = cfg.Classify(rec, now)
		if cfg.Kind == RuleChecklist && rec.Status.Applicable {
			s := cfg.ScoreOf(rec)
			rec.Score = &s
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}

// deriveTemporal fills the calendar-relative fields from the event date.
func deriveTemporal(r *Record, now Date) {
	if r.EventDate.IsZero() {
		r.Month, r.Year, r.DaysUntil, r.HasDays = 0, 0, 0, false
		return
	}
	r.Month = int(r.EventDate.Month())
	r.Year = r.EventDate.Year()
	r.DaysUntil = DaysBetween(now, r.EventDate)
	r.HasDays = true
}
