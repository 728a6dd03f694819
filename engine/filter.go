/*
filter.go - Drill-down selection state and progressive narrowing

PURPOSE:
  A user drills into a board by fixing a date window, then a status card,
  then a sub-category, then a region. The selection is strictly ordered:
  choosing a new earlier element clears everything after it, so a stale
  narrow filter can never survive a widened earlier one.

CLEARING INVARIANT:
  window < status < subcategory < region. Set(field, v) clears every field
  ordered after field. Reset clears all four; it does not touch the dataset.

SESSIONS:
  Selection is an explicit value handed in and out of the engine - there is
  no ambient state. A multi-session server gives each session its own
  Selection; datasets are shared read-only.
*/
package engine

import (
	"sort"
)

// =============================================================================
// SELECTION - Ordered drill-down state
// =============================================================================

// SelectionField identifies one level of the drill-down, in precedence order.
type SelectionField int

const (
	FieldWindow SelectionField = iota
	FieldStatus
	FieldSubCategory
	FieldRegion
)

// ParseSelectionField maps a wire name onto a SelectionField.
func ParseSelectionField(s string) (SelectionField, bool) {
	switch s {
	case "window":
		return FieldWindow, true
	case "status":
		return FieldStatus, true
	case "subcategory":
		return FieldSubCategory, true
	case "region":
		return FieldRegion, true
	}
	return 0, false
}

// Selection holds one session's drill-down state. The zero value selects
// nothing (full dataset).
type Selection struct {
	Window      Window
	Status      string
	SubCategory string
	Region      string
}

// Set assigns one field and clears every field ordered after it.
func (s *Selection) Set(field SelectionField, value string) {
	switch field {
	case FieldWindow:
		s.Window = ParseWindow(value)
		s.Status, s.SubCategory, s.Region = "", "", ""
	case FieldStatus:
		s.Status = value
		s.SubCategory, s.Region = "", ""
	case FieldSubCategory:
		s.SubCategory = value
		s.Region = ""
	case FieldRegion:
		s.Region = value
	}
}

// Reset clears every field. The dataset is untouched.
func (s *Selection) Reset() {
	*s = Selection{}
}

// =============================================================================
// PROGRESSIVE NARROWING
// =============================================================================

// ApplyWindow returns the subset of records inside the window. WindowAll
// returns the records unchanged.
func ApplyWindow(ds *Dataset, w Window) []Record {
	if w == WindowAll {
		return ds.Records
	}
	var out []Record
	for _, r := range ds.Records {
		if w.Contains(r, ds.AsOf, ds.Domain.YTDBoundedByNow) {
			out = append(out, r)
		}
	}
	return out
}

// matchStatus matches a record against a selected status label. Labels are
// matched non-exclusively: selecting "Go Live Blocker" also matches records
// classified as both blocker and non-blocker.
func matchStatus(r Record, status string) bool {
	if !r.Status.Applicable {
		return false
	}
	return r.Status.HasLabel(Status(status))
}

// Materialize applies the selection's stages in precedence order - window,
// status, subcategory, region - skipping unset stages, and returns the rows
// ready for display, sorted by event date ascending with undated records
// last.
func Materialize(ds *Dataset, sel Selection) []Record {
	records := ApplyWindow(ds, sel.Window)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if sel.Status != "" && !matchStatus(r, sel.Status) {
			continue
		}
		if sel.SubCategory != "" && NormKey(r.Get(ds.Domain.SubCategoryField)) != NormKey(sel.SubCategory) {
			continue
		}
		if sel.Region != "" && NormKey(r.Get(ds.Domain.RegionField)) != NormKey(sel.Region) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.EventDate.IsZero() {
			return false
		}
		if b.EventDate.IsZero() {
			return true
		}
		return a.EventDate.Before(b.EventDate)
	})
	return out
}

// =============================================================================
// GROUPED COUNTS
// =============================================================================

// LabelCount is one (label, count) pair of an aggregate view. Zero-count
// groups are suppressed, never surfaced as 0.
type LabelCount struct {
	Label string
	Count int
}

// CountBy groups records by a category field, normalizing case and
// whitespace so variants group identically. Labels come back title-cased,
// sorted alphabetically; only nonzero groups appear.
func CountBy(records []Record, field string) []LabelCount {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, r := range records {
		v := r.Get(field)
		if !IsPresent(v) {
			continue
		}
		key := NormKey(v)
		counts[key]++
		if _, ok := labels[key]; !ok {
			labels[key] = DisplayValue(v)
		}
	}

	out := make([]LabelCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, LabelCount{Label: labels[key], Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// CountByStatus groups records by classification label in the domain's KPI
// order, counting joint labels under each of their parts. Not-applicable
// records are excluded; zero-count groups are suppressed.
func CountByStatus(ds *Dataset, records []Record) []LabelCount {
	counts := make(map[Status]int)
	for _, r := range records {
		if !r.Status.Applicable {
			continue
		}
		// A joint classification decomposes into its labels; each part is
		// counted once, and no synthetic "X & Y" group is surfaced.
		if len(r.Status.Labels) > 0 {
			for _, l := range r.Status.Labels {
				counts[l]++
			}
		} else {
			counts[r.Status.Status]++
		}
	}

	var out []LabelCount
	emitted := make(map[Status]bool)
	for _, s := range ds.Domain.KPIOrder {
		if counts[s] > 0 {
			out = append(out, LabelCount{Label: string(s), Count: counts[s]})
			emitted[s] = true
		}
	}
	// Statuses outside the configured order still surface, alphabetically.
	var rest []LabelCount
	for s, n := range counts {
		if n > 0 && !emitted[s] {
			rest = append(rest, LabelCount{Label: string(s), Count: n})
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Label < rest[j].Label })
	return append(out, rest...)
}
