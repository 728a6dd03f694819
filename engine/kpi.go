/*
kpi.go - Board KPIs

PURPOSE:
  Computes the card counts a board renders: the per-status breakdown of the
  selected window plus the two real-time counters.

REAL-TIME EXEMPTION:
  Upcoming Week and the by-date Data Incomplete counter are deliberately
  exempt from the window filter - they always answer "right now", against the
  full collection, no matter which month the user is looking at. They do
  honor region and sub-category narrowing. Changing the window must not move
  either number.
*/
package engine

// KPISet is what a board's card row renders.
type KPISet struct {
	Total    int
	Statuses []LabelCount

	// Real-time counters, window-exempt by design.
	UpcomingWeek   int
	DataIncomplete int
}

// ComputeKPIs returns the card counts for the current selection. The status
// breakdown reflects the selected window, sub-category and region - but not
// the selected status, since the cards are what the user picks a status from.
func ComputeKPIs(ds *Dataset, sel Selection) KPISet {
	narrowed := Materialize(ds, Selection{
		Window:      sel.Window,
		SubCategory: sel.SubCategory,
		Region:      sel.Region,
	})

	k := KPISet{
		Total:    countApplicable(narrowed),
		Statuses: CountByStatus(ds, narrowed),
	}

	// Full collection, date window deliberately ignored.
	realtime := Materialize(ds, Selection{
		SubCategory: sel.SubCategory,
		Region:      sel.Region,
	})
	k.UpcomingWeek = upcomingWeek(ds, realtime)
	k.DataIncomplete = dataIncomplete(ds, realtime)
	return k
}

// countApplicable counts records that carry a status at all. Future go-lives
// on a checklist board have no status yet and do not inflate the total.
func countApplicable(records []Record) int {
	n := 0
	for _, r := range records {
		if r.Status.Applicable {
			n++
		}
	}
	return n
}

// kpiDate is the date the real-time counters key off: the secondary date
// when the domain declares one, the event date otherwise.
func kpiDate(ds *Dataset, r Record) Date {
	if ds.Domain.SecondaryDateField != "" {
		return r.AltDate
	}
	return r.EventDate
}

func upcomingWeek(ds *Dataset, records []Record) int {
	days := ds.Domain.UpcomingDays
	if days <= 0 {
		days = 7
	}
	n := 0
	for _, r := range records {
		if WithinNextNDays(kpiDate(ds, r), days, ds.AsOf) {
			n++
		}
	}
	return n
}

// dataIncomplete counts records flagged incomplete. Domains with a secondary
// date count by date: the tracked activity should have started but the
// status is still blank. Everything else counts the synthetic status.
func dataIncomplete(ds *Dataset, records []Record) int {
	n := 0
	for _, r := range records {
		if ds.Domain.SecondaryDateField != "" {
			if !r.AltDate.IsZero() && r.AltDate.Before(ds.AsOf) && !r.Has(ds.Domain.StatusField) {
				n++
			}
			continue
		}
		if r.Status.Applicable && r.Status.Status == StatusDataIncomplete {
			n++
		}
	}
	return n
}
