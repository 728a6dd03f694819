package engine

import (
	"strings"
	"time"
)

// =============================================================================
// DATE - Day-granular calendar date (all temporal logic is date-based)
// =============================================================================

// Date is a calendar date at day granularity, always UTC. The zero Date
// stands for "no date": a record with a zero Date is excluded from every
// date-windowed computation but stays in unfiltered totals.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// dateLayouts are tried in order when parsing source values. Excel exports
// carry a mix of ISO dates, display dates and full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"02-Jan-2006",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006-01-02T15:04:05Z07:00",
	"Jan 2, 2006",
	"1/2/06 15:04",
}

// ParseDate parses a source date value. Unparseable or blank input yields the
// zero Date - never an error, per the degrade-gracefully contract.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if !IsPresent(s) {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t)
		}
	}
	return Date{}
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }
func (d Date) IsZero() bool                  { return d.t.IsZero() }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// AddCalendarMonths returns the (month, year) pair n calendar months ahead of
// d, with explicit year rollover: December+1 = January of the next year,
// November+2 = January of the next year. The day component is irrelevant to
// window membership, so the computation anchors on the first of the month.
func (d Date) AddCalendarMonths(n int) (time.Month, int) {
	t := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return t.Month(), t.Year()
}

// DaysBetween returns to - from in whole days. Negative when to is earlier.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// Formatting
const displayDateLayout = "02-Jan-2006"

// String returns the ISO form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// Display returns the table/CSV form (DD-Mon-YYYY), or "" for the zero Date.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(displayDateLayout)
}
