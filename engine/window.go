package engine

// =============================================================================
// CALENDAR WINDOWS - Exact month/year membership, not rolling ranges
// =============================================================================

// Window identifies a calendar-relative date filter. Membership uses exact
// calendar semantics: "next month" on 2025-12-15 is January 2026, not the
// next 30 days.
type Window string

const (
	WindowCurrentMonth Window = "current_month"
	WindowNextMonth    Window = "next_month"
	WindowTwoMonths    Window = "two_months"
	WindowYTD          Window = "ytd"
	WindowAll          Window = "" // no date filtering
)

// ParseWindow maps a wire value onto a Window. Unknown values mean "no
// window" rather than an error, matching the degrade-gracefully contract.
func ParseWindow(s string) Window {
	switch Window(s) {
	case WindowCurrentMonth, WindowNextMonth, WindowTwoMonths, WindowYTD:
		return Window(s)
	}
	return WindowAll
}

// Contains reports whether a record belongs to the window as of now.
// A record without an event date belongs to no window.
//
// ytdBoundedByNow selects between the two YTD readings the boards use:
// bounded (event date <= now) or the whole current year.
func (w Window) Contains(r Record, now Date, ytdBoundedByNow bool) bool {
	if !r.HasDays {
		return false
	}
	switch w {
	case WindowCurrentMonth:
		return r.Month == int(now.Month()) && r.Year == now.Year()
	case WindowNextMonth:
		m, y := now.AddCalendarMonths(1)
		return r.Month == int(m) && r.Year == y
	case WindowTwoMonths:
		m, y := now.AddCalendarMonths(2)
		return r.Month == int(m) && r.Year == y
	case WindowYTD:
		if r.Year != now.Year() {
			return false
		}
		return !ytdBoundedByNow || r.EventDate.BeforeOrEqual(now)
	default:
		return true
	}
}

// WithinNextNDays reports whether d falls in [now, now+n], inclusive on both
// ends, at date granularity. This backs the "Upcoming Week" KPI, which is
// always computed against the full collection regardless of the active
// window filter.
func WithinNextNDays(d Date, n int, now Date) bool {
	if d.IsZero() {
		return false
	}
	return d.AfterOrEqual(now) && d.BeforeOrEqual(now.AddDays(n))
}
