package view

import (
	"errors"
	"time"
)

// Mode selects how many days the calendar displays.
type Mode string

const (
	ModeWeek Mode = "week"
	ModeDay  Mode = "day"
)

// ErrInvalidMode is returned when switching to an unknown mode.
var ErrInvalidMode = errors.New("calendar mode must be \"week\" or \"day\"")

// Navigator owns the calendar's navigation state: the anchor date the
// visible range is computed from, the view mode, and the active locale.
// All navigation state lives here rather than in free-floating variables so
// the view can tag fetches against a single source of truth.
type Navigator struct {
	anchor time.Time
	mode   Mode
	locale Locale

	// now is swapped out in tests.
	now func() time.Time
}

// NewNavigator creates a week-mode navigator anchored to the current week.
// PRE: none
// POST: mode is week, anchor is the most recent Sunday on/before today
func NewNavigator(locale Locale) *Navigator {
	n := &Navigator{mode: ModeWeek, locale: locale, now: time.Now}
	n.SetAnchorToToday()
	return n
}

// SetAnchorToToday re-anchors the visible range around today.
// PRE: none
// POST: week mode anchors on the most recent Sunday on/before today;
// day mode anchors on today
func (n *Navigator) SetAnchorToToday() {
	today := dateOnly(n.now())
	if n.mode == ModeWeek {
		today = today.AddDate(0, 0, -int(today.Weekday()))
	}
	n.anchor = today
}

// Navigate steps the anchor by one page in the given direction (-1 or +1).
// The effective direction is the requested one multiplied by the locale's
// navigation multiplier, so the visually forward control always advances
// the range in reading order.
// PRE: direction is -1 or +1
// POST: anchor moves by 7 days in week mode, 1 day in day mode
func (n *Navigator) Navigate(direction int) {
	step := 1
	if n.mode == ModeWeek {
		step = 7
	}
	n.anchor = n.anchor.AddDate(0, 0, direction*step*n.locale.NavMultiplier())
}

// SwitchMode changes the view mode and re-anchors to today. The prior
// anchor is deliberately not preserved.
// PRE: none
// POST: mode is newMode and the anchor follows SetAnchorToToday semantics
func (n *Navigator) SwitchMode(newMode Mode) error {
	if newMode != ModeWeek && newMode != ModeDay {
		return ErrInvalidMode
	}
	n.mode = newMode
	n.SetAnchorToToday()
	return nil
}

// Range returns the inclusive visible date range.
// POST: week mode yields [anchor, anchor+6]; day mode yields [anchor, anchor]
func (n *Navigator) Range() (from, to time.Time) {
	if n.mode == ModeWeek {
		return n.anchor, n.anchor.AddDate(0, 0, 6)
	}
	return n.anchor, n.anchor
}

// Days returns each calendar day of the visible range in display order.
func (n *Navigator) Days() []time.Time {
	count := 1
	if n.mode == ModeWeek {
		count = 7
	}
	days := make([]time.Time, count)
	for i := range days {
		days[i] = n.anchor.AddDate(0, 0, i)
	}
	return days
}

// Anchor returns the current anchor date.
func (n *Navigator) Anchor() time.Time { return n.anchor }

// SetAnchor positions the visible range at an explicit date. In week mode
// the date snaps back to its week's Sunday.
func (n *Navigator) SetAnchor(d time.Time) {
	d = dateOnly(d)
	if n.mode == ModeWeek {
		d = d.AddDate(0, 0, -int(d.Weekday()))
	}
	n.anchor = d
}

// Mode returns the current view mode.
func (n *Navigator) Mode() Mode { return n.mode }

// Locale returns the active locale.
func (n *Navigator) Locale() Locale { return n.locale }

// Today returns today's date truncated to midnight.
func (n *Navigator) Today() time.Time { return dateOnly(n.now()) }

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
