package course

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"clubdesk/internal/domain/calendar"
)

// Defaults applied when the caller omits a value.
const (
	DefaultDuration = 60        // minutes per meeting
	DefaultColor    = "#3B82F6" // blue
)

// Domain errors
var (
	ErrEmptyName    = errors.New("course name cannot be empty")
	ErrEmptyTeacher = errors.New("course teacher cannot be empty")
	ErrInvalidTime  = errors.New("course time must be in HH:MM format")
	ErrBadDuration  = errors.New("course duration must be positive")
	ErrBadSessions  = errors.New("course sessions count must be positive")
	ErrNoWeekdays   = errors.New("at least one weekday must be selected")
	ErrBadWeekday   = errors.New("weekdays must be comma-separated values 0-6 (Sunday=0)")
	ErrBadColor     = errors.New("course color must be a #RRGGBB value")
	ErrMissingStart = errors.New("course start date is required")
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Course is a recurring class: it runs on a fixed set of weekdays at a fixed
// time-of-day between StartDate and EndDate. SessionsPerWeek and EndDate are
// derived from Weekdays and SessionsCount, never set directly.
type Course struct {
	ID              int
	Name            string // unique
	Teacher         string
	StartDate       time.Time
	Time            string // HH:MM
	Duration        int    // minutes
	SessionsCount   int
	SessionsPerWeek int
	Weekdays        string // comma-separated, Sunday=0 .. Saturday=6
	EndDate         time.Time
	Color           string
}

// Validate checks the course's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Teacher) == "" {
		return ErrEmptyTeacher
	}
	if c.StartDate.IsZero() {
		return ErrMissingStart
	}
	if _, err := calendar.ParseClock(c.Time); err != nil {
		return ErrInvalidTime
	}
	if c.Duration <= 0 {
		return ErrBadDuration
	}
	if c.SessionsCount <= 0 {
		return ErrBadSessions
	}
	if _, err := ParseWeekdays(c.Weekdays); err != nil {
		return err
	}
	if !colorPattern.MatchString(c.Color) {
		return ErrBadColor
	}
	return nil
}

// ParseWeekdays parses a "0,2,5" style weekday list (Sunday=0) into distinct
// weekday numbers, preserving first-seen order.
// PRE: none
// POST: returns at least one weekday, or an error
func ParseWeekdays(s string) ([]int, error) {
	seen := [7]bool{}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, ErrBadWeekday
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoWeekdays
	}
	return out, nil
}

// ScheduleMetrics derives (sessionsPerWeek, totalWeeks) from the weekday
// list and the planned number of sessions. totalWeeks is a ceiling division.
// PRE: none
// POST: both results are >= 1, or an error
func ScheduleMetrics(weekdays string, sessionsCount int) (sessionsPerWeek, totalWeeks int, err error) {
	days, err := ParseWeekdays(weekdays)
	if err != nil {
		return 0, 0, err
	}
	if sessionsCount <= 0 {
		return 0, 0, ErrBadSessions
	}
	sessionsPerWeek = len(days)
	totalWeeks = (sessionsCount + sessionsPerWeek - 1) / sessionsPerWeek
	return sessionsPerWeek, totalWeeks, nil
}

// ApplySchedule sets SessionsCount and Weekdays and recomputes the derived
// SessionsPerWeek and EndDate.
// PRE: StartDate is set
// POST: EndDate = StartDate + totalWeeks weeks
func (c *Course) ApplySchedule(sessionsCount int, weekdays string) error {
	perWeek, totalWeeks, err := ScheduleMetrics(weekdays, sessionsCount)
	if err != nil {
		return err
	}
	c.SessionsCount = sessionsCount
	c.Weekdays = weekdays
	c.SessionsPerWeek = perWeek
	c.EndDate = c.StartDate.AddDate(0, 0, totalWeeks*7)
	return nil
}

// rruleWeekdays maps Sunday-based weekday numbers to recurrence weekdays.
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// rule builds the weekly recurrence for the course's weekday set starting at
// StartDate. The rule is unbounded; callers window it with Between.
func (c *Course) rule() (*rrule.RRule, error) {
	days, err := ParseWeekdays(c.Weekdays)
	if err != nil {
		return nil, err
	}
	byDay := make([]rrule.Weekday, len(days))
	for i, d := range days {
		byDay[i] = rruleWeekdays[d]
	}
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: byDay,
		Dtstart:   dateOnly(c.StartDate),
	})
	if err != nil {
		return nil, fmt.Errorf("course %q recurrence: %w", c.Name, err)
	}
	return r, nil
}

// Occurrences returns the dates the course meets within [from, to],
// inclusive, clipped to the course's own start/end window.
// PRE: from and to are dates (no time component needed)
// POST: dates are ascending; empty when the windows don't intersect
func (c *Course) Occurrences(from, to time.Time) ([]time.Time, error) {
	lo := dateOnly(from)
	if c.StartDate.After(lo) {
		lo = dateOnly(c.StartDate)
	}
	hi := dateOnly(to)
	if !c.EndDate.IsZero() && c.EndDate.Before(hi) {
		hi = dateOnly(c.EndDate)
	}
	if hi.Before(lo) {
		return nil, nil
	}
	r, err := c.rule()
	if err != nil {
		return nil, err
	}
	return r.Between(lo, hi, true), nil
}

// ClassesRemaining counts how many of the planned sessions are still ahead
// of onDate: planned total minus meetings that fell strictly before it.
// PRE: none
// POST: result is in [0, SessionsCount]
func (c *Course) ClassesRemaining(onDate time.Time) (int, error) {
	day := dateOnly(onDate)
	if !day.After(dateOnly(c.StartDate)) {
		return c.SessionsCount, nil
	}
	r, err := c.rule()
	if err != nil {
		return 0, err
	}
	completed := len(r.Between(dateOnly(c.StartDate), day.AddDate(0, 0, -1), true))
	return max(0, c.SessionsCount-completed), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
