package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Domain errors
var (
	ErrEmptyDate   = errors.New("event date cannot be empty")
	ErrInvalidTime = errors.New("event time must be in HH:MM format")
	ErrBadDuration = errors.New("event duration must be positive")
)

// Event is one course occurrence on one date, as served by the calendar API.
// A session never wraps past midnight: a duration reaching beyond 24:00 is
// displayed up to the terminal 00:00 slot and truncated there.
type Event struct {
	ID               int    `json:"id"`
	Date             string `json:"date"` // YYYY-MM-DD
	Time             string `json:"time"` // HH:MM
	Duration         int    `json:"duration"` // minutes
	Title            string `json:"title"`
	Teacher          string `json:"teacher"`
	Color            string `json:"color"`
	EnrolledCount    int    `json:"enrolled_count"`
	ClassesRemaining int    `json:"classes_remaining"`
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := ParseClock(e.Time); err != nil {
		return ErrInvalidTime
	}
	if e.Duration <= 0 {
		return ErrBadDuration
	}
	return nil
}

// StartMinutes returns the event's start as minutes since midnight.
// PRE: none
// POST: returns minutes in [0, 1440), or error if Time is malformed
func (e *Event) StartMinutes() (int, error) {
	return ParseClock(e.Time)
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
// PRE: none
// POST: returns minutes in [0, 1440), or error if s is malformed
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("clock %q: missing separator", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("clock %q: %w", s, err)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("clock %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock %q: out of range", s)
	}
	return hour*60 + minute, nil
}
