package projections

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clubdesk/internal/domain/calendar"
	"clubdesk/internal/domain/course"
)

// CalendarEventsCourseStore defines the course store interface for the calendar projection.
type CalendarEventsCourseStore interface {
	ListOverlapping(ctx context.Context, from, to string) ([]course.Course, error)
}

// CalendarEventsEnrollmentStore defines the enrollment store interface for the calendar projection.
type CalendarEventsEnrollmentStore interface {
	CountByCourse(ctx context.Context, courseID int) (int, error)
}

// CalendarEventsDeps holds dependencies for the calendar events projection.
type CalendarEventsDeps struct {
	CourseStore     CalendarEventsCourseStore
	EnrollmentStore CalendarEventsEnrollmentStore
}

// CalendarEventsInput is the inclusive date window to expand.
type CalendarEventsInput struct {
	From time.Time
	To   time.Time
}

const dateFormat = "2006-01-02"

// QueryCalendarEvents expands every course that intersects the window into
// one event per scheduled occurrence, enriched with the live enrollment
// count and the sessions still remaining as of that date.
// PRE: input.From <= input.To
// POST: events are sorted by date, then start time, then course name
func QueryCalendarEvents(ctx context.Context, input CalendarEventsInput, deps CalendarEventsDeps) ([]calendar.Event, error) {
	from := input.From.Format(dateFormat)
	to := input.To.Format(dateFormat)

	courses, err := deps.CourseStore.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list courses for %s..%s: %w", from, to, err)
	}

	var events []calendar.Event
	for _, c := range courses {
		occurrences, err := c.Occurrences(input.From, input.To)
		if err != nil {
			return nil, fmt.Errorf("expand course %q: %w", c.Name, err)
		}
		if len(occurrences) == 0 {
			continue
		}

		enrolled, err := deps.EnrollmentStore.CountByCourse(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("count enrollments for course %d: %w", c.ID, err)
		}

		for _, day := range occurrences {
			remaining, err := c.ClassesRemaining(day)
			if err != nil {
				return nil, fmt.Errorf("classes remaining for course %d: %w", c.ID, err)
			}
			events = append(events, calendar.Event{
				ID:               c.ID,
				Date:             day.Format(dateFormat),
				Time:             c.Time,
				Duration:         c.Duration,
				Title:            c.Name,
				Teacher:          c.Teacher,
				Color:            c.Color,
				EnrolledCount:    enrolled,
				ClassesRemaining: remaining,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].Title < events[j].Title
	})
	return events, nil
}
