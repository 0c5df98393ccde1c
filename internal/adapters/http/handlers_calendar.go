package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"clubdesk/internal/application/projections"
	"clubdesk/internal/domain/calendar"
)

func calendarDeps() projections.CalendarEventsDeps {
	return projections.CalendarEventsDeps{
		CourseStore:     stores.CourseStore,
		EnrollmentStore: stores.EnrollmentStore,
	}
}

// handleCalendarWeekly handles GET /api/calendar/weekly?start_date=YYYY-MM-DD.
// The window is the seven days starting at start_date (the client anchors it
// to Sunday). Missing start_date means the current week.
func handleCalendarWeekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	start, err := queryDate(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	if r.URL.Query().Get("start_date") == "" {
		// Default to this week's Sunday.
		start = start.AddDate(0, 0, -int(start.Weekday()))
	}

	events, err := projections.QueryCalendarEvents(r.Context(), projections.CalendarEventsInput{
		From: start,
		To:   start.AddDate(0, 0, 6),
	}, calendarDeps())
	if err != nil {
		slog.Error("calendar_weekly_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}
	writeJSON(w, http.StatusOK, eventsOrEmpty(events))
}

// handleCalendarDaily handles GET /api/calendar/daily?date=YYYY-MM-DD.
func handleCalendarDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	events, err := projections.QueryCalendarEvents(r.Context(), projections.CalendarEventsInput{
		From: day,
		To:   day,
	}, calendarDeps())
	if err != nil {
		slog.Error("calendar_daily_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}
	writeJSON(w, http.StatusOK, eventsOrEmpty(events))
}

// handleCalendarMonthly handles GET /api/calendar/monthly?month=YYYY-MM.
func handleCalendarMonthly(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	raw := r.URL.Query().Get("month")
	var first time.Time
	if raw == "" {
		now := time.Now()
		first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		var err error
		first, err = time.Parse("2006-01", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
	}
	last := first.AddDate(0, 1, -1)

	events, err := projections.QueryCalendarEvents(r.Context(), projections.CalendarEventsInput{
		From: first,
		To:   last,
	}, calendarDeps())
	if err != nil {
		slog.Error("calendar_monthly_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}
	writeJSON(w, http.StatusOK, eventsOrEmpty(events))
}

// handleCalendarExport handles GET /api/calendar/export.ics?month=YYYY-MM.
// Exports the month's schedule as an iCalendar feed for external calendars.
func handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	raw := r.URL.Query().Get("month")
	var first time.Time
	if raw == "" {
		now := time.Now()
		first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		var err error
		first, err = time.Parse("2006-01", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
	}
	last := first.AddDate(0, 1, -1)

	events, err := projections.QueryCalendarEvents(r.Context(), projections.CalendarEventsInput{
		From: first,
		To:   last,
	}, calendarDeps())
	if err != nil {
		slog.Error("calendar_export_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ClubDesk//Schedule//EN")
	for _, ev := range events {
		startMin, err := ev.StartMinutes()
		if err != nil {
			continue
		}
		day, err := time.Parse(dateFormat, ev.Date)
		if err != nil {
			continue
		}
		start := day.Add(time.Duration(startMin) * time.Minute)

		item := cal.AddEvent(fmt.Sprintf("course-%d-%s@clubdesk", ev.ID, ev.Date))
		item.SetStartAt(start)
		item.SetEndAt(start.Add(time.Duration(ev.Duration) * time.Minute))
		item.SetSummary(ev.Title)
		item.SetDescription(fmt.Sprintf("Coach: %s, enrolled: %d", ev.Teacher, ev.EnrolledCount))
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="clubdesk-%s.ics"`, first.Format("2006-01")))
	if err := cal.SerializeTo(w); err != nil {
		slog.Error("calendar_export_write_failed", "error", err.Error())
	}
}

// eventsOrEmpty keeps the JSON response an array, never null.
func eventsOrEmpty(events []calendar.Event) []calendar.Event {
	if events == nil {
		return []calendar.Event{}
	}
	return events
}
