package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"clubdesk/internal/application/projections"
	"clubdesk/internal/view"
)

var calendarPageTemplate = template.Must(template.New("calendar").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head><meta charset="utf-8"><title>ClubDesk — {{.MonthHeader}}</title>
<link rel="stylesheet" href="/static/app.css"></head>
<body>
<header class="calendar-toolbar">
  <nav>
    <a class="nav-prev" href="/calendar?mode={{.Mode}}&date={{.PrevDate}}">&lsaquo;</a>
    <a class="nav-today" href="/calendar?mode={{.Mode}}">Today</a>
    <a class="nav-next" href="/calendar?mode={{.Mode}}&date={{.NextDate}}">&rsaquo;</a>
  </nav>
  <h1 class="month-header">{{.MonthHeader}}</h1>
  <nav>
    <a class="mode-week" href="/calendar?mode=week&date={{.Anchor}}">Week</a>
    <a class="mode-day" href="/calendar?mode=day&date={{.Anchor}}">Day</a>
  </nav>
</header>
<main>{{.Grid}}</main>
</body>
</html>`))

type calendarPageData struct {
	Lang        string
	Dir         view.Direction
	Mode        view.Mode
	MonthHeader string
	Anchor      string
	PrevDate    string
	NextDate    string
	Grid        template.HTML
}

// handleIndex redirects the root to the calendar and 404s everything else,
// so unknown paths don't silently render the calendar.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/calendar", http.StatusSeeOther)
}

// handleCalendarPage handles GET /calendar?mode=week|day&date=YYYY-MM-DD.
// Renders the schedule grid server-side in the configured locale.
func handleCalendarPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	nav := view.NewNavigator(pageLocale)
	if mode := r.URL.Query().Get("mode"); mode != "" {
		if err := nav.SwitchMode(view.Mode(mode)); err != nil {
			writeError(w, http.StatusBadRequest, "mode must be week or day")
			return
		}
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		anchor, err := time.Parse(dateFormat, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		nav.SetAnchor(anchor)
	}

	from, to := nav.Range()
	events, err := projections.QueryCalendarEvents(r.Context(), projections.CalendarEventsInput{
		From: from,
		To:   to,
	}, calendarDeps())
	if err != nil {
		slog.Error("calendar_page_failed", "error", err.Error())
		http.Error(w, "failed to build calendar", http.StatusInternalServerError)
		return
	}

	renderer := view.NewRenderer(pageLocale)
	grid, err := renderer.Render(nav.Days(), nav.Today(), events)
	if err != nil {
		slog.Error("calendar_render_failed", "error", err.Error())
		http.Error(w, "failed to render calendar", http.StatusInternalServerError)
		return
	}

	// Prev/next anchors follow the locale's reading direction.
	step := 7
	if nav.Mode() == view.ModeDay {
		step = 1
	}
	step *= pageLocale.NavMultiplier()
	anchor := nav.Anchor()

	calendarPageTemplate.Execute(w, calendarPageData{
		Lang:        string(pageLocale),
		Dir:         pageLocale.Direction(),
		Mode:        nav.Mode(),
		MonthHeader: renderer.MonthHeader(anchor, nav.Mode()),
		Anchor:      anchor.Format(dateFormat),
		PrevDate:    anchor.AddDate(0, 0, -step).Format(dateFormat),
		NextDate:    anchor.AddDate(0, 0, step).Format(dateFormat),
		Grid:        grid,
	})
}

var coursePageTemplate = template.Must(template.New("course").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head><meta charset="utf-8"><title>ClubDesk — {{.Profile.Course.Name}}</title>
<link rel="stylesheet" href="/static/app.css"></head>
<body>
<header class="course-header" style="border-color: {{.Profile.Course.Color}}">
  <h1>{{.Profile.Course.Name}}</h1>
  <p>{{.Profile.Course.Teacher}} &middot; {{.Profile.Course.Time}} &middot; {{.Profile.ClassesRemaining}} classes remaining</p>
</header>
<section class="course-roster">
  <h2>Students ({{len .Profile.Students}})</h2>
  <table>
    <tr><th>Name</th><th>Age</th><th>Phone</th></tr>
    {{range .Profile.Students}}<tr><td>{{.Name}}</td><td>{{.Age}}</td><td>{{.Phone}}</td></tr>
    {{end}}
  </table>
</section>
<section class="course-meetings">
  <h2>Meetings</h2>
  {{range .Meetings}}
  <article class="meeting">
    <h3>{{.Date}} &middot; {{.Present}} present</h3>
    <div class="meeting-notes">{{.NotesHTML}}</div>
  </article>
  {{end}}
</section>
</body>
</html>`))

type coursePageMeeting struct {
	Date      string
	Present   int
	NotesHTML template.HTML
}

type coursePageData struct {
	Lang     string
	Dir      view.Direction
	Profile  projections.CourseProfile
	Meetings []coursePageMeeting
}

// handleCoursePage handles GET /course?id=N: the course profile page with
// roster, meeting history and markdown notes.
func handleCoursePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	profile, err := projections.QueryCourseProfile(r.Context(), projections.CourseProfileInput{CourseID: id}, projections.CourseProfileDeps{
		CourseStore:  stores.CourseStore,
		StudentStore: stores.StudentStore,
		MeetingStore: stores.MeetingStore,
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}

	meetings := make([]coursePageMeeting, 0, len(profile.Meetings))
	for _, m := range profile.Meetings {
		meetings = append(meetings, coursePageMeeting{
			Date:      m.Date,
			Present:   m.Present,
			NotesHTML: renderNotes(m.Notes),
		})
	}

	coursePageTemplate.Execute(w, coursePageData{
		Lang:     string(pageLocale),
		Dir:      pageLocale.Direction(),
		Profile:  profile,
		Meetings: meetings,
	})
}
