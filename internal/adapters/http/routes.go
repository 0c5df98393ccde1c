package web

import (
	"net/http"

	"clubdesk/internal/adapters/http/middleware"
)

// registerRoutes wires every handler onto the mux. All routes except the
// login form require an authenticated session.
func registerRoutes(mux *http.ServeMux) {
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	// Pages
	mux.Handle("/", protected(handleIndex))
	mux.Handle("/calendar", protected(handleCalendarPage))
	mux.Handle("/course", protected(handleCoursePage))

	// Courses
	mux.Handle("/api/courses", protected(handleCourses))
	mux.Handle("/api/courses/update", protected(handleCourseUpdate))
	mux.Handle("/api/courses/delete", protected(handleCourseDelete))
	mux.Handle("/api/courses/profile", protected(handleCourseProfile))

	// Students
	mux.Handle("/api/students", protected(handleStudents))
	mux.Handle("/api/students/update", protected(handleStudentUpdate))
	mux.Handle("/api/students/delete", protected(handleStudentDelete))

	// Coaches
	mux.Handle("/api/coaches", protected(handleCoaches))
	mux.Handle("/api/coaches/update", protected(handleCoachUpdate))
	mux.Handle("/api/coaches/delete", protected(handleCoachDelete))

	// Enrollments
	mux.Handle("/api/enrollments", protected(handleEnrollments))
	mux.Handle("/api/enrollments/delete", protected(handleEnrollmentDelete))

	// Payments
	mux.Handle("/api/payments", protected(handlePayments))
	mux.Handle("/api/payments/delete", protected(handlePaymentDelete))
	mux.Handle("/api/payments/invoice", protected(handlePaymentInvoice))
	mux.Handle("/api/payments/export.xlsx", protected(handlePaymentExport))

	// Meetings and attendance
	mux.Handle("/api/meetings", protected(handleMeetings))
	mux.Handle("/api/meetings/delete", protected(handleMeetingDelete))
	mux.Handle("/api/meetings/notes", protected(handleMeetingNotes))
	mux.Handle("/api/meetings/attendance", protected(handleMeetingAttendance))

	// Calendar feeds
	mux.Handle("/api/calendar/weekly", protected(handleCalendarWeekly))
	mux.Handle("/api/calendar/daily", protected(handleCalendarDaily))
	mux.Handle("/api/calendar/monthly", protected(handleCalendarMonthly))
	mux.Handle("/api/calendar/export.ics", protected(handleCalendarExport))

	// Income analysis
	mux.Handle("/api/analysis", protected(handleAnalysis))
	mux.Handle("/api/analysis/coaches", protected(handleAnalysisCoaches))
	mux.Handle("/api/analysis/courses", protected(handleAnalysisCourses))

	// Admin
	mux.Handle("/api/admin/reset", protected(handleAdminReset))
}
