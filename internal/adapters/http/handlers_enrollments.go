package web

import (
	"log/slog"
	"net/http"
	"time"

	"clubdesk/internal/domain/enrollment"
)

// enrollmentRequest is the JSON body for enrolling a student in a course.
type enrollmentRequest struct {
	CourseID       int    `json:"course_id"`
	StudentID      int    `json:"student_id"`
	EnrollmentDate string `json:"enrollment_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// handleEnrollments handles GET /api/enrollments?course_id=N (list) and
// POST /api/enrollments (enroll).
func handleEnrollments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case "GET":
		if studentID, ok := queryID(r, "student_id"); ok {
			enrollments, err := stores.EnrollmentStore.ListByStudent(ctx, studentID)
			if err != nil {
				slog.Error("enrollment_list_failed", "student_id", studentID, "error", err.Error())
				writeError(w, http.StatusInternalServerError, "failed to list enrollments")
				return
			}
			writeJSON(w, http.StatusOK, enrollments)
			return
		}
		courseID, ok := queryID(r, "course_id")
		if !ok {
			writeError(w, http.StatusBadRequest, "course_id or student_id is required")
			return
		}
		enrollments, err := stores.EnrollmentStore.ListByCourse(ctx, courseID)
		if err != nil {
			slog.Error("enrollment_list_failed", "course_id", courseID, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "failed to list enrollments")
			return
		}
		writeJSON(w, http.StatusOK, enrollments)
	case "POST":
		var req enrollmentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		e := enrollment.Enrollment{
			CourseID:  req.CourseID,
			StudentID: req.StudentID,
		}
		if req.EnrollmentDate != "" {
			date, err := time.Parse(dateFormat, req.EnrollmentDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "enrollment_date must be YYYY-MM-DD")
				return
			}
			e.EnrollmentDate = date
		} else {
			now := time.Now()
			e.EnrollmentDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}
		if err := e.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := stores.EnrollmentStore.Create(ctx, e)
		if err != nil {
			slog.Error("enrollment_create_failed", "course_id", e.CourseID, "student_id", e.StudentID, "error", err.Error())
			writeError(w, http.StatusConflict, "student is already enrolled in this course")
			return
		}
		e.ID = id
		slog.Info("enrollment_event", "event", "student_enrolled", "course_id", e.CourseID, "student_id", e.StudentID)
		writeJSON(w, http.StatusCreated, e)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEnrollmentDelete handles POST /api/enrollments/delete?course_id=N&student_id=M.
func handleEnrollmentDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	courseID, ok := queryID(r, "course_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "course_id is required")
		return
	}
	studentID, ok := queryID(r, "student_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "student_id is required")
		return
	}
	if err := stores.EnrollmentStore.Delete(r.Context(), courseID, studentID); err != nil {
		slog.Error("enrollment_delete_failed", "course_id", courseID, "student_id", studentID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to remove enrollment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"course_id": courseID, "student_id": studentID})
}
