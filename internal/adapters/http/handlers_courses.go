package web

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubdesk/internal/application/orchestrators"
	"clubdesk/internal/application/projections"
	"clubdesk/internal/domain/course"
)

// courseRequest is the JSON body for creating and updating courses.
type courseRequest struct {
	ID            int    `json:"id,omitempty"`
	Name          string `json:"name"`
	Teacher       string `json:"teacher"`
	StartDate     string `json:"start_date"` // YYYY-MM-DD
	Time          string `json:"time"`       // HH:MM
	Duration      int    `json:"duration"`
	SessionsCount int    `json:"sessions_count"`
	Weekdays      string `json:"weekdays"` // "0,2,5", Sunday=0
	Color         string `json:"color"`
}

func (req *courseRequest) toCourse() (course.Course, error) {
	start, err := time.Parse(dateFormat, req.StartDate)
	if err != nil {
		return course.Course{}, course.ErrMissingStart
	}
	c := course.Course{
		ID:        req.ID,
		Name:      strings.TrimSpace(req.Name),
		Teacher:   strings.TrimSpace(req.Teacher),
		StartDate: start,
		Time:      req.Time,
		Duration:  req.Duration,
		Color:     req.Color,
	}
	if c.Duration == 0 {
		c.Duration = course.DefaultDuration
	}
	if c.Color == "" {
		c.Color = course.DefaultColor
	}
	if err := c.ApplySchedule(req.SessionsCount, req.Weekdays); err != nil {
		return course.Course{}, err
	}
	if err := c.Validate(); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

// handleCourses handles GET /api/courses (list) and POST /api/courses (create).
func handleCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case "GET":
		courses, err := stores.CourseStore.List(ctx)
		if err != nil {
			slog.Error("course_list_failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "failed to list courses")
			return
		}
		writeJSON(w, http.StatusOK, courses)
	case "POST":
		var req courseRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		c, err := req.toCourse()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := stores.CourseStore.Create(ctx, c)
		if err != nil {
			slog.Error("course_create_failed", "error", err.Error())
			writeError(w, http.StatusConflict, "failed to create course (name must be unique)")
			return
		}
		c.ID = id
		slog.Info("course_event", "event", "course_created", "course_id", id, "name", c.Name)
		writeJSON(w, http.StatusCreated, c)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleCourseUpdate handles POST /api/courses/update.
func handleCourseUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "course id is required")
		return
	}
	c, err := req.toCourse()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if _, err := stores.CourseStore.GetByID(ctx, c.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "course not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load course")
		return
	}
	if err := stores.CourseStore.Update(ctx, c); err != nil {
		slog.Error("course_update_failed", "course_id", c.ID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to update course")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleCourseDelete handles POST /api/courses/delete?id=N.
// POST: course and all dependent rows are removed
func handleCourseDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	err := orchestrators.ExecuteDeleteCourse(r.Context(), orchestrators.DeleteCourseInput{CourseID: id}, orchestrators.DeleteCourseDeps{
		CourseStore:     stores.CourseStore,
		EnrollmentStore: stores.EnrollmentStore,
		PaymentStore:    stores.PaymentStore,
		MeetingStore:    stores.MeetingStore,
	})
	if err != nil {
		slog.Error("course_delete_failed", "course_id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to delete course")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// handleCourseProfile handles GET /api/courses/profile?id=N.
func handleCourseProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	profile, err := projections.QueryCourseProfile(r.Context(), projections.CourseProfileInput{CourseID: id}, projections.CourseProfileDeps{
		CourseStore:  stores.CourseStore,
		StudentStore: stores.StudentStore,
		MeetingStore: stores.MeetingStore,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "course not found")
			return
		}
		slog.Error("course_profile_failed", "course_id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to load course profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
