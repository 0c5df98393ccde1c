package web

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"clubdesk/internal/application/orchestrators"
	"clubdesk/internal/domain/meeting"
)

// meetingRequest is the JSON body for recording a held session.
type meetingRequest struct {
	CourseID int          `json:"course_id"`
	Date     string       `json:"date"` // YYYY-MM-DD
	Notes    string       `json:"notes,omitempty"`
	Present  map[int]bool `json:"present,omitempty"` // student id -> attended
}

// meetingResponse is one meeting with its notes rendered for display.
type meetingResponse struct {
	ID        int    `json:"id"`
	CourseID  int    `json:"course_id"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
	NotesHTML string `json:"notes_html"`
}

// handleMeetings handles GET /api/meetings?course_id=N (list) and
// POST /api/meetings (record a session with attendance).
func handleMeetings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case "GET":
		courseID, ok := queryID(r, "course_id")
		if !ok {
			writeError(w, http.StatusBadRequest, "course_id is required")
			return
		}
		meetings, err := stores.MeetingStore.ListByCourse(ctx, courseID)
		if err != nil {
			slog.Error("meeting_list_failed", "course_id", courseID, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "failed to list meetings")
			return
		}
		out := make([]meetingResponse, 0, len(meetings))
		for _, m := range meetings {
			out = append(out, meetingResponse{
				ID:        m.ID,
				CourseID:  m.CourseID,
				Date:      m.Date.Format(dateFormat),
				Notes:     m.Notes,
				NotesHTML: string(renderNotes(m.Notes)),
			})
		}
		writeJSON(w, http.StatusOK, out)
	case "POST":
		var req meetingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		date, err := time.Parse(dateFormat, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}

		id, err := orchestrators.ExecuteCreateMeeting(ctx, orchestrators.CreateMeetingInput{
			Meeting: meeting.Meeting{CourseID: req.CourseID, Date: date, Notes: req.Notes},
			Present: req.Present,
		}, orchestrators.CreateMeetingDeps{
			MeetingStore:    stores.MeetingStore,
			EnrollmentStore: stores.EnrollmentStore,
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": id})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleMeetingDelete handles POST /api/meetings/delete?id=N.
// POST: the meeting and its attendance rows are removed
func handleMeetingDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx := r.Context()
	if _, err := stores.MeetingStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "meeting not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load meeting")
		return
	}
	if err := stores.MeetingStore.Delete(ctx, id); err != nil {
		slog.Error("meeting_delete_failed", "meeting_id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to delete meeting")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// handleMeetingNotes handles POST /api/meetings/notes?id=N.
// POST: replaces the meeting's notes
func handleMeetingNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := stores.MeetingStore.UpdateNotes(r.Context(), id, body.Notes); err != nil {
		slog.Error("meeting_notes_failed", "meeting_id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to update notes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         id,
		"notes_html": string(renderNotes(body.Notes)),
	})
}

// handleMeetingAttendance handles POST /api/meetings/attendance?id=N.
// POST: upserts one student's presence mark
func handleMeetingAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	var body struct {
		StudentID int  `json:"student_id"`
		Present   bool `json:"present"`
	}
	if err := decodeJSON(r, &body); err != nil || body.StudentID <= 0 {
		writeError(w, http.StatusBadRequest, "student_id is required")
		return
	}
	if err := stores.MeetingStore.SetPresent(r.Context(), id, body.StudentID, body.Present); err != nil {
		slog.Error("attendance_failed", "meeting_id", id, "student_id", body.StudentID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to mark attendance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"meeting_id": id,
		"student_id": body.StudentID,
		"present":    body.Present,
	})
}
