package web

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"clubdesk/internal/domain/coach"
)

// coachRequest is the JSON body for creating and updating coaches.
type coachRequest struct {
	ID        int    `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (req *coachRequest) toCoach() (coach.Coach, error) {
	c := coach.Coach{
		ID:        req.ID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
	}
	if err := c.Validate(); err != nil {
		return coach.Coach{}, err
	}
	return c, nil
}

// handleCoaches handles GET /api/coaches (list) and POST /api/coaches (create).
func handleCoaches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case "GET":
		coaches, err := stores.CoachStore.List(ctx)
		if err != nil {
			slog.Error("coach_list_failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "failed to list coaches")
			return
		}
		writeJSON(w, http.StatusOK, coaches)
	case "POST":
		var req coachRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		c, err := req.toCoach()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := stores.CoachStore.Create(ctx, c)
		if err != nil {
			slog.Error("coach_create_failed", "error", err.Error())
			writeError(w, http.StatusConflict, "failed to create coach (phone must be unique)")
			return
		}
		c.ID = id
		slog.Info("coach_event", "event", "coach_created", "coach_id", id)
		writeJSON(w, http.StatusCreated, c)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleCoachUpdate handles POST /api/coaches/update.
func handleCoachUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req coachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "coach id is required")
		return
	}
	c, err := req.toCoach()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if _, err := stores.CoachStore.GetByID(ctx, c.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "coach not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load coach")
		return
	}
	if err := stores.CoachStore.Update(ctx, c); err != nil {
		slog.Error("coach_update_failed", "coach_id", c.ID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to update coach")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleCoachDelete handles POST /api/coaches/delete?id=N.
func handleCoachDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := stores.CoachStore.Delete(r.Context(), id); err != nil {
		slog.Error("coach_delete_failed", "coach_id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to delete coach")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
