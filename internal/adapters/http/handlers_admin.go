package web

import (
	"log/slog"
	"net/http"

	"clubdesk/internal/adapters/storage"
)

// handleAdminReset handles POST /api/admin/reset.
// Drops and recreates the whole schema. Guarded behind auth and intended
// for development and test environments only.
func handleAdminReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if resetDB == nil {
		writeError(w, http.StatusServiceUnavailable, "reset is not enabled")
		return
	}
	if err := storage.ResetDB(resetDB.RawDB()); err != nil {
		slog.Error("admin_reset_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to reset database")
		return
	}
	slog.Warn("admin_event", "event", "database_reset")
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}
