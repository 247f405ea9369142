package handlers

import (
	"net/http"

	"fight-picks-go/database"
)

// HealthHandler reports service and database liveness
type HealthHandler struct {
	db *database.MongoDB
}

// NewHealthHandler creates a health handler
func NewHealthHandler(db *database.MongoDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health returns 200 when the database answers a ping, 503 otherwise.
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}
