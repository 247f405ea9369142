package handlers

import (
	"net/http"

	"fight-picks-go/middleware"
	"fight-picks-go/services"
)

// LeaderboardHandler serves standings views
type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
	defaultLimit       int
}

// NewLeaderboardHandler creates a leaderboard handler
func NewLeaderboardHandler(leaderboardService *services.LeaderboardService, defaultLimit int) *LeaderboardHandler {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &LeaderboardHandler{leaderboardService: leaderboardService, defaultLimit: defaultLimit}
}

// GetGlobalLeaderboard returns the all-time standings, optionally filtered
// to one calendar year.
// GET /api/leaderboard?limit=N&year=YYYY
func (h *LeaderboardHandler) GetGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", h.defaultLimit)

	var year *int
	if y := queryInt(r, "year", 0); y > 0 {
		year = &y
	}

	entries, err := h.leaderboardService.GetGlobalLeaderboard(r.Context(), limit, year)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetEventLeaderboard returns standings for a single event.
// GET /api/leaderboard/events/{eventID}?limit=N
func (h *LeaderboardHandler) GetEventLeaderboard(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	entries, err := h.leaderboardService.GetEventLeaderboard(r.Context(), eventID, queryInt(r, "limit", h.defaultLimit))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetMyRank returns the caller's position in the global standings.
// GET /api/leaderboard/me
func (h *LeaderboardHandler) GetMyRank(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	rank, err := h.leaderboardService.GetUserRank(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if rank == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"rank": nil})
		return
	}
	respondJSON(w, http.StatusOK, rank)
}
