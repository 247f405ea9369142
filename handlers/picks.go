package handlers

import (
	"encoding/json"
	"net/http"

	"fight-picks-go/middleware"
	"fight-picks-go/models"
	"fight-picks-go/services"
)

// PickHandler serves pick submission and retrieval
type PickHandler struct {
	pickService *services.PickService
}

// NewPickHandler creates a pick handler
func NewPickHandler(pickService *services.PickService) *PickHandler {
	return &PickHandler{pickService: pickService}
}

// SubmitPick creates or overwrites the caller's pick for a bout.
// POST /api/picks
func (h *PickHandler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.SubmitPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	pick, err := h.pickService.SubmitPick(r.Context(), user.ID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pick)
}

// GetMyPicks returns the caller's picks, optionally scoped to one event.
// GET /api/picks?event_id=N or GET /api/picks?limit=N
func (h *PickHandler) GetMyPicks(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	if eventID := queryInt(r, "event_id", 0); eventID > 0 {
		picks, err := h.pickService.GetUserPicksForEvent(r.Context(), user.ID, eventID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, picks)
		return
	}

	picks, err := h.pickService.GetAllUserPicks(r.Context(), user.ID, queryInt(r, "limit", 100))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, picks)
}

// GetMyPickForBout returns the caller's pick for one bout.
// GET /api/bouts/{boutID}/pick
func (h *PickHandler) GetMyPickForBout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	boutID, err := pathInt(r, "boutID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	pick, err := h.pickService.GetUserPickForBout(r.Context(), user.ID, boutID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pick)
}

// GetBoutDistribution returns the community pick split for a bout.
// GET /api/bouts/{boutID}/distribution
func (h *PickHandler) GetBoutDistribution(w http.ResponseWriter, r *http.Request) {
	boutID, err := pathInt(r, "boutID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	dist, err := h.pickService.GetBoutDistribution(r.Context(), boutID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dist)
}
