package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"fight-picks-go/models"
	"fight-picks-go/services"
)

// AdminHandler serves the admin-only result and lock management endpoints
type AdminHandler struct {
	resultService *services.ResultService
	pickService   *services.PickService
	eventService  *services.EventService
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(resultService *services.ResultService, pickService *services.PickService, eventService *services.EventService) *AdminHandler {
	return &AdminHandler{
		resultService: resultService,
		pickService:   pickService,
		eventService:  eventService,
	}
}

// resultRequest is the admin payload for entering an official result.
// Winner accepts "red", "blue", "draw" or "nc"; the latter two record a
// result with no winning corner.
type resultRequest struct {
	Winner string `json:"winner"`
	Method string `json:"method"`
	Round  *int   `json:"round,omitempty"`
	Time   string `json:"time,omitempty"`
}

func (req *resultRequest) toResult() (*models.BoutResult, bool) {
	result := &models.BoutResult{Method: req.Method, Round: req.Round, Time: req.Time}
	switch req.Winner {
	case "red":
		corner := models.CornerRed
		result.Winner = &corner
	case "blue":
		corner := models.CornerBlue
		result.Winner = &corner
	case "draw", "nc":
		// no winning corner
	default:
		return nil, false
	}
	return result, true
}

// ApplyResult records an official result and scores all picks on the bout.
// PUT /api/admin/bouts/{boutID}/result
func (h *AdminHandler) ApplyResult(w http.ResponseWriter, r *http.Request) {
	boutID, err := pathInt(r, "boutID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, ok := req.toResult()
	if !ok {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "winner must be red, blue, draw or nc"})
		return
	}

	summary, err := h.resultService.ApplyResult(r.Context(), boutID, result)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// RevertResult clears a bout's result and resets its picks to unscored.
// DELETE /api/admin/bouts/{boutID}/result
func (h *AdminHandler) RevertResult(w http.ResponseWriter, r *http.Request) {
	boutID, err := pathInt(r, "boutID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	summary, err := h.resultService.RevertResult(r.Context(), boutID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// LockEventPicks locks all picks on an event and raises the event override.
// POST /api/admin/events/{eventID}/lock
func (h *AdminHandler) LockEventPicks(w http.ResponseWriter, r *http.Request) {
	h.toggleEventPicks(w, r, true)
}

// UnlockEventPicks clears the event override and every pick lock.
// POST /api/admin/events/{eventID}/unlock
func (h *AdminHandler) UnlockEventPicks(w http.ResponseWriter, r *http.Request) {
	h.toggleEventPicks(w, r, false)
}

func (h *AdminHandler) toggleEventPicks(w http.ResponseWriter, r *http.Request, lock bool) {
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var affected int64
	if lock {
		affected, err = h.pickService.LockPicksForEvent(r.Context(), eventID)
	} else {
		affected, err = h.pickService.UnlockPicksForEvent(r.Context(), eventID)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"event_id":       eventID,
		"locked":         lock,
		"picks_affected": affected,
	})
}

// SetBoutLock toggles the per-bout pick lock override.
// PUT /api/admin/bouts/{boutID}/lock
func (h *AdminHandler) SetBoutLock(w http.ResponseWriter, r *http.Request) {
	boutID, err := pathInt(r, "boutID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req struct {
		Locked bool `json:"locked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.eventService.SetBoutPicksLocked(r.Context(), boutID, req.Locked); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"bout_id": boutID, "locked": req.Locked})
}

// SetEventStatus transitions an event's lifecycle state.
// PUT /api/admin/events/{eventID}/status
func (h *AdminHandler) SetEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req struct {
		Status models.EventStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	switch req.Status {
	case models.EventStatusScheduled, models.EventStatusCompleted, models.EventStatusCancelled:
	default:
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status"})
		return
	}

	if err := h.eventService.SetEventStatus(r.Context(), eventID, req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"event_id": eventID, "status": req.Status})
}

// UpdateEventTiming reschedules an event.
// PUT /api/admin/events/{eventID}/timing
func (h *AdminHandler) UpdateEventTiming(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req struct {
		Date     time.Time `json:"date"`
		Timezone string    `json:"timezone,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date.IsZero() {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "date is required (RFC 3339)"})
		return
	}

	if err := h.eventService.UpdateEventTiming(r.Context(), eventID, req.Date, req.Timezone); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"event_id": eventID, "date": req.Date.UTC()})
}

// RecalculateStats rebuilds every user's aggregate counters from picks.
// POST /api/admin/recalculate-stats
func (h *AdminHandler) RecalculateStats(w http.ResponseWriter, r *http.Request) {
	count, err := h.resultService.RecalculateAllStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"users_recalculated": count})
}
