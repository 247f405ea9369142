package handlers

import (
	"net/http"

	"fight-picks-go/services"
)

// EventHandler serves the event and bout catalog
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates an event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents returns upcoming or recent events depending on ?scope=.
// GET /api/events?scope=upcoming|recent&limit=N
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	var err error
	var events interface{}
	if r.URL.Query().Get("scope") == "recent" {
		events, err = h.eventService.GetRecentEvents(r.Context(), limit)
	} else {
		events, err = h.eventService.GetUpcomingEvents(r.Context(), limit)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// GetEvent returns a single event.
// GET /api/events/{eventID}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	event, err := h.eventService.GetEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// GetEventBouts returns the bouts on an event's card.
// GET /api/events/{eventID}/bouts
func (h *EventHandler) GetEventBouts(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	bouts, err := h.eventService.GetEventBouts(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bouts)
}

// GetEventCard returns the event's running order.
// GET /api/events/{eventID}/card
func (h *EventHandler) GetEventCard(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	card, err := h.eventService.GetCardStructure(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// GetBout returns a single bout.
// GET /api/bouts/{boutID}
func (h *EventHandler) GetBout(w http.ResponseWriter, r *http.Request) {
	boutID, err := pathInt(r, "boutID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	bout, err := h.eventService.GetBout(r.Context(), boutID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bout)
}
