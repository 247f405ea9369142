package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fight-picks-go/logging"
	"fight-picks-go/services"
)

var sharedLogger = logging.WithPrefix("Handlers")

// respondJSON writes a JSON body with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			sharedLogger.Errorf("Failed to encode response: %v", err)
		}
	}
}

// respondError maps domain failures onto HTTP statuses. Unknown errors are
// logged server-side and surfaced as an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrBoutNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPickNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrPickLocked):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrInvalidPick):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrNoResult):
		status = http.StatusConflict
		message = err.Error()
	default:
		sharedLogger.Errorf("Unhandled error: %v", err)
	}

	respondJSON(w, status, map[string]string{"error": message})
}

// pathInt extracts a numeric path variable
func pathInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return value, nil
}

// queryInt reads an optional numeric query parameter, falling back to def
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
