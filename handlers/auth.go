package handlers

import (
	"encoding/json"
	"net/http"

	"fight-picks-go/middleware"
	"fight-picks-go/models"
	"fight-picks-go/services"
)

// AuthHandler serves login and identity endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleLogin exchanges a Google ID token for a session token.
// POST /api/auth/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id_token is required"})
		return
	}

	resp, err := h.authService.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		sharedLogger.Warnf("Google login failed: %v", err)
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication failed"})
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated user's profile and stats.
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	respondJSON(w, http.StatusOK, user.ToResponse())
}
