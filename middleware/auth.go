package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"fight-picks-go/logging"
	"fight-picks-go/models"
)

type contextKey string

const userContextKey contextKey = "user"

// TokenValidator resolves a bearer token to a user
type TokenValidator interface {
	GetUserFromToken(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware guards routes behind bearer-token authentication
type AuthMiddleware struct {
	validator TokenValidator
	logger    *logging.Logger
}

// NewAuthMiddleware creates auth middleware backed by the given validator
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logging.WithPrefix("Auth"),
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved user in the request context
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := m.validator.GetUserFromToken(r.Context(), token)
		if err != nil {
			m.logger.Debugf("Token rejected: %v", err)
			writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects authenticated users without the admin flag.
// Must run inside RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdmin {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the authenticated user, or nil
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
