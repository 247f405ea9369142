package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fight-picks-go/logging"
	"fight-picks-go/models"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleTokenInfo is the subset of Google's tokeninfo response we verify
type GoogleTokenInfo struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Audience string `json:"aud"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Expires  string `json:"exp"`
}

// JWTClaims are the claims carried by a first-party session token
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// AuthService verifies Google ID tokens, provisions users on first login,
// and issues the first-party session tokens the API consumes afterwards.
// No password credential exists; Google is the only identity source.
type AuthService struct {
	userRepo       UserRepository
	googleClientID string
	jwtSecret      string
	tokenExpiry    time.Duration
	httpClient     *http.Client
	tokenInfoURL   string
	logger         *logging.Logger
}

// NewAuthService creates an auth service
func NewAuthService(userRepo UserRepository, googleClientID, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		googleClientID: googleClientID,
		jwtSecret:      jwtSecret,
		tokenExpiry:    tokenExpiry,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		tokenInfoURL:   googleTokenInfoURL,
		logger:         logging.WithPrefix("AuthService"),
	}
}

// VerifyGoogleToken validates a Google ID token against the tokeninfo
// endpoint, checking audience and expiry
func (s *AuthService) VerifyGoogleToken(ctx context.Context, idToken string) (*GoogleTokenInfo, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", s.tokenInfoURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid google token: tokeninfo returned %d", resp.StatusCode)
	}

	var info GoogleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if info.Audience != s.googleClientID {
		return nil, fmt.Errorf("google token audience mismatch")
	}

	exp, err := strconv.ParseInt(info.Expires, 10, 64)
	if err != nil || time.Now().Unix() >= exp {
		return nil, fmt.Errorf("google token expired")
	}

	return &info, nil
}

// LoginWithGoogle verifies the ID token, upserts the user, and returns the
// user with a fresh session token. The Google subject is the user's
// permanent ID, so a changed email never forks the account.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	info, err := s.VerifyGoogleToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, info.Subject)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			ID:             info.Subject,
			GoogleID:       info.Subject,
			Email:          info.Email,
			Name:           info.Name,
			ProfilePicture: info.Picture,
			CreatedAt:      time.Now().UTC(),
			IsActive:       true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to provision user: %w", err)
		}
		s.logger.Infof("Provisioned new user %s (%s)", user.ID, user.Email)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warnf("Could not update last login for %s: %v", user.ID, err)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

// GenerateToken issues a signed session token for the user
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// GetUserFromToken resolves a session token to its user
func (s *AuthService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", claims.UserID, ErrUserNotFound)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user %s is deactivated", user.ID)
	}
	return user, nil
}
