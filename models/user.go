package models

import "time"

// UserStats are the denormalized aggregate counters maintained by the
// result workflow. They are a materialized view over the user's picks:
// always re-derivable from the picks collection, never the source of truth.
type UserStats struct {
	TotalPoints  int     `bson:"total_points" json:"total_points"`
	PicksTotal   int     `bson:"picks_total" json:"picks_total"`
	PicksCorrect int     `bson:"picks_correct" json:"picks_correct"`
	PerfectPicks int     `bson:"perfect_picks" json:"perfect_picks"`
	Accuracy     float64 `bson:"accuracy" json:"accuracy"`
}

// ComputeStats derives aggregate counters from a user's full pick set.
// This is the single recomputation rule used by both the result workflow
// and filtered leaderboards; it must stay a full recompute, not a delta.
func ComputeStats(picks []*Pick) UserStats {
	var stats UserStats
	for _, p := range picks {
		stats.PicksTotal++
		stats.TotalPoints += p.PointsAwarded
		if p.IsCorrect != nil && *p.IsCorrect {
			stats.PicksCorrect++
		}
		if p.IsPerfect() {
			stats.PerfectPicks++
		}
	}
	if stats.PicksTotal > 0 {
		stats.Accuracy = float64(stats.PicksCorrect) / float64(stats.PicksTotal)
	}
	return stats
}

// User represents an authenticated user.
// Identity comes from the upstream provider: the document ID is the
// provider subject, and no credential is stored locally.
type User struct {
	ID       string `bson:"_id" json:"id"`
	GoogleID string `bson:"google_id" json:"-"`

	Email          string `bson:"email" json:"email"`
	Name           string `bson:"name" json:"name"`
	ProfilePicture string `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"-"`

	IsActive bool `bson:"is_active" json:"-"`
	IsAdmin  bool `bson:"is_admin" json:"is_admin"`

	UserStats `bson:",inline"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	IsAdmin        bool      `json:"is_admin"`
	UserStats
}

// ToResponse strips internal fields for API output
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		IsAdmin:        u.IsAdmin,
		UserStats:      u.UserStats,
	}
}

// GoogleLoginRequest carries the provider ID token from the client
type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
