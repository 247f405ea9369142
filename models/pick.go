package models

import (
	"fmt"
	"time"
)

// VictoryMethod is the canonical set of finish methods a user can pick
type VictoryMethod string

const (
	MethodDecision   VictoryMethod = "DEC"
	MethodKnockout   VictoryMethod = "KO/TKO"
	MethodSubmission VictoryMethod = "SUB"
)

// IsValid returns true for the three pickable methods
func (m VictoryMethod) IsValid() bool {
	return m == MethodDecision || m == MethodKnockout || m == MethodSubmission
}

// MaxPoints is the highest score a single pick can earn
// (corner + method + exact round).
const MaxPoints = 3

// Pick represents a user's prediction for a bout.
// There is at most one live pick per (user, bout) pair; the composite
// document ID makes that a storage-level invariant.
type Pick struct {
	ID string `bson:"_id" json:"id"` // user_id:bout_id

	UserID  string `bson:"user_id" json:"user_id"`
	EventID int    `bson:"event_id" json:"event_id"` // denormalized from the bout
	BoutID  int    `bson:"bout_id" json:"bout_id"`

	PickedCorner Corner        `bson:"picked_corner" json:"picked_corner"`
	PickedMethod VictoryMethod `bson:"picked_method" json:"picked_method"`
	PickedRound  *int          `bson:"picked_round,omitempty" json:"picked_round,omitempty"` // 1-5, never set for DEC

	IsCorrect     *bool `bson:"is_correct" json:"is_correct"` // nil until scored
	PointsAwarded int   `bson:"points_awarded" json:"points_awarded"`

	Locked bool `bson:"locked" json:"locked"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// PickID builds the composite document ID for a (user, bout) pair
func PickID(userID string, boutID int) string {
	return fmt.Sprintf("%s:%d", userID, boutID)
}

// IsScored returns true once a result has been applied to this pick
func (p *Pick) IsScored() bool {
	return p.IsCorrect != nil
}

// IsPerfect returns true if the pick earned the maximum score
func (p *Pick) IsPerfect() bool {
	return p.PointsAwarded == MaxPoints
}

// SubmitPickRequest is the payload for creating or updating a pick
type SubmitPickRequest struct {
	EventID      int           `json:"event_id"`
	BoutID       int           `json:"bout_id"`
	PickedCorner Corner        `json:"picked_corner"`
	PickedMethod VictoryMethod `json:"picked_method"`
	PickedRound  *int          `json:"picked_round,omitempty"`
}

// BoutPickDistribution is the community pick split for a bout
type BoutPickDistribution struct {
	BoutID int `json:"bout_id"`
	Red    int `json:"red"`
	Blue   int `json:"blue"`
	Total  int `json:"total"`
}
