package services

import (
	"context"
	"time"

	"fight-picks-go/models"
)

// Repository interfaces consumed by the services. The database package
// provides the MongoDB implementations; tests provide in-memory fakes.

// EventRepository defines the event catalog operations the services need
type EventRepository interface {
	FindByID(ctx context.Context, eventID int) (*models.Event, error)
	FindUpcoming(ctx context.Context, limit int) ([]*models.Event, error)
	FindRecentCompleted(ctx context.Context, limit int) ([]*models.Event, error)
	FindIDsByYear(ctx context.Context, year int) ([]int, error)
	FindCardStructure(ctx context.Context, eventID int) ([]*models.EventCardSlot, error)
	UpdateFields(ctx context.Context, eventID int, fields map[string]interface{}) (bool, error)
	SetStatus(ctx context.Context, eventID int, status models.EventStatus) (bool, error)
	SetPicksLocked(ctx context.Context, eventID int, locked bool) (bool, error)
}

// BoutRepository defines the bout operations the services need
type BoutRepository interface {
	FindByID(ctx context.Context, boutID int) (*models.Bout, error)
	FindByEvent(ctx context.Context, eventID int) ([]*models.Bout, error)
	SetResult(ctx context.Context, boutID int, result *models.BoutResult, status models.BoutStatus) (bool, error)
	SetPicksLocked(ctx context.Context, boutID int, locked bool) (bool, error)
}

// PickRepository defines the pick store operations the services need
type PickRepository interface {
	Create(ctx context.Context, pick *models.Pick) error
	FindByUserAndBout(ctx context.Context, userID string, boutID int) (*models.Pick, error)
	FindByUserAndEvent(ctx context.Context, userID string, eventID int) ([]*models.Pick, error)
	FindByUser(ctx context.Context, userID string, limit, skip int) ([]*models.Pick, error)
	FindAllByUser(ctx context.Context, userID string) ([]*models.Pick, error)
	FindByUserAndEvents(ctx context.Context, userID string, eventIDs []int) ([]*models.Pick, error)
	FindByBout(ctx context.Context, boutID int) ([]*models.Pick, error)
	UpdatePrediction(ctx context.Context, pickID string, corner models.Corner, method models.VictoryMethod, round *int, updatedAt time.Time) (*models.Pick, error)
	UpdateScore(ctx context.Context, pickID string, isCorrect bool, points int) error
	ResetScoresForBout(ctx context.Context, boutID int) (int64, error)
	LockForEvent(ctx context.Context, eventID int) (int64, error)
	UnlockForEvent(ctx context.Context, eventID int) (int64, error)
	DistinctUserIDsByBout(ctx context.Context, boutID int) ([]string, error)
	DistinctUserIDsByEvent(ctx context.Context, eventID int) ([]string, error)
	DistinctUserIDs(ctx context.Context) ([]string, error)
	BoutDistribution(ctx context.Context, boutID int) (*models.BoutPickDistribution, error)
}

// UserRepository defines the user store operations the services need
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	UpdateStats(ctx context.Context, userID string, stats models.UserStats) error
	FindWithPicks(ctx context.Context) ([]*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
}
