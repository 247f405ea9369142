package services

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"fight-picks-go/logging"
	"fight-picks-go/models"
)

// UserSeeder creates demo users for development environments.
// Never wired in production.
type UserSeeder struct {
	userRepo UserRepository
	logger   *logging.Logger
}

// NewUserSeeder creates a user seeder
func NewUserSeeder(userRepo UserRepository) *UserSeeder {
	return &UserSeeder{
		userRepo: userRepo,
		logger:   logging.WithPrefix("UserSeeder"),
	}
}

// SeedDemoUsers inserts count fake users with stable IDs. Existing users
// are left untouched, so reseeding is safe.
func (s *UserSeeder) SeedDemoUsers(ctx context.Context, count int) (int, error) {
	created := 0
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("demo-%03d", i+1)

		existing, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		user := &models.User{
			ID:             id,
			GoogleID:       id,
			Email:          fmt.Sprintf("demo%03d@%s", i+1, gofakeit.DomainName()),
			Name:           gofakeit.Name(),
			ProfilePicture: gofakeit.ImageURL(128, 128),
			CreatedAt:      time.Now().UTC(),
			IsActive:       true,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return created, fmt.Errorf("failed to seed user %s: %w", id, err)
		}
		created++
	}

	s.logger.Infof("Seeded %d demo users", created)
	return created, nil
}
