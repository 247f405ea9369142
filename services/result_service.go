package services

import (
	"context"
	"fmt"

	"fight-picks-go/logging"
	"fight-picks-go/models"
)

// ResultSummary reports what a result application touched
type ResultSummary struct {
	BoutID            int  `json:"bout_id"`
	PicksProcessed    int  `json:"picks_processed"`
	PointsDistributed int  `json:"points_distributed"`
	UsersAffected     int  `json:"users_affected"`
	Reverted          bool `json:"reverted,omitempty"`
}

// ResultService applies and reverts official bout results, rescoring picks
// and refreshing the affected users' aggregate counters.
//
// Application is idempotent: every pick's score is recomputed from the
// stored result rather than incremented, and user aggregates are always a
// full recompute over the user's picks. Applying the same result twice
// converges to the same state.
type ResultService struct {
	pickRepo  PickRepository
	boutRepo  BoutRepository
	eventRepo EventRepository
	userRepo  UserRepository
	scoring   *ScoringService
	logger    *logging.Logger
}

// NewResultService creates a result service
func NewResultService(pickRepo PickRepository, boutRepo BoutRepository, eventRepo EventRepository, userRepo UserRepository, scoring *ScoringService) *ResultService {
	return &ResultService{
		pickRepo:  pickRepo,
		boutRepo:  boutRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		scoring:   scoring,
		logger:    logging.WithPrefix("ResultService"),
	}
}

// ApplyResult records an official result on a bout, scores every pick made
// on it, and recomputes aggregates for the affected users. A bout with no
// picks is still a successful application.
func (s *ResultService) ApplyResult(ctx context.Context, boutID int, result *models.BoutResult) (*ResultSummary, error) {
	bout, err := s.boutRepo.FindByID(ctx, boutID)
	if err != nil {
		return nil, err
	}
	if bout == nil {
		return nil, fmt.Errorf("bout %d: %w", boutID, ErrBoutNotFound)
	}

	if _, err := s.boutRepo.SetResult(ctx, boutID, result, models.BoutStatusCompleted); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.FindByBout(ctx, boutID)
	if err != nil {
		return nil, err
	}

	summary := &ResultSummary{BoutID: boutID}
	affected := make(map[string]struct{})

	for _, pick := range picks {
		isCorrect, points := s.scoring.ScorePick(pick, result)
		if err := s.pickRepo.UpdateScore(ctx, pick.ID, isCorrect, points); err != nil {
			return nil, fmt.Errorf("failed to score pick %s: %w", pick.ID, err)
		}
		summary.PicksProcessed++
		summary.PointsDistributed += points
		affected[pick.UserID] = struct{}{}
	}

	for userID := range affected {
		if err := s.RecomputeUserStats(ctx, userID); err != nil {
			return nil, err
		}
	}
	summary.UsersAffected = len(affected)

	s.logger.Infof("Applied result for bout %d: %d picks scored, %d points across %d users",
		boutID, summary.PicksProcessed, summary.PointsDistributed, summary.UsersAffected)
	return summary, nil
}

// RevertResult clears a bout's result, resets every pick on it to unscored,
// and recomputes aggregates for the affected users. Returns ErrNoResult if
// the bout has no recorded result to revert.
func (s *ResultService) RevertResult(ctx context.Context, boutID int) (*ResultSummary, error) {
	bout, err := s.boutRepo.FindByID(ctx, boutID)
	if err != nil {
		return nil, err
	}
	if bout == nil {
		return nil, fmt.Errorf("bout %d: %w", boutID, ErrBoutNotFound)
	}
	if bout.Result == nil {
		return nil, fmt.Errorf("bout %d: %w", boutID, ErrNoResult)
	}

	if _, err := s.boutRepo.SetResult(ctx, boutID, nil, models.BoutStatusScheduled); err != nil {
		return nil, err
	}

	reset, err := s.pickRepo.ResetScoresForBout(ctx, boutID)
	if err != nil {
		return nil, err
	}

	userIDs, err := s.pickRepo.DistinctUserIDsByBout(ctx, boutID)
	if err != nil {
		return nil, err
	}
	for _, userID := range userIDs {
		if err := s.RecomputeUserStats(ctx, userID); err != nil {
			return nil, err
		}
	}

	summary := &ResultSummary{
		BoutID:         boutID,
		PicksProcessed: int(reset),
		UsersAffected:  len(userIDs),
		Reverted:       true,
	}

	s.logger.Infof("Reverted result for bout %d: %d picks reset across %d users",
		boutID, summary.PicksProcessed, summary.UsersAffected)
	return summary, nil
}

// RecomputeUserStats rebuilds one user's denormalized counters from the
// full set of that user's picks
func (s *ResultService) RecomputeUserStats(ctx context.Context, userID string) error {
	picks, err := s.pickRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return err
	}

	stats := models.ComputeStats(picks)
	if err := s.userRepo.UpdateStats(ctx, userID, stats); err != nil {
		return fmt.Errorf("failed to recompute stats for user %s: %w", userID, err)
	}
	return nil
}

// RecalculateAllStats recomputes aggregates for every user who has ever
// submitted a pick. Admin repair tool for drift between picks and counters.
func (s *ResultService) RecalculateAllStats(ctx context.Context) (int, error) {
	userIDs, err := s.pickRepo.DistinctUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	for _, userID := range userIDs {
		if err := s.RecomputeUserStats(ctx, userID); err != nil {
			return 0, err
		}
	}

	s.logger.Infof("Recalculated stats for %d users", len(userIDs))
	return len(userIDs), nil
}
