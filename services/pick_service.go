package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fight-picks-go/database"
	"fight-picks-go/logging"
	"fight-picks-go/models"
)

// PickService handles pick submission and the lock rules that gate it
type PickService struct {
	pickRepo  PickRepository
	eventRepo EventRepository
	boutRepo  BoutRepository
	logger    *logging.Logger
}

// NewPickService creates a new pick service
func NewPickService(pickRepo PickRepository, eventRepo EventRepository, boutRepo BoutRepository) *PickService {
	return &PickService{
		pickRepo:  pickRepo,
		eventRepo: eventRepo,
		boutRepo:  boutRepo,
		logger:    logging.WithPrefix("PickService"),
	}
}

// SubmitPick creates a pick, or overwrites the prediction of an existing
// unlocked one. Resubmission keeps the same identity and created_at; it is
// never a new entity.
func (s *PickService) SubmitPick(ctx context.Context, userID string, req *models.SubmitPickRequest) (*models.Pick, error) {
	event, err := s.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %d: %w", req.EventID, ErrEventNotFound)
	}

	bout, err := s.boutRepo.FindByID(ctx, req.BoutID)
	if err != nil {
		return nil, err
	}
	if bout == nil {
		return nil, fmt.Errorf("bout %d: %w", req.BoutID, ErrBoutNotFound)
	}

	if err := validatePrediction(req, bout); err != nil {
		return nil, err
	}

	existing, err := s.pickRepo.FindByUserAndBout(ctx, userID, req.BoutID)
	if err != nil {
		return nil, err
	}

	if locked, reason := pickLocked(event, bout, existing); locked {
		return nil, fmt.Errorf("%s: %w", reason, ErrPickLocked)
	}

	now := time.Now().UTC()

	if existing != nil {
		updated, err := s.pickRepo.UpdatePrediction(ctx, existing.ID, req.PickedCorner, req.PickedMethod, req.PickedRound, now)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			// The pick was locked between the check and the write.
			return nil, fmt.Errorf("pick %s: %w", existing.ID, ErrPickLocked)
		}
		return updated, nil
	}

	pick := &models.Pick{
		ID:           models.PickID(userID, req.BoutID),
		UserID:       userID,
		EventID:      req.EventID,
		BoutID:       req.BoutID,
		PickedCorner: req.PickedCorner,
		PickedMethod: req.PickedMethod,
		PickedRound:  req.PickedRound,
		CreatedAt:    now,
	}

	if err := s.pickRepo.Create(ctx, pick); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			// Lost a concurrent first-submission race; the winner's document
			// exists now, so retry as a plain overwrite.
			s.logger.Debugf("Create race for pick %s, retrying as update", pick.ID)
			updated, uerr := s.pickRepo.UpdatePrediction(ctx, pick.ID, req.PickedCorner, req.PickedMethod, req.PickedRound, now)
			if uerr != nil {
				return nil, uerr
			}
			if updated == nil {
				return nil, fmt.Errorf("pick %s: %w", pick.ID, ErrPickLocked)
			}
			return updated, nil
		}
		return nil, err
	}

	s.logger.Debugf("Created pick %s (%s by %s)", pick.ID, pick.PickedCorner, pick.PickedMethod)
	return pick, nil
}

// validatePrediction rejects malformed predictions before any lock check
func validatePrediction(req *models.SubmitPickRequest, bout *models.Bout) error {
	if bout.EventID != req.EventID {
		return fmt.Errorf("bout %d does not belong to event %d: %w", req.BoutID, req.EventID, ErrInvalidPick)
	}
	if !req.PickedCorner.IsValid() {
		return fmt.Errorf("unknown corner %q: %w", req.PickedCorner, ErrInvalidPick)
	}
	if !req.PickedMethod.IsValid() {
		return fmt.Errorf("unknown method %q: %w", req.PickedMethod, ErrInvalidPick)
	}
	if req.PickedMethod == models.MethodDecision && req.PickedRound != nil {
		return fmt.Errorf("round cannot be set for a decision pick: %w", ErrInvalidPick)
	}
	if req.PickedRound != nil && (*req.PickedRound < 1 || *req.PickedRound > 5) {
		return fmt.Errorf("round %d out of range: %w", *req.PickedRound, ErrInvalidPick)
	}
	return nil
}

// pickLocked evaluates the four independent lock sources; any one locks.
func pickLocked(event *models.Event, bout *models.Bout, existing *models.Pick) (bool, string) {
	if event.Status == models.EventStatusCompleted || event.Status == models.EventStatusCancelled {
		return true, fmt.Sprintf("event %d is %s", event.ID, event.Status)
	}
	if event.PicksLocked {
		return true, fmt.Sprintf("picks locked for event %d", event.ID)
	}
	if bout.PicksLocked {
		return true, fmt.Sprintf("picks locked for bout %d", bout.ID)
	}
	if existing != nil && existing.Locked {
		return true, fmt.Sprintf("pick %s is locked", existing.ID)
	}
	return false, ""
}

// GetUserPickForBout returns a user's pick for a bout
func (s *PickService) GetUserPickForBout(ctx context.Context, userID string, boutID int) (*models.Pick, error) {
	pick, err := s.pickRepo.FindByUserAndBout(ctx, userID, boutID)
	if err != nil {
		return nil, err
	}
	if pick == nil {
		return nil, fmt.Errorf("pick for bout %d: %w", boutID, ErrPickNotFound)
	}
	return pick, nil
}

// GetUserPicksForEvent returns all of a user's picks for an event
func (s *PickService) GetUserPicksForEvent(ctx context.Context, userID string, eventID int) ([]*models.Pick, error) {
	return s.pickRepo.FindByUserAndEvent(ctx, userID, eventID)
}

// GetAllUserPicks returns a user's picks across all events, newest first
func (s *PickService) GetAllUserPicks(ctx context.Context, userID string, limit int) ([]*models.Pick, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.pickRepo.FindByUser(ctx, userID, limit, 0)
}

// GetBoutDistribution returns the community pick split for a bout
func (s *PickService) GetBoutDistribution(ctx context.Context, boutID int) (*models.BoutPickDistribution, error) {
	bout, err := s.boutRepo.FindByID(ctx, boutID)
	if err != nil {
		return nil, err
	}
	if bout == nil {
		return nil, fmt.Errorf("bout %d: %w", boutID, ErrBoutNotFound)
	}
	return s.pickRepo.BoutDistribution(ctx, boutID)
}

// LockPicksForEvent bulk-sets the locked flag on an event's picks and
// raises the event-level override. Typically run at event start time.
// Once set, pick locks are only ever cleared by UnlockPicksForEvent.
func (s *PickService) LockPicksForEvent(ctx context.Context, eventID int) (int64, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, fmt.Errorf("event %d: %w", eventID, ErrEventNotFound)
	}

	if _, err := s.eventRepo.SetPicksLocked(ctx, eventID, true); err != nil {
		return 0, err
	}

	locked, err := s.pickRepo.LockForEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Locked %d picks for event %d", locked, eventID)
	return locked, nil
}

// UnlockPicksForEvent clears the event-level override and every pick lock
func (s *PickService) UnlockPicksForEvent(ctx context.Context, eventID int) (int64, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, fmt.Errorf("event %d: %w", eventID, ErrEventNotFound)
	}

	if _, err := s.eventRepo.SetPicksLocked(ctx, eventID, false); err != nil {
		return 0, err
	}

	unlocked, err := s.pickRepo.UnlockForEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Unlocked %d picks for event %d", unlocked, eventID)
	return unlocked, nil
}
