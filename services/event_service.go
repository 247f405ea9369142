package services

import (
	"context"
	"fmt"
	"time"

	"fight-picks-go/logging"
	"fight-picks-go/models"
)

// EventService serves the event and bout catalog. The catalog itself is
// written by the ingestion process; mutations here are limited to the
// admin-controlled lifecycle fields.
type EventService struct {
	eventRepo EventRepository
	boutRepo  BoutRepository
	logger    *logging.Logger
}

// NewEventService creates an event service
func NewEventService(eventRepo EventRepository, boutRepo BoutRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		boutRepo:  boutRepo,
		logger:    logging.WithPrefix("EventService"),
	}
}

// GetEvent retrieves a single event
func (s *EventService) GetEvent(ctx context.Context, eventID int) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %d: %w", eventID, ErrEventNotFound)
	}
	return event, nil
}

// GetUpcomingEvents lists scheduled events from today forward, soonest first
func (s *EventService) GetUpcomingEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.eventRepo.FindUpcoming(ctx, limit)
}

// GetRecentEvents lists completed events, most recent first
func (s *EventService) GetRecentEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.eventRepo.FindRecentCompleted(ctx, limit)
}

// GetEventBouts lists all bouts on an event's card
func (s *EventService) GetEventBouts(ctx context.Context, eventID int) ([]*models.Bout, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %d: %w", eventID, ErrEventNotFound)
	}
	return s.boutRepo.FindByEvent(ctx, eventID)
}

// GetBout retrieves a single bout
func (s *EventService) GetBout(ctx context.Context, boutID int) (*models.Bout, error) {
	bout, err := s.boutRepo.FindByID(ctx, boutID)
	if err != nil {
		return nil, err
	}
	if bout == nil {
		return nil, fmt.Errorf("bout %d: %w", boutID, ErrBoutNotFound)
	}
	return bout, nil
}

// GetCardStructure returns the event's running order (main card, prelims,
// early prelims) sorted by overall position
func (s *EventService) GetCardStructure(ctx context.Context, eventID int) ([]*models.EventCardSlot, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %d: %w", eventID, ErrEventNotFound)
	}
	return s.eventRepo.FindCardStructure(ctx, eventID)
}

// SetEventStatus transitions an event's lifecycle state
func (s *EventService) SetEventStatus(ctx context.Context, eventID int, status models.EventStatus) error {
	matched, err := s.eventRepo.SetStatus(ctx, eventID, status)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("event %d: %w", eventID, ErrEventNotFound)
	}
	s.logger.Infof("Event %d status set to %s", eventID, status)
	return nil
}

// SetBoutPicksLocked toggles the per-bout admin lock override
func (s *EventService) SetBoutPicksLocked(ctx context.Context, boutID int, locked bool) error {
	matched, err := s.boutRepo.SetPicksLocked(ctx, boutID, locked)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("bout %d: %w", boutID, ErrBoutNotFound)
	}
	s.logger.Infof("Bout %d picks_locked set to %t", boutID, locked)
	return nil
}

// UpdateEventTiming changes an event's start date and timezone.
// Used when a card is rescheduled after ingestion.
func (s *EventService) UpdateEventTiming(ctx context.Context, eventID int, date time.Time, timezone string) error {
	fields := map[string]interface{}{"date": date.UTC()}
	if timezone != "" {
		fields["timezone"] = timezone
	}

	matched, err := s.eventRepo.UpdateFields(ctx, eventID, fields)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("event %d: %w", eventID, ErrEventNotFound)
	}
	s.logger.Infof("Event %d rescheduled to %s", eventID, date.UTC().Format(time.RFC3339))
	return nil
}
