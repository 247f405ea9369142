package services

import (
	"context"
	"fmt"
	"sort"

	"fight-picks-go/logging"
	"fight-picks-go/models"
)

const rankScanLimit = 1000

// LeaderboardService builds ranked standings views.
//
// The unfiltered global board reads the users' materialized counters
// directly. Any filtered view (single event, calendar year) recomputes
// live from the picks themselves, so a filter never depends on the
// counters being scoped correctly.
type LeaderboardService struct {
	userRepo  UserRepository
	pickRepo  PickRepository
	eventRepo EventRepository
	logger    *logging.Logger
}

// NewLeaderboardService creates a leaderboard service
func NewLeaderboardService(userRepo UserRepository, pickRepo PickRepository, eventRepo EventRepository) *LeaderboardService {
	return &LeaderboardService{
		userRepo:  userRepo,
		pickRepo:  pickRepo,
		eventRepo: eventRepo,
		logger:    logging.WithPrefix("LeaderboardService"),
	}
}

// GetGlobalLeaderboard returns the all-time standings, or a single
// calendar year's standings when year is non-nil.
func (s *LeaderboardService) GetGlobalLeaderboard(ctx context.Context, limit int, year *int) ([]*models.LeaderboardEntry, error) {
	if year != nil {
		return s.yearLeaderboard(ctx, limit, *year)
	}

	users, err := s.userRepo.FindWithPicks(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, entryFromStats(user, user.UserStats, models.LeaderboardCategoryGlobal))
	}

	sortEntries(entries)
	return assignRanks(entries, limit), nil
}

// GetEventLeaderboard returns standings computed over a single event's picks
func (s *LeaderboardService) GetEventLeaderboard(ctx context.Context, eventID int, limit int) ([]*models.LeaderboardEntry, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %d: %w", eventID, ErrEventNotFound)
	}

	userIDs, err := s.pickRepo.DistinctUserIDsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.LeaderboardEntry, 0, len(userIDs))
	for _, userID := range userIDs {
		picks, err := s.pickRepo.FindByUserAndEvent(ctx, userID, eventID)
		if err != nil {
			return nil, err
		}
		entry, err := s.entryFromPicks(ctx, userID, picks, models.LeaderboardCategoryEvent)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			entries = append(entries, entry)
		}
	}

	sortEntries(entries)
	return assignRanks(entries, limit), nil
}

// yearLeaderboard recomputes standings over picks made on events dated
// within the given calendar year
func (s *LeaderboardService) yearLeaderboard(ctx context.Context, limit int, year int) ([]*models.LeaderboardEntry, error) {
	eventIDs, err := s.eventRepo.FindIDsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if len(eventIDs) == 0 {
		return []*models.LeaderboardEntry{}, nil
	}

	userIDs, err := s.pickRepo.DistinctUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.LeaderboardEntry, 0, len(userIDs))
	for _, userID := range userIDs {
		picks, err := s.pickRepo.FindByUserAndEvents(ctx, userID, eventIDs)
		if err != nil {
			return nil, err
		}
		if len(picks) == 0 {
			continue
		}
		entry, err := s.entryFromPicks(ctx, userID, picks, models.LeaderboardCategoryGlobal)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			entries = append(entries, entry)
		}
	}

	sortEntries(entries)
	return assignRanks(entries, limit), nil
}

// GetUserRank locates a user within the global standings.
// Returns nil when the user has no picks. When the user falls outside the
// ranked window, the entry is still returned with a nil rank.
func (s *LeaderboardService) GetUserRank(ctx context.Context, userID string) (*models.UserRank, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	if user.PicksTotal == 0 {
		return nil, nil
	}

	entries, err := s.GetGlobalLeaderboard(ctx, rankScanLimit, nil)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.UserID == userID {
			rank := entry.Rank
			return &models.UserRank{Rank: &rank, Entry: *entry}, nil
		}
	}

	// Outside the ranked window: return the entry without a position.
	return &models.UserRank{
		Entry: *entryFromStats(user, user.UserStats, models.LeaderboardCategoryGlobal),
	}, nil
}

// entryFromPicks builds an entry by recomputing stats from a pick slice
func (s *LeaderboardService) entryFromPicks(ctx context.Context, userID string, picks []*models.Pick, category string) (*models.LeaderboardEntry, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// A pick without a user is orphaned data; skip rather than fail the view.
		s.logger.Warnf("Skipping picks for unknown user %s", userID)
		return nil, nil
	}
	return entryFromStats(user, models.ComputeStats(picks), category), nil
}

func entryFromStats(user *models.User, stats models.UserStats, category string) *models.LeaderboardEntry {
	return &models.LeaderboardEntry{
		UserID:       user.ID,
		Username:     user.Name,
		AvatarURL:    user.ProfilePicture,
		TotalPoints:  stats.TotalPoints,
		Accuracy:     stats.Accuracy,
		PicksTotal:   stats.PicksTotal,
		PicksCorrect: stats.PicksCorrect,
		PerfectPicks: stats.PerfectPicks,
		Category:     category,
		Scope:        models.LeaderboardScopeAllTime,
	}
}

// sortEntries orders standings by total points, then accuracy, then fewest
// picks. The last key rewards efficiency when the first two tie.
func sortEntries(entries []*models.LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.Accuracy != b.Accuracy {
			return a.Accuracy > b.Accuracy
		}
		return a.PicksTotal < b.PicksTotal
	})
}

// assignRanks numbers the sorted entries from 1 and truncates to limit
func assignRanks(entries []*models.LeaderboardEntry, limit int) []*models.LeaderboardEntry {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i, entry := range entries {
		entry.Rank = i + 1
	}
	return entries
}
