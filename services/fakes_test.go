package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fight-picks-go/database"
	"fight-picks-go/models"
)

// In-memory repository fakes. They mirror the MongoDB repositories'
// observable behavior: not-found reads return nil without error, inserts
// enforce uniqueness, and UpdatePrediction refuses locked picks.

type fakeEventRepo struct {
	events map[int]*models.Event
	slots  []*models.EventCardSlot
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[int]*models.Event)}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (r *fakeEventRepo) FindByID(_ context.Context, eventID int) (*models.Event, error) {
	event, ok := r.events[eventID]
	if !ok {
		return nil, nil
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) FindUpcoming(_ context.Context, limit int) ([]*models.Event, error) {
	var out []*models.Event
	for _, e := range r.events {
		if e.Status == models.EventStatusScheduled {
			clone := *e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEventRepo) FindRecentCompleted(_ context.Context, limit int) ([]*models.Event, error) {
	var out []*models.Event
	for _, e := range r.events {
		if e.Status == models.EventStatusCompleted {
			clone := *e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEventRepo) FindIDsByYear(_ context.Context, year int) ([]int, error) {
	var ids []int
	for _, e := range r.events {
		if e.Date.Year() == year {
			ids = append(ids, e.ID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *fakeEventRepo) FindCardStructure(_ context.Context, eventID int) ([]*models.EventCardSlot, error) {
	var out []*models.EventCardSlot
	for _, s := range r.slots {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderOverall < out[j].OrderOverall })
	return out, nil
}

func (r *fakeEventRepo) UpdateFields(_ context.Context, eventID int, fields map[string]interface{}) (bool, error) {
	event, ok := r.events[eventID]
	if !ok {
		return false, nil
	}
	if date, ok := fields["date"].(time.Time); ok {
		event.Date = date
	}
	if tz, ok := fields["timezone"].(string); ok {
		event.Timezone = tz
	}
	event.LastUpdated = time.Now().UTC()
	return true, nil
}

func (r *fakeEventRepo) SetStatus(_ context.Context, eventID int, status models.EventStatus) (bool, error) {
	event, ok := r.events[eventID]
	if !ok {
		return false, nil
	}
	event.Status = status
	return true, nil
}

func (r *fakeEventRepo) SetPicksLocked(_ context.Context, eventID int, locked bool) (bool, error) {
	event, ok := r.events[eventID]
	if !ok {
		return false, nil
	}
	event.PicksLocked = locked
	return true, nil
}

type fakeBoutRepo struct {
	bouts map[int]*models.Bout
}

func newFakeBoutRepo(bouts ...*models.Bout) *fakeBoutRepo {
	repo := &fakeBoutRepo{bouts: make(map[int]*models.Bout)}
	for _, b := range bouts {
		repo.bouts[b.ID] = b
	}
	return repo
}

func (r *fakeBoutRepo) FindByID(_ context.Context, boutID int) (*models.Bout, error) {
	bout, ok := r.bouts[boutID]
	if !ok {
		return nil, nil
	}
	clone := *bout
	return &clone, nil
}

func (r *fakeBoutRepo) FindByEvent(_ context.Context, eventID int) ([]*models.Bout, error) {
	var out []*models.Bout
	for _, b := range r.bouts {
		if b.EventID == eventID {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBoutRepo) SetResult(_ context.Context, boutID int, result *models.BoutResult, status models.BoutStatus) (bool, error) {
	bout, ok := r.bouts[boutID]
	if !ok {
		return false, nil
	}
	bout.Result = result
	bout.Status = status
	bout.LastUpdated = time.Now().UTC()
	return true, nil
}

func (r *fakeBoutRepo) SetPicksLocked(_ context.Context, boutID int, locked bool) (bool, error) {
	bout, ok := r.bouts[boutID]
	if !ok {
		return false, nil
	}
	bout.PicksLocked = locked
	return true, nil
}

type fakePickRepo struct {
	picks map[string]*models.Pick
}

func newFakePickRepo(picks ...*models.Pick) *fakePickRepo {
	repo := &fakePickRepo{picks: make(map[string]*models.Pick)}
	for _, p := range picks {
		repo.picks[p.ID] = p
	}
	return repo
}

func (r *fakePickRepo) Create(_ context.Context, pick *models.Pick) error {
	if _, exists := r.picks[pick.ID]; exists {
		return fmt.Errorf("pick %s: %w", pick.ID, database.ErrDuplicateKey)
	}
	clone := *pick
	r.picks[pick.ID] = &clone
	return nil
}

func (r *fakePickRepo) FindByUserAndBout(_ context.Context, userID string, boutID int) (*models.Pick, error) {
	pick, ok := r.picks[models.PickID(userID, boutID)]
	if !ok {
		return nil, nil
	}
	clone := *pick
	return &clone, nil
}

func (r *fakePickRepo) FindByUserAndEvent(_ context.Context, userID string, eventID int) ([]*models.Pick, error) {
	return r.filter(func(p *models.Pick) bool { return p.UserID == userID && p.EventID == eventID }), nil
}

func (r *fakePickRepo) FindByUser(_ context.Context, userID string, limit, skip int) ([]*models.Pick, error) {
	picks := r.filter(func(p *models.Pick) bool { return p.UserID == userID })
	if skip < len(picks) {
		picks = picks[skip:]
	} else {
		picks = nil
	}
	if limit > 0 && len(picks) > limit {
		picks = picks[:limit]
	}
	return picks, nil
}

func (r *fakePickRepo) FindAllByUser(_ context.Context, userID string) ([]*models.Pick, error) {
	return r.filter(func(p *models.Pick) bool { return p.UserID == userID }), nil
}

func (r *fakePickRepo) FindByUserAndEvents(_ context.Context, userID string, eventIDs []int) ([]*models.Pick, error) {
	wanted := make(map[int]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}
	return r.filter(func(p *models.Pick) bool { return p.UserID == userID && wanted[p.EventID] }), nil
}

func (r *fakePickRepo) FindByBout(_ context.Context, boutID int) ([]*models.Pick, error) {
	return r.filter(func(p *models.Pick) bool { return p.BoutID == boutID }), nil
}

func (r *fakePickRepo) UpdatePrediction(_ context.Context, pickID string, corner models.Corner, method models.VictoryMethod, round *int, updatedAt time.Time) (*models.Pick, error) {
	pick, ok := r.picks[pickID]
	if !ok || pick.Locked {
		return nil, nil
	}
	pick.PickedCorner = corner
	pick.PickedMethod = method
	pick.PickedRound = round
	pick.UpdatedAt = &updatedAt
	clone := *pick
	return &clone, nil
}

func (r *fakePickRepo) UpdateScore(_ context.Context, pickID string, isCorrect bool, points int) error {
	pick, ok := r.picks[pickID]
	if !ok {
		return fmt.Errorf("pick %s not found", pickID)
	}
	pick.IsCorrect = &isCorrect
	pick.PointsAwarded = points
	return nil
}

func (r *fakePickRepo) ResetScoresForBout(_ context.Context, boutID int) (int64, error) {
	var count int64
	for _, p := range r.picks {
		if p.BoutID == boutID {
			p.IsCorrect = nil
			p.PointsAwarded = 0
			count++
		}
	}
	return count, nil
}

func (r *fakePickRepo) LockForEvent(_ context.Context, eventID int) (int64, error) {
	return r.setLocked(eventID, true), nil
}

func (r *fakePickRepo) UnlockForEvent(_ context.Context, eventID int) (int64, error) {
	return r.setLocked(eventID, false), nil
}

func (r *fakePickRepo) setLocked(eventID int, locked bool) int64 {
	var count int64
	for _, p := range r.picks {
		if p.EventID == eventID && p.Locked != locked {
			p.Locked = locked
			count++
		}
	}
	return count
}

func (r *fakePickRepo) DistinctUserIDsByBout(_ context.Context, boutID int) ([]string, error) {
	return r.distinct(func(p *models.Pick) bool { return p.BoutID == boutID }), nil
}

func (r *fakePickRepo) DistinctUserIDsByEvent(_ context.Context, eventID int) ([]string, error) {
	return r.distinct(func(p *models.Pick) bool { return p.EventID == eventID }), nil
}

func (r *fakePickRepo) DistinctUserIDs(_ context.Context) ([]string, error) {
	return r.distinct(func(*models.Pick) bool { return true }), nil
}

func (r *fakePickRepo) BoutDistribution(_ context.Context, boutID int) (*models.BoutPickDistribution, error) {
	dist := &models.BoutPickDistribution{BoutID: boutID}
	for _, p := range r.picks {
		if p.BoutID != boutID {
			continue
		}
		dist.Total++
		switch p.PickedCorner {
		case models.CornerRed:
			dist.Red++
		case models.CornerBlue:
			dist.Blue++
		}
	}
	return dist, nil
}

func (r *fakePickRepo) filter(keep func(*models.Pick) bool) []*models.Pick {
	var out []*models.Pick
	for _, p := range r.picks {
		if keep(p) {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakePickRepo) distinct(keep func(*models.Pick) bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.picks {
		if keep(p) && !seen[p.UserID] {
			seen[p.UserID] = true
			out = append(out, p.UserID)
		}
	}
	sort.Strings(out)
	return out
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("user %s: %w", user.ID, database.ErrDuplicateKey)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, userID string) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID string) error {
	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	now := time.Now().UTC()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) UpdateStats(_ context.Context, userID string, stats models.UserStats) error {
	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	user.UserStats = stats
	return nil
}

func (r *fakeUserRepo) FindWithPicks(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.PicksTotal > 0 {
			clone := *u
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Shared test fixtures

func testEvent(id int, status models.EventStatus) *models.Event {
	return &models.Event{
		ID:        id,
		Promotion: "UFC",
		Name:      fmt.Sprintf("Test Event %d", id),
		Slug:      fmt.Sprintf("test-event-%d", id),
		Date:      time.Date(2026, 9, 12, 22, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

func testBout(id, eventID int) *models.Bout {
	return &models.Bout{
		ID:              id,
		EventID:         eventID,
		WeightClass:     "Lightweight",
		RoundsScheduled: 3,
		Status:          models.BoutStatusScheduled,
		Fighters: map[models.Corner]models.FighterSnapshot{
			models.CornerRed:  {FighterName: "Red Fighter"},
			models.CornerBlue: {FighterName: "Blue Fighter"},
		},
	}
}

func testUser(id string) *models.User {
	return &models.User{
		ID:       id,
		GoogleID: id,
		Email:    id + "@example.com",
		Name:     "User " + id,
		IsActive: true,
	}
}

func intPtr(v int) *int { return &v }

func cornerPtr(c models.Corner) *models.Corner { return &c }
