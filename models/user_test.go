package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoredPick(correct bool, points int) *Pick {
	return &Pick{IsCorrect: &correct, PointsAwarded: points}
}

func TestComputeStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		stats := ComputeStats(nil)
		assert.Zero(t, stats.PicksTotal)
		assert.Zero(t, stats.Accuracy)
	})

	t.Run("mixed scored and pending", func(t *testing.T) {
		picks := []*Pick{
			scoredPick(true, 3),
			scoredPick(true, 1),
			scoredPick(false, 0),
			{}, // not yet scored
		}

		stats := ComputeStats(picks)
		assert.Equal(t, 4, stats.PicksTotal)
		assert.Equal(t, 4, stats.TotalPoints)
		assert.Equal(t, 2, stats.PicksCorrect)
		assert.Equal(t, 1, stats.PerfectPicks)
		assert.Equal(t, 0.5, stats.Accuracy)
	})

	t.Run("unscored picks count toward the denominator", func(t *testing.T) {
		stats := ComputeStats([]*Pick{scoredPick(true, 3), {}})
		assert.Equal(t, 2, stats.PicksTotal)
		assert.Equal(t, 0.5, stats.Accuracy)
	})
}

func TestEventPicksClosed(t *testing.T) {
	assert.False(t, (&Event{Status: EventStatusScheduled}).PicksClosed())
	assert.True(t, (&Event{Status: EventStatusScheduled, PicksLocked: true}).PicksClosed())
	assert.True(t, (&Event{Status: EventStatusCompleted}).PicksClosed())
	assert.True(t, (&Event{Status: EventStatusCancelled}).PicksClosed())
}

func TestPickID(t *testing.T) {
	assert.Equal(t, "user-1:42", PickID("user-1", 42))
}
