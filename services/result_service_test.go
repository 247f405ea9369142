package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fight-picks-go/models"
)

func newResultFixture(t *testing.T) (*ResultService, *PickService, *fakePickRepo, *fakeBoutRepo, *fakeUserRepo) {
	t.Helper()

	eventRepo := newFakeEventRepo(testEvent(1, models.EventStatusScheduled))
	boutRepo := newFakeBoutRepo(testBout(10, 1), testBout(11, 1))
	pickRepo := newFakePickRepo()
	userRepo := newFakeUserRepo(testUser("u1"), testUser("u2"), testUser("u3"))

	pickSvc := NewPickService(pickRepo, eventRepo, boutRepo)
	resultSvc := NewResultService(pickRepo, boutRepo, eventRepo, userRepo, NewScoringService())
	return resultSvc, pickSvc, pickRepo, boutRepo, userRepo
}

func redKORound2() *models.BoutResult {
	return &models.BoutResult{
		Winner: cornerPtr(models.CornerRed),
		Method: "KO/TKO",
		Round:  intPtr(2),
		Time:   "3:12",
	}
}

func TestApplyResultScoresAndAggregates(t *testing.T) {
	resultSvc, pickSvc, pickRepo, boutRepo, userRepo := newResultFixture(t)
	ctx := context.Background()

	// u1: perfect pick. u2: corner only. u3: wrong corner.
	_, err := pickSvc.SubmitPick(ctx, "u1", &models.SubmitPickRequest{
		EventID: 1, BoutID: 10, PickedCorner: models.CornerRed,
		PickedMethod: models.MethodKnockout, PickedRound: intPtr(2),
	})
	require.NoError(t, err)
	_, err = pickSvc.SubmitPick(ctx, "u2", &models.SubmitPickRequest{
		EventID: 1, BoutID: 10, PickedCorner: models.CornerRed,
		PickedMethod: models.MethodSubmission, PickedRound: intPtr(1),
	})
	require.NoError(t, err)
	_, err = pickSvc.SubmitPick(ctx, "u3", &models.SubmitPickRequest{
		EventID: 1, BoutID: 10, PickedCorner: models.CornerBlue,
		PickedMethod: models.MethodDecision,
	})
	require.NoError(t, err)

	summary, err := resultSvc.ApplyResult(ctx, 10, redKORound2())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.PicksProcessed)
	assert.Equal(t, 4, summary.PointsDistributed)
	assert.Equal(t, 3, summary.UsersAffected)

	bout, _ := boutRepo.FindByID(ctx, 10)
	require.NotNil(t, bout.Result)
	assert.Equal(t, models.BoutStatusCompleted, bout.Status)

	u1, _ := userRepo.FindByID(ctx, "u1")
	assert.Equal(t, 3, u1.TotalPoints)
	assert.Equal(t, 1, u1.PerfectPicks)
	assert.Equal(t, 1.0, u1.Accuracy)

	u3, _ := userRepo.FindByID(ctx, "u3")
	assert.Zero(t, u3.TotalPoints)
	assert.Zero(t, u3.Accuracy)
	assert.Equal(t, 1, u3.PicksTotal)

	p1, _ := pickRepo.FindByUserAndBout(ctx, "u1", 10)
	require.NotNil(t, p1.IsCorrect)
	assert.True(t, *p1.IsCorrect)
	assert.Equal(t, models.MaxPoints, p1.PointsAwarded)
}

func TestApplyResultIsIdempotent(t *testing.T) {
	resultSvc, pickSvc, _, _, userRepo := newResultFixture(t)
	ctx := context.Background()

	_, err := pickSvc.SubmitPick(ctx, "u1", &models.SubmitPickRequest{
		EventID: 1, BoutID: 10, PickedCorner: models.CornerRed,
		PickedMethod: models.MethodKnockout, PickedRound: intPtr(2),
	})
	require.NoError(t, err)

	first, err := resultSvc.ApplyResult(ctx, 10, redKORound2())
	require.NoError(t, err)
	second, err := resultSvc.ApplyResult(ctx, 10, redKORound2())
	require.NoError(t, err)

	assert.Equal(t, first.PointsDistributed, second.PointsDistributed)

	user, _ := userRepo.FindByID(ctx, "u1")
	assert.Equal(t, 3, user.TotalPoints)
	assert.Equal(t, 1, user.PicksTotal)
}

func TestApplyResultCorrection(t *testing.T) {
	resultSvc, pickSvc, _, _, userRepo := newResultFixture(t)
	ctx := context.Background()

	_, err := pickSvc.SubmitPick(ctx, "u1", &models.SubmitPickRequest{
		EventID: 1, BoutID: 10, PickedCorner: models.CornerRed,
		PickedMethod: models.MethodKnockout, PickedRound: intPtr(2),
	})
	require.NoError(t, err)

	_, err = resultSvc.ApplyResult(ctx, 10, redKORound2())
	require.NoError(t, err)

	// Corrected result: blue actually won. Scores converge to the new
	// result, no residue from the first application.
	corrected := &models.BoutResult{Winner: cornerPtr(models.CornerBlue), Method: "SUB", Round: intPtr(1)}
	_, err = resultSvc.ApplyResult(ctx, 10, corrected)
	require.NoError(t, err)

	user, _ := userRepo.FindByID(ctx, "u1")
	assert.Zero(t, user.TotalPoints)
	assert.Zero(t, user.PicksCorrect)
	assert.Equal(t, 1, user.PicksTotal)
}

func TestApplyResultNoPicksIsSuccess(t *testing.T) {
	resultSvc, _, _, boutRepo, _ := newResultFixture(t)
	ctx := context.Background()

	summary, err := resultSvc.ApplyResult(ctx, 10, redKORound2())
	require.NoError(t, err)

	assert.Zero(t, summary.PicksProcessed)
	assert.Zero(t, summary.UsersAffected)

	bout, _ := boutRepo.FindByID(ctx, 10)
	assert.NotNil(t, bout.Result)
}

func TestRevertResult(t *testing.T) {
	resultSvc, pickSvc, pickRepo, boutRepo, userRepo := newResultFixture(t)
	ctx := context.Background()

	_, err := pickSvc.SubmitPick(ctx, "u1", &models.SubmitPickRequest{
		EventID: 1, BoutID: 10, PickedCorner: models.CornerRed,
		PickedMethod: models.MethodKnockout, PickedRound: intPtr(2),
	})
	require.NoError(t, err)

	_, err = resultSvc.ApplyResult(ctx, 10, redKORound2())
	require.NoError(t, err)

	summary, err := resultSvc.RevertResult(ctx, 10)
	require.NoError(t, err)
	assert.True(t, summary.Reverted)
	assert.Equal(t, 1, summary.PicksProcessed)

	bout, _ := boutRepo.FindByID(ctx, 10)
	assert.Nil(t, bout.Result)
	assert.Equal(t, models.BoutStatusScheduled, bout.Status)

	pick, _ := pickRepo.FindByUserAndBout(ctx, "u1", 10)
	assert.Nil(t, pick.IsCorrect)
	assert.Zero(t, pick.PointsAwarded)

	user, _ := userRepo.FindByID(ctx, "u1")
	assert.Zero(t, user.TotalPoints)
	assert.Equal(t, 1, user.PicksTotal)
}

func TestRevertResultWithoutResult(t *testing.T) {
	resultSvc, _, _, _, _ := newResultFixture(t)

	_, err := resultSvc.RevertResult(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = resultSvc.RevertResult(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBoutNotFound)
}

func TestApplyThenRevertRestoresAggregatesAcrossBouts(t *testing.T) {
	resultSvc, pickSvc, _, _, userRepo := newResultFixture(t)
	ctx := context.Background()

	for _, boutID := range []int{10, 11} {
		_, err := pickSvc.SubmitPick(ctx, "u1", &models.SubmitPickRequest{
			EventID: 1, BoutID: boutID, PickedCorner: models.CornerRed,
			PickedMethod: models.MethodKnockout, PickedRound: intPtr(2),
		})
		require.NoError(t, err)
	}

	_, err := resultSvc.ApplyResult(ctx, 10, redKORound2())
	require.NoError(t, err)
	_, err = resultSvc.ApplyResult(ctx, 11, redKORound2())
	require.NoError(t, err)

	before, _ := userRepo.FindByID(ctx, "u1")
	assert.Equal(t, 6, before.TotalPoints)

	// Reverting one bout must leave the other bout's points intact.
	_, err = resultSvc.RevertResult(ctx, 11)
	require.NoError(t, err)

	after, _ := userRepo.FindByID(ctx, "u1")
	assert.Equal(t, 3, after.TotalPoints)
	assert.Equal(t, 2, after.PicksTotal)
	assert.Equal(t, 0.5, after.Accuracy)
}

func TestRecalculateAllStats(t *testing.T) {
	resultSvc, pickSvc, _, _, userRepo := newResultFixture(t)
	ctx := context.Background()

	_, err := pickSvc.SubmitPick(ctx, "u1", &models.SubmitPickRequest{
		EventID: 1, BoutID: 10, PickedCorner: models.CornerRed,
		PickedMethod: models.MethodKnockout, PickedRound: intPtr(2),
	})
	require.NoError(t, err)
	_, err = resultSvc.ApplyResult(ctx, 10, redKORound2())
	require.NoError(t, err)

	// Corrupt the materialized counters, then repair.
	require.NoError(t, userRepo.UpdateStats(ctx, "u1", models.UserStats{TotalPoints: 999}))

	count, err := resultSvc.RecalculateAllStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	user, _ := userRepo.FindByID(ctx, "u1")
	assert.Equal(t, 3, user.TotalPoints)
	assert.Equal(t, 1, user.PicksTotal)
}
