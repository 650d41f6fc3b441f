package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"career-counselor-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnsureGameStateIdempotent(t *testing.T) {
	engine := newTestEngine(t)

	first, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)
	second, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(0), second.XP)
	assert.Equal(t, 1, second.Level)
}

func TestApplyEventUnknownUser(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.ApplyEvent("ghost", models.Event{Kind: models.ActionDailyLogin})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestApplyEventSignup(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	result, err := engine.ApplyEvent("user-1", models.Event{Kind: models.ActionAccountCreated})
	require.NoError(t, err)

	assert.Equal(t, int64(50), result.XPAwarded)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, []models.BadgeID{models.BadgeWelcome}, result.NewBadges)

	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), state.XP)
	assert.Equal(t, 1, state.Level)
	assert.True(t, state.HasBadge(models.BadgeWelcome))
}

func TestApplyEventLevelUp(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("referrer")
	require.NoError(t, err)

	result, err := engine.ApplyEvent("referrer", models.Event{Kind: models.ActionReferral})
	require.NoError(t, err)

	assert.Equal(t, int64(100), result.XPAwarded)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)

	state, err := engine.GetState("referrer")
	require.NoError(t, err)
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, 1, state.ReferralCount)
}

func TestApplyEventUnknownKindIsAtomic(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	_, err = engine.ApplyEvent("user-1", models.Event{Kind: "not_a_thing"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), state.XP)
	assert.Equal(t, 0, state.LoginStreak)
	assert.Empty(t, state.Badges)
}

func TestStreakSameDayNoOp(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	first, err := engine.ApplyEvent("user-1", models.Event{Kind: models.ActionDailyLogin, OccurredAt: day})
	require.NoError(t, err)
	assert.Equal(t, int64(10), first.XPAwarded)

	// Refreshing the page all day long pays nothing more.
	for i := 1; i <= 3; i++ {
		repeat, err := engine.ApplyEvent("user-1", models.Event{
			Kind:       models.ActionDailyLogin,
			OccurredAt: day.Add(time.Duration(i) * 4 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), repeat.XPAwarded)
	}

	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, state.LoginStreak)
	assert.Equal(t, int64(10), state.XP)
}

func TestStreakConsecutiveDaysIncrement(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err = engine.ApplyEvent("user-1", models.Event{
			Kind:       models.ActionDailyLogin,
			OccurredAt: base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, state.LoginStreak)
}

func TestStreakGapResets(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err = engine.ApplyEvent("user-1", models.Event{Kind: models.ActionDailyLogin, OccurredAt: base})
	require.NoError(t, err)
	_, err = engine.ApplyEvent("user-1", models.Event{Kind: models.ActionDailyLogin, OccurredAt: base.AddDate(0, 0, 1)})
	require.NoError(t, err)
	_, err = engine.ApplyEvent("user-1", models.Event{Kind: models.ActionDailyLogin, OccurredAt: base.AddDate(0, 0, 5)})
	require.NoError(t, err)

	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, state.LoginStreak)
}

func TestStreak7BadgeAwardedOnce(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var seventh *models.RewardResult
	for i := 0; i < 8; i++ {
		result, err := engine.ApplyEvent("user-1", models.Event{
			Kind:       models.ActionDailyLogin,
			OccurredAt: base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
		if i == 6 {
			seventh = result
		}
		if i == 7 {
			assert.Empty(t, result.NewBadges, "day 8 must not re-award the streak badge")
		}
	}

	require.NotNil(t, seventh)
	assert.Equal(t, []models.BadgeID{models.BadgeStreak7}, seventh.NewBadges)

	var count int64
	engine.DB.Model(&models.UserBadge{}).
		Where("external_user_id = ? AND badge_id = ?", "user-1", models.BadgeStreak7).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBadgesAreXPNeutral(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	_, err = engine.ApplyEvent("user-1", models.Event{Kind: models.ActionAccountCreated})
	require.NoError(t, err)
	result, err := engine.ApplyEvent("user-1", models.Event{Kind: models.ActionQuizCompleted, QuizScore: 100})
	require.NoError(t, err)

	assert.Equal(t, []models.BadgeID{models.BadgePerfectScore}, result.NewBadges)

	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	// 50 signup + 100 perfect quiz, nothing extra for the two badges.
	assert.Equal(t, int64(150), state.XP)
}

func TestSuperConnectorOnFifthReferral(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("referrer")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		result, err := engine.ApplyEvent("referrer", models.Event{Kind: models.ActionReferral})
		require.NoError(t, err)
		assert.NotContains(t, result.NewBadges, models.BadgeSuperConnector)
	}

	fifth, err := engine.ApplyEvent("referrer", models.Event{Kind: models.ActionReferral})
	require.NoError(t, err)
	assert.Contains(t, fifth.NewBadges, models.BadgeSuperConnector)

	state, err := engine.GetState("referrer")
	require.NoError(t, err)
	assert.Equal(t, 5, state.ReferralCount)
	assert.Equal(t, int64(500), state.XP)
}

func TestStoreFailureSurfacesRetryableError(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	require.NoError(t, engine.DB.Migrator().DropTable(&models.UserBadge{}))

	_, err = engine.ApplyEvent("user-1", models.Event{Kind: models.ActionAccountCreated})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	require.NoError(t, engine.DB.AutoMigrate(&models.UserBadge{}))
	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), state.XP)
	assert.Empty(t, state.Badges)
}

func TestPersistFailureRollsBackState(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	// Fail the badge insert, which runs after the XP save inside the same
	// transaction: the whole apply must roll back.
	require.NoError(t, engine.DB.Callback().Create().Before("gorm:create").
		Register("fail_badge_insert", func(tx *gorm.DB) {
			if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "user_badges" {
				_ = tx.AddError(errors.New("disk I/O error"))
			}
		}))
	t.Cleanup(func() {
		_ = engine.DB.Callback().Create().Remove("fail_badge_insert")
	})

	_, err = engine.ApplyEvent("user-1", models.Event{Kind: models.ActionAccountCreated})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), state.XP, "the XP save in the same transaction must roll back")
	assert.Empty(t, state.Badges)
}

func TestConcurrentEventsBothCount(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.ApplyEvent("user-1", models.Event{Kind: models.ActionConnectionRequest})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	state, err := engine.GetState("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), state.XP)
}
