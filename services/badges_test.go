package services

import (
	"testing"

	"career-counselor-service/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateBadgesWelcomeOnSignup(t *testing.T) {
	state := &models.UserGameState{}
	got := EvaluateBadges(state, models.Event{Kind: models.ActionAccountCreated})
	assert.Equal(t, []models.BadgeID{models.BadgeWelcome}, got)
}

func TestEvaluateBadgesQuizScores(t *testing.T) {
	state := &models.UserGameState{}

	perfect := EvaluateBadges(state, models.Event{Kind: models.ActionQuizCompleted, QuizScore: 100})
	assert.Equal(t, []models.BadgeID{models.BadgePerfectScore}, perfect)

	excellent := EvaluateBadges(state, models.Event{Kind: models.ActionQuizCompleted, QuizScore: 92})
	assert.Equal(t, []models.BadgeID{models.BadgeExcellent}, excellent)

	ordinary := EvaluateBadges(state, models.Event{Kind: models.ActionQuizCompleted, QuizScore: 85})
	assert.Empty(t, ordinary)
}

func TestEvaluateBadgesStreakExactMatch(t *testing.T) {
	state := &models.UserGameState{LoginStreak: 7}
	got := EvaluateBadges(state, models.Event{Kind: models.ActionDailyLogin})
	assert.Equal(t, []models.BadgeID{models.BadgeStreak7}, got)

	// A streak past the threshold does not retrigger the badge.
	state.LoginStreak = 8
	assert.Empty(t, EvaluateBadges(state, models.Event{Kind: models.ActionDailyLogin}))

	state.LoginStreak = 30
	assert.Equal(t, []models.BadgeID{models.BadgeStreak30},
		EvaluateBadges(state, models.Event{Kind: models.ActionDailyLogin}))
}

func TestEvaluateBadgesSuperConnector(t *testing.T) {
	state := &models.UserGameState{ReferralCount: 4}
	assert.Empty(t, EvaluateBadges(state, models.Event{Kind: models.ActionReferral}))

	state.ReferralCount = 5
	assert.Equal(t, []models.BadgeID{models.BadgeSuperConnector},
		EvaluateBadges(state, models.Event{Kind: models.ActionReferral}))
}

func TestEvaluateBadgesSkipsHeld(t *testing.T) {
	state := &models.UserGameState{
		Badges: []models.UserBadge{{BadgeID: models.BadgeWelcome}},
	}
	assert.Empty(t, EvaluateBadges(state, models.Event{Kind: models.ActionAccountCreated}))
}

func TestEvaluateBadgesRuleOrder(t *testing.T) {
	// A single event can qualify several badges at once; they come back in
	// declaration order.
	state := &models.UserGameState{LoginStreak: 7, ReferralCount: 5}
	got := EvaluateBadges(state, models.Event{Kind: models.ActionDailyLogin})
	assert.Equal(t, []models.BadgeID{models.BadgeStreak7, models.BadgeSuperConnector}, got)
}

func TestEvaluateBadgesPathMaster(t *testing.T) {
	state := &models.UserGameState{}
	got := EvaluateBadges(state, models.Event{Kind: models.ActionLearningPathCompleted})
	assert.Equal(t, []models.BadgeID{models.BadgePathMaster}, got)
}
