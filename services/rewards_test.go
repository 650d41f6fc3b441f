package services

import (
	"testing"

	"career-counselor-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardForFlatAmounts(t *testing.T) {
	cases := []struct {
		kind models.ActionKind
		want int64
	}{
		{models.ActionAccountCreated, 50},
		{models.ActionDailyLogin, 10},
		{models.ActionRoadmapGenerated, 25},
		{models.ActionRoadmapSaved, 5},
		{models.ActionJobApplication, 15},
		{models.ActionSavedJob, 5},
		{models.ActionForumPost, 15},
		{models.ActionCompanyReview, 25},
		{models.ActionConnectionRequest, 10},
		{models.ActionConnectionAccepted, 20},
		{models.ActionReferral, 100},
		{models.ActionReferralBonus, 50},
		{models.ActionResumeCreated, 20},
		{models.ActionPersonalityTest, 30},
		{models.ActionLearningPathCreated, 20},
		{models.ActionMilestoneCompleted, 50},
		{models.ActionLearningPathCompleted, 0},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			got, err := RewardFor(models.Event{Kind: tc.kind})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRewardForQuizSteps(t *testing.T) {
	cases := []struct {
		score int
		want  int64
	}{
		{100, 100},
		{99, 50},
		{90, 50},
		{89, 10},
		{70, 10},
		{0, 10},
	}
	for _, tc := range cases {
		got, err := RewardFor(models.Event{Kind: models.ActionQuizCompleted, QuizScore: tc.score})
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "score %d", tc.score)
	}
}

func TestRewardForUnknownKind(t *testing.T) {
	_, err := RewardFor(models.Event{Kind: "watched_a_video"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Contains(t, err.Error(), "watched_a_video")
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{250, 3},
		{1000, 11},
		{-5, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, models.LevelForXP(tc.xp), "xp %d", tc.xp)
	}
}
