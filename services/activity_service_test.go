package services

import (
	"testing"

	"career-counselor-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityFixture(t *testing.T) (*ActivityService, *GamificationEngine) {
	t.Helper()
	db := newTestDB(t)
	engine := NewGamificationEngine(db)
	return NewActivityService(db, engine), engine
}

func TestCreateForRoleSeedsOnce(t *testing.T) {
	svc, _ := newActivityFixture(t)

	first, err := svc.CreateForRole("user-1", "Senior Software Engineer")
	require.NoError(t, err)
	assert.Len(t, first, 3)
	for _, a := range first {
		assert.Equal(t, "software engineer", a.Role)
		assert.Equal(t, models.ActivityStatusPending, a.Status)
	}

	again, err := svc.CreateForRole("user-1", "software engineer")
	require.NoError(t, err)
	assert.Len(t, again, 3, "reseeding must not duplicate activities")
}

func TestCreateForRoleUnknownRoleFallsBack(t *testing.T) {
	svc, _ := newActivityFixture(t)

	activities, err := svc.CreateForRole("user-1", "astronaut")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "default", activities[0].Role)
}

func TestQuizForActivityStripsAnswers(t *testing.T) {
	svc, _ := newActivityFixture(t)
	activities, err := svc.CreateForRole("user-1", "teacher")
	require.NoError(t, err)

	_, quiz, err := svc.QuizForActivity(activities[0].ID, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, quiz.Questions)
	for _, q := range quiz.Questions {
		assert.Zero(t, q.Answer)
	}
}

func TestSubmitQuizPerfectScore(t *testing.T) {
	svc, engine := newActivityFixture(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	activities, err := svc.CreateForRole("user-1", "software engineer")
	require.NoError(t, err)
	activity := activities[0]

	quiz := QuizFor(activity.Role, activity.Level, activity.QuizVariant)
	answers := make(map[string]int, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers[q.ID] = q.Answer
	}

	result, reward, err := svc.SubmitQuiz(activity.ID, "user-1", answers)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Completed)
	assert.Equal(t, int64(100), reward.XPAwarded)
	assert.Contains(t, reward.NewBadges, models.BadgePerfectScore)

	reloaded, err := svc.Get(activity.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusCompleted, reloaded.Status)
	require.NotNil(t, reloaded.LastScore)
	assert.Equal(t, 100, *reloaded.LastScore)
}

func TestSubmitQuizFailingScore(t *testing.T) {
	svc, engine := newActivityFixture(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	activities, err := svc.CreateForRole("user-1", "teacher")
	require.NoError(t, err)
	activity := activities[0]

	quiz := QuizFor(activity.Role, activity.Level, activity.QuizVariant)
	answers := make(map[string]int, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers[q.ID] = q.Answer + 1 // always wrong
	}

	result, reward, err := svc.SubmitQuiz(activity.ID, "user-1", answers)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Completed)
	assert.Equal(t, int64(10), reward.XPAwarded)
	assert.Empty(t, reward.NewBadges)

	reloaded, err := svc.Get(activity.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusPending, reloaded.Status)
}

func TestSubmitQuizPassingButNotExcellent(t *testing.T) {
	svc, engine := newActivityFixture(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	// Programming Basics has 4 questions; 3 correct = 75%, over the passing
	// bar but under the excellence tier.
	activities, err := svc.CreateForRole("user-1", "software engineer")
	require.NoError(t, err)
	activity := activities[0]

	quiz := QuizFor(activity.Role, activity.Level, activity.QuizVariant)
	require.Len(t, quiz.Questions, 4)
	answers := make(map[string]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		if i < 3 {
			answers[q.ID] = q.Answer
		} else {
			answers[q.ID] = q.Answer + 1
		}
	}

	result, reward, err := svc.SubmitQuiz(activity.ID, "user-1", answers)
	require.NoError(t, err)

	assert.Equal(t, 75, result.Score)
	assert.True(t, result.Completed)
	assert.Equal(t, int64(10), reward.XPAwarded)
	assert.Empty(t, reward.NewBadges)
}

func TestGetRejectsOtherUsers(t *testing.T) {
	svc, _ := newActivityFixture(t)
	activities, err := svc.CreateForRole("user-1", "teacher")
	require.NoError(t, err)

	_, err = svc.Get(activities[0].ID, "user-2")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}
