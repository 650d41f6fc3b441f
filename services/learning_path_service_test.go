package services

import (
	"testing"

	"career-counselor-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPathFixture(t *testing.T) (*LearningPathService, *GamificationEngine) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.LearningPath{}))
	engine := NewGamificationEngine(db)
	return NewLearningPathService(db, engine), engine
}

func TestCreateRequiresMilestones(t *testing.T) {
	svc, _ := newPathFixture(t)
	_, _, err := svc.Create("user-1", "software engineering", nil)
	assert.ErrorIs(t, err, ErrNoMilestones)
}

func TestCreateResetsCompletionFlags(t *testing.T) {
	svc, engine := newPathFixture(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	path, reward, err := svc.Create("user-1", "data", []models.Milestone{
		{Title: "Learn SQL", Completed: true},
		{Title: "Build a dashboard"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, path.Progress)
	require.NotNil(t, reward)
	assert.Equal(t, int64(20), reward.XPAwarded)
}

func TestCompleteMilestoneFlow(t *testing.T) {
	svc, engine := newPathFixture(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	path, _, err := svc.Create("user-1", "software engineering", []models.Milestone{
		{Title: "Learn Go"},
		{Title: "Ship a service"},
	})
	require.NoError(t, err)

	updated, reward, err := svc.CompleteMilestone(path.ID, "user-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Progress)
	require.NotNil(t, reward)
	assert.Equal(t, int64(50), reward.XPAwarded)
	assert.NotContains(t, reward.NewBadges, models.BadgePathMaster)

	// Re-completing the same milestone changes nothing.
	again, reward2, err := svc.CompleteMilestone(path.ID, "user-1", 0)
	require.NoError(t, err)
	assert.Nil(t, reward2)
	assert.Equal(t, 50, again.Progress)

	// The last milestone closes out the path and triggers PathMaster.
	final, reward3, err := svc.CompleteMilestone(path.ID, "user-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 100, final.Progress)
	require.NotNil(t, reward3)
	assert.Equal(t, int64(50), reward3.XPAwarded, "path completion itself pays no extra XP")
	assert.Contains(t, reward3.NewBadges, models.BadgePathMaster)
}

func TestCompleteMilestoneBounds(t *testing.T) {
	svc, engine := newPathFixture(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	path, _, err := svc.Create("user-1", "design", []models.Milestone{{Title: "Portfolio"}})
	require.NoError(t, err)

	_, _, err = svc.CompleteMilestone(path.ID, "user-1", 5)
	assert.ErrorIs(t, err, ErrBadMilestone)

	_, _, err = svc.CompleteMilestone("nope", "user-1", 0)
	assert.ErrorIs(t, err, ErrPathNotFound)
}
