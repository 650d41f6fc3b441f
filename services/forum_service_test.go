package services

import (
	"testing"

	"career-counselor-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForumFixture(t *testing.T) (*ForumService, *GamificationEngine) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.ForumPost{}))
	engine := NewGamificationEngine(db)
	return NewForumService(db, engine), engine
}

func TestCreatePostAwardsForumXP(t *testing.T) {
	svc, engine := newForumFixture(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	post, reward, err := svc.CreatePost("user-1", "Ada", "Software Engineering", "First post", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "software engineering", post.CareerField)
	assert.NotEmpty(t, post.Slug)
	require.NotNil(t, reward)
	assert.Equal(t, int64(15), reward.XPAwarded)
}

func TestGetPostByIDOrSlug(t *testing.T) {
	svc, engine := newForumFixture(t)
	_, err := engine.EnsureGameState("user-1")
	require.NoError(t, err)

	post, _, err := svc.CreatePost("user-1", "Ada", "design", "Portfolio feedback", "Thoughts?")
	require.NoError(t, err)

	byID, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, byID.ID)

	bySlug, err := svc.GetPost(post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)
}

func TestGetPostNotFound(t *testing.T) {
	svc, _ := newForumFixture(t)
	_, err := svc.GetPost("no-such-post")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
