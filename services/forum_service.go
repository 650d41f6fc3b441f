package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("forum post not found")

type ForumService struct {
	DB     *gorm.DB
	Engine *GamificationEngine
}

func NewForumService(db *gorm.DB, engine *GamificationEngine) *ForumService {
	return &ForumService{DB: db, Engine: engine}
}

// CreatePost publishes a forum post and awards the forum XP.
func (s *ForumService) CreatePost(externalUserID, authorName, careerField, title, content string) (*models.ForumPost, *models.RewardResult, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, nil, errors.New("title and content are required")
	}
	if strings.TrimSpace(careerField) == "" {
		careerField = "general"
	}

	post := models.ForumPost{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		AuthorName:     authorName,
		CareerField:    strings.ToLower(careerField),
		Title:          title,
		Slug:           fmt.Sprintf("%s-%.8s", slug.Make(title), uuid.NewString()),
		Content:        content,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionForumPost,
		OccurredAt: time.Now().UTC(),
		Reason:     "Created forum post",
	})
	if err != nil {
		reward = nil
	}
	return &post, reward, nil
}

// ListPosts returns posts, optionally filtered by career field, newest first.
func (s *ForumService) ListPosts(careerField string, limit int) ([]models.ForumPost, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var posts []models.ForumPost
	q := s.DB.Order("created_at DESC").Limit(limit)
	if careerField != "" {
		q = q.Where("career_field = ?", strings.ToLower(careerField))
	}
	err := q.Find(&posts).Error
	return posts, err
}

func (s *ForumService) GetPost(idOrSlug string) (*models.ForumPost, error) {
	var post models.ForumPost
	err := s.DB.Where("id = ? OR slug = ?", idOrSlug, idOrSlug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
