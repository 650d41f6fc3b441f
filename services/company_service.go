package services

import (
	"errors"
	"strings"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type CompanyService struct {
	DB     *gorm.DB
	Engine *GamificationEngine
}

func NewCompanyService(db *gorm.DB, engine *GamificationEngine) *CompanyService {
	return &CompanyService{DB: db, Engine: engine}
}

// ReviewInput carries user-submitted review fields.
type ReviewInput struct {
	CompanyName string `json:"company_name"`
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	Pros        string `json:"pros"`
	Cons        string `json:"cons"`
	RoleAtTime  string `json:"role_at_time"`
}

// AddReview stores a review and awards the review XP.
func (s *CompanyService) AddReview(externalUserID string, input ReviewInput) (*models.CompanyReview, *models.RewardResult, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, nil, errors.New("company name is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, nil, ErrInvalidRating
	}

	review := models.CompanyReview{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		CompanyName:    strings.TrimSpace(input.CompanyName),
		Rating:         input.Rating,
		Title:          input.Title,
		Pros:           input.Pros,
		Cons:           input.Cons,
		RoleAtTime:     input.RoleAtTime,
	}
	if err := s.DB.Create(&review).Error; err != nil {
		return nil, nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionCompanyReview,
		OccurredAt: time.Now().UTC(),
		Reason:     "Added company review",
	})
	if err != nil {
		reward = nil
	}
	return &review, reward, nil
}

func (s *CompanyService) Reviews(companyName string) ([]models.CompanyReview, error) {
	var reviews []models.CompanyReview
	err := s.DB.Where("LOWER(company_name) = ?", strings.ToLower(companyName)).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Insights aggregates all reviews for one company.
func (s *CompanyService) Insights(companyName string) (*models.CompanyInsights, error) {
	reviews, err := s.Reviews(companyName)
	if err != nil {
		return nil, err
	}

	insights := models.CompanyInsights{
		CompanyName: companyName,
		ReviewCount: int64(len(reviews)),
		Reviews:     reviews,
	}
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		insights.AverageRating = float64(total) / float64(len(reviews))
	}
	return &insights, nil
}
