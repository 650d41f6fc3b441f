package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// EnsureUser creates the local mirror row for a user if missing (idempotent).
// Email/name come from the gateway headers or the sync worker.
func (s *UserService) EnsureUser(externalUserID, email, fullName string) (*models.CareerUser, error) {
	var user models.CareerUser
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.CareerUser{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Email:          email,
			FullName:       fullName,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Get(externalUserID string) (*models.CareerUser, error) {
	var user models.CareerUser
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FullName    string  `json:"full_name"`
	CurrentRole string  `json:"current_role"`
	TargetRole  string  `json:"target_role"`
	CareerField string  `json:"career_field"`
	Skills      string  `json:"skills"`
	Education   string  `json:"education"`
	Bio         *string `json:"bio"`
}

func (s *UserService) SaveProfile(externalUserID string, upd ProfileUpdate) (*models.CareerUser, error) {
	user, err := s.Get(externalUserID)
	if err != nil {
		return nil, err
	}

	if upd.FullName != "" {
		user.FullName = strings.TrimSpace(upd.FullName)
	}
	user.CurrentRole = upd.CurrentRole
	user.TargetRole = upd.TargetRole
	user.CareerField = upd.CareerField
	user.Skills = upd.Skills
	user.Education = upd.Education
	if upd.Bio != nil {
		user.Bio = upd.Bio
	}

	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) TouchLastSeen(externalUserID string) {
	now := time.Now().UTC()
	s.DB.Model(&models.CareerUser{}).
		Where("external_user_id = ?", externalUserID).
		Update("last_seen", now)
}

// GeneratePublicID creates (or returns) the shareable public-profile id.
func (s *UserService) GeneratePublicID(externalUserID string) (string, error) {
	user, err := s.Get(externalUserID)
	if err != nil {
		return "", err
	}
	if user.PublicID != "" {
		return user.PublicID, nil
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	user.PublicID = hex.EncodeToString(buf)
	if err := s.DB.Save(user).Error; err != nil {
		return "", err
	}
	return user.PublicID, nil
}

func (s *UserService) GetByPublicID(publicID string) (*models.CareerUser, error) {
	var user models.CareerUser
	err := s.DB.Where("public_id = ? AND public_id <> ''", publicID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdatePortfolio(externalUserID, portfolioJSON string) (*models.CareerUser, error) {
	user, err := s.Get(externalUserID)
	if err != nil {
		return nil, err
	}
	user.Portfolio = portfolioJSON
	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
