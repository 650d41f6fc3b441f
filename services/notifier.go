package services

import (
	"fmt"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) Create(externalUserID string, nType models.NotificationType, title, message, link string) (*models.Notification, error) {
	n := models.Notification{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Type:           nType,
		Title:          title,
		Message:        message,
		Link:           link,
	}
	if err := s.DB.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationService) List(externalUserID string, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	q := s.DB.Where("external_user_id = ?", externalUserID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	err := q.Order("created_at DESC").Limit(100).Find(&notifications).Error
	return notifications, err
}

// MarkRead flips one notification; scoped to the owner so users cannot touch
// each other's notifications.
func (s *NotificationService) MarkRead(notificationID, externalUserID string) (bool, error) {
	now := time.Now().UTC()
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND external_user_id = ? AND read = ?", notificationID, externalUserID, false).
		Updates(map[string]interface{}{"read": true, "read_at": now})
	return res.RowsAffected > 0, res.Error
}

func (s *NotificationService) MarkAllRead(externalUserID string) (int64, error) {
	now := time.Now().UTC()
	res := s.DB.Model(&models.Notification{}).
		Where("external_user_id = ? AND read = ?", externalUserID, false).
		Updates(map[string]interface{}{"read": true, "read_at": now})
	return res.RowsAffected, res.Error
}

// AnnounceReward turns an engine result into in-app notifications: one for a
// level-up, one per new badge. Engine and notifications stay decoupled — a
// failed notification never rolls back the reward.
func (s *NotificationService) AnnounceReward(externalUserID string, result *models.RewardResult) {
	if result == nil {
		return
	}
	if result.LeveledUp {
		_, _ = s.Create(externalUserID, models.NotificationAchievement,
			"Level Up! 🎉",
			fmt.Sprintf("You reached level %d! Keep up the great work!", result.NewLevel),
			"/dashboard")
	}
	for _, id := range result.NewBadges {
		info, ok := models.BadgeCatalog[id]
		if !ok {
			continue
		}
		_, _ = s.Create(externalUserID, models.NotificationAchievement,
			fmt.Sprintf("New Badge Earned! %s", info.Icon),
			fmt.Sprintf("You earned the %q badge!", info.Name),
			"/dashboard")
	}
}
