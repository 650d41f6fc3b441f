package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrConnectionExists   = errors.New("connection already exists or is pending")
	ErrConnectionNotFound = errors.New("connection request not found")
	ErrSelfConnection     = errors.New("cannot connect to yourself")
)

// minMentorCompletions is how many completed activities make someone a
// plausible mentor.
const minMentorCompletions = 5

type SocialService struct {
	DB       *gorm.DB
	Engine   *GamificationEngine
	Notifier *NotificationService
}

func NewSocialService(db *gorm.DB, engine *GamificationEngine, notifier *NotificationService) *SocialService {
	return &SocialService{DB: db, Engine: engine, Notifier: notifier}
}

// SendRequest creates a pending connection. A pair of users can only have
// one connection row regardless of direction.
func (s *SocialService) SendRequest(fromUserID, toUserID, message string) (*models.Connection, *models.RewardResult, error) {
	if fromUserID == toUserID {
		return nil, nil, ErrSelfConnection
	}

	var existing int64
	s.DB.Model(&models.Connection{}).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			fromUserID, toUserID, toUserID, fromUserID).
		Count(&existing)
	if existing > 0 {
		return nil, nil, ErrConnectionExists
	}

	conn := models.Connection{
		ID:         uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Message:    message,
		Status:     models.ConnectionStatusPending,
	}
	if err := s.DB.Create(&conn).Error; err != nil {
		return nil, nil, err
	}

	_, _ = s.Notifier.Create(toUserID, models.NotificationConnectionRequest,
		"New Connection Request",
		"You have a new connection request",
		"/connections")

	reward, err := s.Engine.ApplyEvent(fromUserID, models.Event{
		Kind:       models.ActionConnectionRequest,
		OccurredAt: time.Now().UTC(),
		Reason:     "Sent connection request",
	})
	if err != nil {
		reward = nil
	}
	return &conn, reward, nil
}

// Accept marks the request accepted; only the recipient can accept. The
// accepter earns the connection-accepted XP, the requester gets notified.
func (s *SocialService) Accept(connectionID, userID string) (*models.Connection, *models.RewardResult, error) {
	var conn models.Connection
	err := s.DB.Where("id = ? AND to_user_id = ? AND status = ?",
		connectionID, userID, models.ConnectionStatusPending).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	conn.Status = models.ConnectionStatusAccepted
	conn.AcceptedAt = &now
	if err := s.DB.Save(&conn).Error; err != nil {
		return nil, nil, err
	}

	_, _ = s.Notifier.Create(conn.FromUserID, models.NotificationConnectionAccepted,
		"Connection Accepted",
		"Your connection request was accepted!",
		"/connections")

	reward, err := s.Engine.ApplyEvent(userID, models.Event{
		Kind:       models.ActionConnectionAccepted,
		OccurredAt: now,
		Reason:     "Accepted connection",
	})
	if err != nil {
		reward = nil
	}
	return &conn, reward, nil
}

// ConnectionWithUser pairs the connection with the other party's profile.
type ConnectionWithUser struct {
	Connection models.Connection `json:"connection"`
	User       models.CareerUser `json:"user"`
}

// Connections lists the user's accepted connections with profiles attached.
func (s *SocialService) Connections(userID string) ([]ConnectionWithUser, error) {
	var conns []models.Connection
	err := s.DB.Where("(from_user_id = ? OR to_user_id = ?) AND status = ?",
		userID, userID, models.ConnectionStatusAccepted).
		Order("accepted_at DESC").
		Find(&conns).Error
	if err != nil {
		return nil, err
	}

	out := make([]ConnectionWithUser, 0, len(conns))
	for _, conn := range conns {
		otherID := conn.ToUserID
		if otherID == userID {
			otherID = conn.FromUserID
		}
		var other models.CareerUser
		if err := s.DB.Where("external_user_id = ?", otherID).First(&other).Error; err != nil {
			continue
		}
		out = append(out, ConnectionWithUser{Connection: conn, User: other})
	}
	return out, nil
}

// PendingRequests lists requests waiting on the user.
func (s *SocialService) PendingRequests(userID string) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.DB.Where("to_user_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&conns).Error
	return conns, err
}

// FindMentors suggests experienced users in a matching career field: role
// overlap plus at least minMentorCompletions completed activities, ranked by
// completion count.
func (s *SocialService) FindMentors(userID, careerField string) ([]models.MentorMatch, error) {
	var me models.CareerUser
	if err := s.DB.Where("external_user_id = ?", userID).First(&me).Error; err != nil {
		return nil, err
	}

	target := strings.ToLower(me.TargetRole)
	if target == "" {
		target = strings.ToLower(careerField)
	}
	if target == "" {
		return []models.MentorMatch{}, nil
	}

	var candidates []models.CareerUser
	if err := s.DB.Where("external_user_id <> ?", userID).Find(&candidates).Error; err != nil {
		return nil, err
	}

	var mentors []models.MentorMatch
	for _, candidate := range candidates {
		role := strings.ToLower(candidate.TargetRole)
		if role == "" {
			role = strings.ToLower(candidate.CurrentRole)
		}
		if role == "" || !(strings.Contains(role, target) || strings.Contains(target, role)) {
			continue
		}

		var completed int64
		s.DB.Model(&models.Activity{}).
			Where("external_user_id = ? AND status = ?", candidate.ExternalUserID, models.ActivityStatusCompleted).
			Count(&completed)
		if completed <= minMentorCompletions {
			continue
		}

		mentors = append(mentors, models.MentorMatch{
			User:                candidate,
			MatchScore:          int(completed),
			CompletedActivities: int(completed),
		})
	}

	sort.Slice(mentors, func(i, j int) bool {
		return mentors[i].MatchScore > mentors[j].MatchScore
	})
	if len(mentors) > 10 {
		mentors = mentors[:10]
	}
	return mentors, nil
}
