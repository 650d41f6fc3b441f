package services

import (
	"career-counselor-service/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	DB     *gorm.DB
	Engine *GamificationEngine
}

func NewDashboardService(db *gorm.DB, engine *GamificationEngine) *DashboardService {
	return &DashboardService{DB: db, Engine: engine}
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	ExternalUserID string `json:"external_user_id"`
	Display        string `json:"display"`
	XP             int64  `json:"xp"`
	Level          int    `json:"level"`
	LoginStreak    int    `json:"login_streak"`
	BadgeCount     int64  `json:"badge_count"`
}

// Leaderboard ranks users by XP.
func (s *DashboardService) Leaderboard(topN int) ([]LeaderboardEntry, error) {
	if topN < 1 || topN > 100 {
		topN = 10
	}

	var states []models.UserGameState
	if err := s.DB.Order("xp DESC").Limit(topN).Find(&states).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(states))
	for i, state := range states {
		display := state.ExternalUserID
		var user models.CareerUser
		if err := s.DB.Where("external_user_id = ?", state.ExternalUserID).First(&user).Error; err == nil {
			if user.FullName != "" {
				display = user.FullName
			} else if user.Email != "" {
				display = user.Email
			}
		}

		var badgeCount int64
		s.DB.Model(&models.UserBadge{}).
			Where("external_user_id = ?", state.ExternalUserID).
			Count(&badgeCount)

		entries = append(entries, LeaderboardEntry{
			Rank:           i + 1,
			ExternalUserID: state.ExternalUserID,
			Display:        display,
			XP:             state.XP,
			Level:          state.Level,
			LoginStreak:    state.LoginStreak,
			BadgeCount:     badgeCount,
		})
	}
	return entries, nil
}

// DashboardData aggregates everything the dashboard page shows.
func (s *DashboardService) DashboardData(externalUserID string) (map[string]interface{}, error) {
	var totalActivities, completedActivities, applications, roadmaps, savedJobs, forumPosts int64

	s.DB.Model(&models.Activity{}).Where("external_user_id = ?", externalUserID).Count(&totalActivities)
	s.DB.Model(&models.Activity{}).
		Where("external_user_id = ? AND status = ?", externalUserID, models.ActivityStatusCompleted).
		Count(&completedActivities)
	s.DB.Model(&models.JobApplication{}).Where("external_user_id = ?", externalUserID).Count(&applications)
	s.DB.Model(&models.Roadmap{}).Where("external_user_id = ?", externalUserID).Count(&roadmaps)
	s.DB.Model(&models.SavedJob{}).Where("external_user_id = ?", externalUserID).Count(&savedJobs)
	s.DB.Model(&models.ForumPost{}).Where("external_user_id = ?", externalUserID).Count(&forumPosts)

	data := map[string]interface{}{
		"total_activities":     totalActivities,
		"completed_activities": completedActivities,
		"applications":         applications,
		"roadmaps":             roadmaps,
		"saved_jobs":           savedJobs,
		"forum_posts":          forumPosts,
	}

	if state, err := s.Engine.GetState(externalUserID); err == nil {
		data["gamification"] = state
	}
	return data, nil
}

// ProgressReport is the export-progress payload (JSON; rendering to a
// document is the client's job).
func (s *DashboardService) ProgressReport(externalUserID string) (map[string]interface{}, error) {
	data, err := s.DashboardData(externalUserID)
	if err != nil {
		return nil, err
	}

	var user models.CareerUser
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&user).Error; err == nil {
		data["profile"] = user
	}

	if state, err := s.Engine.GetState(externalUserID); err == nil {
		data["xp"] = state.XP
		data["level"] = state.Level
		data["streak"] = state.LoginStreak
		data["badges"] = state.Badges
	}
	return data, nil
}
