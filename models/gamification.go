package models

import (
	"time"

	"gorm.io/gorm"
)

// DateLayout is the calendar-date format used for streak bookkeeping.
// Streaks compare dates only, never times.
const DateLayout = "2006-01-02"

// UserGameState tracks gamified engagement for each user (one row per user).
// Mutated exclusively by services.GamificationEngine — feature services emit
// events instead of touching this table.
type UserGameState struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	// XP is cumulative and never decreases.
	XP int64 `json:"xp" gorm:"default:0"`

	// Level is derived from XP (see LevelForXP) and deliberately not a column:
	// there is no way for it to drift out of sync with XP.
	Level int `json:"level" gorm:"-"`

	// Streak bookkeeping. LastLoginDate is a calendar date (DateLayout), nil
	// before the first login.
	LoginStreak   int     `json:"login_streak" gorm:"default:0"`
	LastLoginDate *string `json:"last_login_date,omitempty"`

	ReferralCount int `json:"referral_count" gorm:"default:0"`

	Badges []UserBadge `json:"badges,omitempty" gorm:"foreignKey:ExternalUserID;references:ExternalUserID"`

	Timestamps
}

// LevelForXP computes the level tier for a given XP total: 100 XP per level,
// starting at level 1.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	return int(xp/100) + 1
}

// AfterFind recomputes the derived level on every read.
func (g *UserGameState) AfterFind(tx *gorm.DB) error {
	g.Level = LevelForXP(g.XP)
	return nil
}

// HasBadge reports whether the badge was already awarded.
func (g *UserGameState) HasBadge(id BadgeID) bool {
	for _, b := range g.Badges {
		if b.BadgeID == id {
			return true
		}
	}
	return false
}

// BadgeID identifies a badge in the static catalog.
type BadgeID string

const (
	BadgeWelcome        BadgeID = "WELCOME"
	BadgePerfectScore   BadgeID = "PERFECT_SCORE"
	BadgeExcellent      BadgeID = "EXCELLENT"
	BadgeStreak7        BadgeID = "STREAK_7"
	BadgeStreak30       BadgeID = "STREAK_30"
	BadgeStreak100      BadgeID = "STREAK_100"
	BadgeSuperConnector BadgeID = "SUPER_CONNECTOR"
	BadgePathMaster     BadgeID = "PATH_MASTER"
)

// BadgeInfo is static display metadata for a badge.
type BadgeInfo struct {
	ID          BadgeID `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// BadgeCatalog holds display metadata for every badge the evaluator can award.
var BadgeCatalog = map[BadgeID]BadgeInfo{
	BadgeWelcome:        {BadgeWelcome, "Welcome!", "👋", "Created your account"},
	BadgePerfectScore:   {BadgePerfectScore, "Perfect Score", "💯", "Scored 100% on a quiz"},
	BadgeExcellent:      {BadgeExcellent, "Excellent", "⭐", "Scored 90% or above on a quiz"},
	BadgeStreak7:        {BadgeStreak7, "7 Day Streak", "🔥", "Logged in for 7 consecutive days"},
	BadgeStreak30:       {BadgeStreak30, "30 Day Streak", "🔥", "Logged in for 30 consecutive days"},
	BadgeStreak100:      {BadgeStreak100, "100 Day Streak", "🔥", "Logged in for 100 consecutive days"},
	BadgeSuperConnector: {BadgeSuperConnector, "Super Connector", "🤝", "Referred 5+ friends"},
	BadgePathMaster:     {BadgePathMaster, "Path Master", "🏆", "Completed a learning path"},
}

// UserBadge is an awarded badge instance. A (user, badge) pair is awarded at
// most once; the unique index backs the idempotency guarantee.
type UserBadge struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string    `gorm:"uniqueIndex:idx_user_badge;not null" json:"external_user_id"`
	BadgeID        BadgeID   `gorm:"uniqueIndex:idx_user_badge;not null" json:"badge_id"`
	AwardedAt      time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}
