package models

import "time"

// ConnectionStatus is the state of a connection request
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
)

// Connection links two users. A pair has at most one row regardless of
// direction; duplicate requests are rejected at the service level.
type Connection struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	FromUserID string `gorm:"index;not null" json:"from_user_id"`
	ToUserID   string `gorm:"index;not null" json:"to_user_id"`

	Message string           `json:"message,omitempty"`
	Status  ConnectionStatus `gorm:"index;default:'pending'" json:"status"`

	AcceptedAt *time.Time `json:"accepted_at,omitempty"`

	Timestamps
}

// MentorMatch is a scored mentor suggestion (not persisted).
type MentorMatch struct {
	User                CareerUser `json:"user"`
	MatchScore          int        `json:"match_score"`
	CompletedActivities int        `json:"completed_activities"`
}
