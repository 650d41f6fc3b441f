package models

import "time"

// Milestone is one step of a learning path, stored inside the JSON column.
type Milestone struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// LearningPath is a structured study plan with ordered milestones.
// Progress is a derived percentage, recomputed on every milestone completion.
type LearningPath struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	CareerField      string `gorm:"index;not null" json:"career_field"`
	Milestones       string `gorm:"type:jsonb;not null" json:"milestones"`
	Progress         int    `gorm:"default:0" json:"progress"` // percent
	CurrentMilestone int    `gorm:"default:0" json:"current_milestone"`

	Timestamps
}
