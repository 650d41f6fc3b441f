package models

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// CareerUser is a local snapshot of user data needed for career features.
// Identity itself (passwords, sessions) lives in the upstream profile service;
// this row is created on first request and refreshed by the profile sync worker.
type CareerUser struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // the profile service's UUID
	Email          string `json:"email,omitempty"`
	FullName       string `gorm:"index" json:"full_name"`

	// Career profile fields, editable through the profile endpoints.
	CurrentRole string  `json:"current_role,omitempty"`
	TargetRole  string  `gorm:"index" json:"target_role,omitempty"`
	CareerField string  `gorm:"index" json:"career_field,omitempty"`
	Skills      string  `gorm:"type:text" json:"skills,omitempty"` // comma-separated
	Education   string  `json:"education,omitempty"`
	Bio         *string `json:"bio,omitempty"`

	// PublicID enables the shareable public profile page; empty until generated.
	PublicID string `gorm:"index" json:"public_id,omitempty"`

	// Portfolio is free-form JSON (projects, links) shown on the public page.
	Portfolio string `gorm:"type:jsonb" json:"portfolio,omitempty"`

	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`

	LastSeen *time.Time `json:"last_seen,omitempty"`

	Timestamps
}
