package models

// Roadmap is a generated step-by-step career plan for a target role.
// Steps are stored as a JSON array (AI output or static fallback).
type Roadmap struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	Goal    string `gorm:"not null" json:"goal"`
	Context string `gorm:"type:text" json:"context,omitempty"`
	Steps   string `gorm:"type:jsonb" json:"steps"`
	Source  string `gorm:"default:'fallback'" json:"source"` // "ai" or "fallback"

	// Shared controls whether the roadmap is visible through the share link.
	Shared bool `gorm:"default:false" json:"shared"`

	Timestamps
}

// SavedRoadmap bookmarks someone's roadmap for a user (one per user+roadmap)
type SavedRoadmap struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex:idx_saved_roadmap;not null" json:"external_user_id"`
	RoadmapID      string `gorm:"uniqueIndex:idx_saved_roadmap;not null" json:"roadmap_id"`

	Roadmap *Roadmap `json:"roadmap,omitempty" gorm:"foreignKey:RoadmapID"`

	Timestamps
}

// RoadmapStep is one entry of Roadmap.Steps once decoded.
type RoadmapStep struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"` // e.g. "2-4 weeks"
}
