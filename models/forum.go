package models

// ForumPost is a community discussion post, grouped by career field
type ForumPost struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`
	AuthorName     string `json:"author_name"`

	CareerField string `gorm:"index;not null" json:"career_field"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Content     string `gorm:"type:text;not null" json:"content"`

	Timestamps
}
