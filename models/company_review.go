package models

// CompanyReview is a user-submitted review of an employer
type CompanyReview struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	CompanyName string `gorm:"index;not null" json:"company_name"`
	Rating      int    `gorm:"not null" json:"rating"` // 1-5
	Title       string `json:"title,omitempty"`
	Pros        string `gorm:"type:text" json:"pros,omitempty"`
	Cons        string `gorm:"type:text" json:"cons,omitempty"`
	RoleAtTime  string `json:"role_at_time,omitempty"`

	Timestamps
}

// CompanyInsights aggregates reviews for one company (not persisted).
type CompanyInsights struct {
	CompanyName   string          `json:"company_name"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
	Reviews       []CompanyReview `json:"reviews"`
}
