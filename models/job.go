package models

import "time"

// JobStatus is the publishing state of a job posting
type JobStatus string

const (
	JobStatusActive  JobStatus = "active"
	JobStatusClosed  JobStatus = "closed"
	JobStatusExpired JobStatus = "expired"
)

// ApplicationStatus tracks an application through the admin review flow
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// JobPosting is an admin-created job listing
type JobPosting struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	AdminID string `gorm:"index;not null" json:"admin_id"`

	Title              string    `gorm:"not null" json:"title"`
	Slug               string    `gorm:"uniqueIndex;not null" json:"slug"`
	Company            string    `gorm:"not null" json:"company"`
	Description        string    `gorm:"type:text" json:"description"`
	Requirements       string    `gorm:"type:text" json:"requirements"` // newline-separated
	ExperienceRequired string    `json:"experience_required"`
	SalaryRange        string    `json:"salary_range"`
	Location           string    `json:"location"`
	JobType            string    `gorm:"default:'Full-time'" json:"job_type"`
	CareerField        string    `gorm:"index" json:"career_field"`
	Status             JobStatus `gorm:"index;default:'active'" json:"status"`

	// Deadline after which the scheduler marks the posting expired; nil = open-ended.
	Deadline *time.Time `json:"deadline,omitempty"`

	Timestamps
}

// JobApplication is a user's application to a posting
type JobApplication struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`
	JobID          string `gorm:"index;not null" json:"job_id"`

	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Experience  string `gorm:"type:text" json:"experience,omitempty"`
	Skills      string `gorm:"type:text" json:"skills,omitempty"` // comma-separated
	Education   string `json:"education,omitempty"`
	CoverLetter string `gorm:"type:text" json:"cover_letter,omitempty"`

	Status     ApplicationStatus `gorm:"index;default:'pending'" json:"status"`
	AdminNotes string            `gorm:"type:text" json:"admin_notes,omitempty"`

	Job *JobPosting `json:"job,omitempty" gorm:"foreignKey:JobID"`

	Timestamps
}

// SavedJob bookmarks a posting for a user (one per user+job)
type SavedJob struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string    `gorm:"uniqueIndex:idx_saved_job;not null" json:"external_user_id"`
	JobID          string    `gorm:"uniqueIndex:idx_saved_job;not null" json:"job_id"`
	SavedAt        time.Time `gorm:"autoCreateTime" json:"saved_at"`

	Job *JobPosting `json:"job,omitempty" gorm:"foreignKey:JobID"`
}
