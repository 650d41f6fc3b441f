package models

// Resume is a builder document. Content is the full resume JSON as edited by
// the client (sections, entries); the service does not interpret it beyond
// the title. PDF export is handled client-side.
type Resume struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:jsonb;not null" json:"content"`

	// AttachmentURL points at an uploaded file (e.g. an existing resume PDF)
	// stored in the R2 bucket.
	AttachmentURL string `gorm:"type:text" json:"attachment_url,omitempty"`

	Timestamps
}
