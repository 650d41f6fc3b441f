package models

import "time"

// NotificationType categorizes in-app notifications
type NotificationType string

const (
	NotificationAchievement        NotificationType = "achievement"
	NotificationConnectionRequest  NotificationType = "connection_request"
	NotificationConnectionAccepted NotificationType = "connection_accepted"
	NotificationApplicationUpdate  NotificationType = "application_update"
	NotificationSystem             NotificationType = "system"
)

// Notification is an in-app notification record. Delivery beyond this table
// (email, push) is out of scope for this service.
type Notification struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	Type    NotificationType `gorm:"index;not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`
	Link    string           `json:"link,omitempty"`

	Read   bool       `gorm:"index;default:false" json:"read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	Timestamps
}
