package models

import "time"

// ReferralCode is a user's shareable invite code (one per user)
type ReferralCode struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"`
	Code           string `gorm:"uniqueIndex;not null" json:"code"` // 8 chars, uppercase

	Timestamps
}

// Referral tracks one redeemed code. ReferredID is unique: a new user can be
// referred at most once, and BonusAwarded keeps the reward idempotent.
type Referral struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	ReferrerID string `gorm:"index;not null" json:"referrer_id"`         // ExternalUserID
	ReferredID string `gorm:"uniqueIndex;not null" json:"referred_id"`   // ExternalUserID

	ReferralCodeUsed string     `gorm:"not null" json:"referral_code_used"`
	BonusAwarded     bool       `json:"bonus_awarded" gorm:"default:false"`
	AwardedAt        *time.Time `json:"awarded_at,omitempty"`

	Timestamps
}
