package services

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReferralCodeNotFound = errors.New("referral code not found")
	ErrAlreadyReferred      = errors.New("user already used a referral code")
	ErrSelfReferral         = errors.New("cannot use your own referral code")
)

type ReferralService struct {
	DB     *gorm.DB
	Engine *GamificationEngine
}

func NewReferralService(db *gorm.DB, engine *GamificationEngine) *ReferralService {
	return &ReferralService{DB: db, Engine: engine}
}

// CodeFor returns the user's referral code, creating it on first request.
// The code is derived from the user id so regeneration is stable.
func (s *ReferralService) CodeFor(externalUserID string) (*models.ReferralCode, error) {
	var code models.ReferralCode
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&code).Error
	if err == nil {
		return &code, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sum := md5.Sum([]byte(externalUserID))
	code = models.ReferralCode{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Code:           strings.ToUpper(hex.EncodeToString(sum[:])[:8]),
	}
	if err := s.DB.Create(&code).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// ReferralOutcome reports both sides of a redeemed code.
type ReferralOutcome struct {
	Referral       models.Referral      `json:"referral"`
	ReferrerReward *models.RewardResult `json:"referrer_reward,omitempty"`
	ReferredReward *models.RewardResult `json:"referred_reward,omitempty"`
}

// Redeem applies a referral code for a new user: the referrer earns the
// referral XP (and the SuperConnector check runs on their new count), the
// new user earns the signup bonus. A user can redeem at most one code, and
// the BonusAwarded flag keeps the payout idempotent under retries.
func (s *ReferralService) Redeem(newUserID, rawCode string) (*ReferralOutcome, error) {
	codeValue := strings.ToUpper(strings.TrimSpace(rawCode))

	var code models.ReferralCode
	err := s.DB.Where("code = ?", codeValue).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReferralCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	if code.ExternalUserID == newUserID {
		return nil, ErrSelfReferral
	}

	var existing models.Referral
	err = s.DB.Where("referred_id = ?", newUserID).First(&existing).Error
	if err == nil {
		if existing.BonusAwarded {
			return nil, ErrAlreadyReferred
		}
		// Created but never paid out (earlier failure): fall through and retry
		// the award against the existing row.
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else {
		existing = models.Referral{
			ID:               uuid.NewString(),
			ReferrerID:       code.ExternalUserID,
			ReferredID:       newUserID,
			ReferralCodeUsed: codeValue,
		}
		if err := s.DB.Create(&existing).Error; err != nil {
			return nil, err
		}
	}

	outcome := ReferralOutcome{Referral: existing}

	referrerReward, err := s.Engine.ApplyEvent(code.ExternalUserID, models.Event{
		Kind:       models.ActionReferral,
		OccurredAt: time.Now().UTC(),
		Reason:     "Referred a friend",
	})
	if err != nil {
		return nil, err
	}
	outcome.ReferrerReward = referrerReward

	referredReward, err := s.Engine.ApplyEvent(newUserID, models.Event{
		Kind:       models.ActionReferralBonus,
		OccurredAt: time.Now().UTC(),
		Reason:     "Signed up with referral code",
	})
	if err == nil {
		outcome.ReferredReward = referredReward
	}

	now := time.Now().UTC()
	existing.BonusAwarded = true
	existing.AwardedAt = &now
	if err := s.DB.Save(&existing).Error; err != nil {
		return nil, err
	}
	outcome.Referral = existing

	return &outcome, nil
}

// Stats summarizes a user's referral activity.
func (s *ReferralService) Stats(externalUserID string) (map[string]interface{}, error) {
	code, err := s.CodeFor(externalUserID)
	if err != nil {
		return nil, err
	}

	var referrals []models.Referral
	if err := s.DB.Where("referrer_id = ?", externalUserID).
		Order("created_at DESC").
		Find(&referrals).Error; err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"code":      code.Code,
		"count":     len(referrals),
		"referrals": referrals,
	}, nil
}
