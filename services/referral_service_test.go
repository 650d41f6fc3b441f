package services

import (
	"testing"

	"career-counselor-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferralFixture(t *testing.T) (*ReferralService, *GamificationEngine) {
	t.Helper()
	db := newTestDB(t)
	engine := NewGamificationEngine(db)
	return NewReferralService(db, engine), engine
}

func TestCodeForIsStable(t *testing.T) {
	svc, _ := newReferralFixture(t)

	first, err := svc.CodeFor("user-1")
	require.NoError(t, err)
	second, err := svc.CodeFor("user-1")
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
	assert.Len(t, first.Code, 8)
	assert.Equal(t, first.ID, second.ID)
}

func TestRedeemAwardsBothSides(t *testing.T) {
	svc, engine := newReferralFixture(t)
	_, err := engine.EnsureGameState("referrer")
	require.NoError(t, err)
	_, err = engine.EnsureGameState("newbie")
	require.NoError(t, err)

	code, err := svc.CodeFor("referrer")
	require.NoError(t, err)

	outcome, err := svc.Redeem("newbie", code.Code)
	require.NoError(t, err)

	require.NotNil(t, outcome.ReferrerReward)
	assert.Equal(t, int64(100), outcome.ReferrerReward.XPAwarded)
	require.NotNil(t, outcome.ReferredReward)
	assert.Equal(t, int64(50), outcome.ReferredReward.XPAwarded)
	assert.True(t, outcome.Referral.BonusAwarded)

	referrerState, err := engine.GetState("referrer")
	require.NoError(t, err)
	assert.Equal(t, 1, referrerState.ReferralCount)
	assert.Equal(t, int64(100), referrerState.XP)

	newbieState, err := engine.GetState("newbie")
	require.NoError(t, err)
	assert.Equal(t, int64(50), newbieState.XP)
}

func TestRedeemLowercaseCode(t *testing.T) {
	svc, engine := newReferralFixture(t)
	_, err := engine.EnsureGameState("referrer")
	require.NoError(t, err)
	_, err = engine.EnsureGameState("newbie")
	require.NoError(t, err)

	code, err := svc.CodeFor("referrer")
	require.NoError(t, err)

	_, err = svc.Redeem("newbie", "  "+lower(code.Code)+" ")
	assert.NoError(t, err)
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func TestRedeemOwnCode(t *testing.T) {
	svc, engine := newReferralFixture(t)
	_, err := engine.EnsureGameState("referrer")
	require.NoError(t, err)

	code, err := svc.CodeFor("referrer")
	require.NoError(t, err)

	_, err = svc.Redeem("referrer", code.Code)
	assert.ErrorIs(t, err, ErrSelfReferral)
}

func TestRedeemUnknownCode(t *testing.T) {
	svc, _ := newReferralFixture(t)
	_, err := svc.Redeem("newbie", "NOPE1234")
	assert.ErrorIs(t, err, ErrReferralCodeNotFound)
}

func TestRedeemOnlyOnce(t *testing.T) {
	svc, engine := newReferralFixture(t)
	_, err := engine.EnsureGameState("referrer")
	require.NoError(t, err)
	_, err = engine.EnsureGameState("newbie")
	require.NoError(t, err)

	code, err := svc.CodeFor("referrer")
	require.NoError(t, err)

	_, err = svc.Redeem("newbie", code.Code)
	require.NoError(t, err)
	_, err = svc.Redeem("newbie", code.Code)
	assert.ErrorIs(t, err, ErrAlreadyReferred)

	state, err := engine.GetState("referrer")
	require.NoError(t, err)
	assert.Equal(t, 1, state.ReferralCount)
	assert.Equal(t, int64(100), state.XP)
}

func TestStatsListsReferrals(t *testing.T) {
	svc, engine := newReferralFixture(t)
	_, err := engine.EnsureGameState("referrer")
	require.NoError(t, err)
	_, err = engine.EnsureGameState("newbie")
	require.NoError(t, err)

	code, err := svc.CodeFor("referrer")
	require.NoError(t, err)
	_, err = svc.Redeem("newbie", code.Code)
	require.NoError(t, err)

	stats, err := svc.Stats("referrer")
	require.NoError(t, err)
	assert.Equal(t, code.Code, stats["code"])
	assert.Equal(t, 1, stats["count"])
	referrals, ok := stats["referrals"].([]models.Referral)
	require.True(t, ok)
	require.Len(t, referrals, 1)
	assert.Equal(t, "newbie", referrals[0].ReferredID)
}
