package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GamificationEngine is the sole mutator of UserGameState. Feature services
// report events; the engine scores them, updates streak/XP/badges atomically
// and returns what changed.
type GamificationEngine struct {
	DB *gorm.DB

	// userLocks serializes ApplyEvent per user. Events for different users run
	// in parallel; two concurrent events for the same user must not lose an
	// update, so each read-modify-write holds the user's lock.
	userLocks sync.Map // ExternalUserID → *sync.Mutex
}

func NewGamificationEngine(db *gorm.DB) *GamificationEngine {
	return &GamificationEngine{DB: db}
}

func (e *GamificationEngine) lockUser(externalUserID string) *sync.Mutex {
	mu, _ := e.userLocks.LoadOrStore(externalUserID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// storeErr translates driver failures into the retryable sentinel. Not-found
// is handled by callers before this point.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// EnsureGameState creates the zeroed per-user record if missing (idempotent).
// Called at account creation, before any event for the user is applied.
func (e *GamificationEngine) EnsureGameState(externalUserID string) (*models.UserGameState, error) {
	var state models.UserGameState
	err := e.DB.Where("external_user_id = ?", externalUserID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = models.UserGameState{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			XP:             0,
			LoginStreak:    0,
			ReferralCount:  0,
		}
		if err := e.DB.Create(&state).Error; err != nil {
			return nil, storeErr(err)
		}
		state.Level = models.LevelForXP(state.XP)
		return &state, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &state, nil
}

// GetState returns the user's game state with badges, read-only.
func (e *GamificationEngine) GetState(externalUserID string) (*models.UserGameState, error) {
	var state models.UserGameState
	err := e.DB.Preload("Badges").Where("external_user_id = ?", externalUserID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &state, nil
}

// ApplyEvent scores one event and applies the full state change — streak
// update, XP add, badge awards — as a single atomic write. On any error no
// partial state is persisted.
func (e *GamificationEngine) ApplyEvent(externalUserID string, event models.Event) (*models.RewardResult, error) {
	if event.ExternalUserID == "" {
		event.ExternalUserID = externalUserID
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	mu := e.lockUser(externalUserID)
	mu.Lock()
	defer mu.Unlock()

	var result *models.RewardResult
	var finalXP int64
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		var state models.UserGameState
		if err := tx.Preload("Badges").Where("external_user_id = ?", externalUserID).First(&state).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return storeErr(err)
		}

		res, err := applyToState(&state, event)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(&state).Error; err != nil {
			return storeErr(err)
		}
		for _, id := range res.NewBadges {
			badge := models.UserBadge{
				ID:             uuid.NewString(),
				ExternalUserID: externalUserID,
				BadgeID:        id,
			}
			if err := tx.Create(&badge).Error; err != nil {
				return storeErr(err)
			}
			log.Printf("🎖️ Badge awarded: %s → %s", id, externalUserID)
		}

		result = res
		finalXP = state.XP
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎮 XP Awarded: %s → +%d XP=%d Lvl=%d (kind: %s)",
		externalUserID, result.XPAwarded, finalXP, models.LevelForXP(finalXP), event.Kind)
	return result, nil
}

// applyToState mutates the in-memory state for one event and reports the
// change. The reward lookup runs first so an unknown kind aborts before any
// field is touched.
func applyToState(state *models.UserGameState, event models.Event) (*models.RewardResult, error) {
	xpAwarded, err := RewardFor(event)
	if err != nil {
		return nil, err
	}

	if event.Kind == models.ActionDailyLogin {
		today := event.OccurredAt.UTC().Format(models.DateLayout)
		if state.LastLoginDate != nil && *state.LastLoginDate == today {
			// Repeat login on an already-counted day: the streak is frozen and
			// the login XP is paid at most once per calendar day.
			xpAwarded = 0
		}
		applyStreak(state, event.OccurredAt)
	}
	if event.Kind == models.ActionReferral {
		// The referrer's count goes up before the reward is scored, so the
		// SuperConnector check sees the new total.
		state.ReferralCount++
	}

	oldLevel := models.LevelForXP(state.XP)
	state.XP += xpAwarded
	state.Level = models.LevelForXP(state.XP)

	result := &models.RewardResult{
		XPAwarded: xpAwarded,
		NewBadges: EvaluateBadges(state, event),
	}
	if state.Level > oldLevel {
		result.LeveledUp = true
		result.NewLevel = state.Level
	}

	for _, id := range result.NewBadges {
		state.Badges = append(state.Badges, models.UserBadge{
			ExternalUserID: state.ExternalUserID,
			BadgeID:        id,
		})
	}

	return result, nil
}

// applyStreak applies the calendar-day streak rule: same date is a no-op,
// exactly one day later increments, a gap resets to 1.
func applyStreak(state *models.UserGameState, at time.Time) {
	today := at.UTC().Format(models.DateLayout)

	if state.LastLoginDate == nil {
		state.LoginStreak = 1
		state.LastLoginDate = &today
		return
	}
	if *state.LastLoginDate == today {
		return
	}

	lastDate, err := time.Parse(models.DateLayout, *state.LastLoginDate)
	if err != nil {
		// Unparseable stored date: treat as a fresh streak.
		state.LoginStreak = 1
		state.LastLoginDate = &today
		return
	}
	todayDate, _ := time.Parse(models.DateLayout, today)

	days := int(todayDate.Sub(lastDate).Hours() / 24)
	switch {
	case days == 1:
		state.LoginStreak++
	case days > 1:
		state.LoginStreak = 1
	default:
		// Event dated before the recorded login (clock skew): leave the streak
		// and the recorded date alone.
		return
	}
	state.LastLoginDate = &today
}
