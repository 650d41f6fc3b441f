package services

import (
	"fmt"
	"testing"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a uniquely-named in-memory sqlite database. A single
// connection keeps the shared-cache database alive for the whole test and
// serializes writes the way the production pool does per transaction.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.UserGameState{},
		&models.UserBadge{},
		&models.Activity{},
		&models.ReferralCode{},
		&models.Referral{},
	))
	return db
}

func newTestEngine(t *testing.T) *GamificationEngine {
	t.Helper()
	return NewGamificationEngine(newTestDB(t))
}
