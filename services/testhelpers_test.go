package services

import (
	"testing"
	"time"

	"wellness-rewards-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema. A single
// connection is forced so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ChallengeProgress{},
		&models.LedgerEntry{},
		&models.ActivityEvent{},
		&models.LeaderboardSnapshot{},
		&models.Reward{},
		&models.UserAchievement{},
	))
	return db
}

// fixedClock pins "now" to the given "2006-01-02 15:04" instant in the
// canonical timezone.
func fixedClock(t *testing.T, day string) *Clock {
	t.Helper()

	loc, err := time.LoadLocation(DefaultTimeZone)
	require.NoError(t, err)
	at, err := time.ParseInLocation("2006-01-02 15:04", day, loc)
	require.NoError(t, err)
	return NewFixedClock(loc, at)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{ID: uuid.NewString(), DisplayName: name}
	require.NoError(t, db.Create(user).Error)
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, db.Where("id = ?", id).First(&user).Error)
	return &user
}

func i64(v int64) *int64 { return &v }
