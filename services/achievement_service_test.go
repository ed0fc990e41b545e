package services

import (
	"testing"

	"wellness-rewards-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awardCount(t *testing.T, svc *AchievementService, userID, code string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, svc.DB.Model(&models.UserAchievement{}).
		Where("user_id = ? AND code = ?", userID, code).
		Count(&n).Error)
	return n
}

func TestAutoAwardGrantsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db)
	user := seedUser(t, db, "ada")
	require.NoError(t, db.Model(user).Update("challenges_completed", 1).Error)

	require.NoError(t, svc.AutoAward(user.ID))
	assert.EqualValues(t, 1, awardCount(t, svc, user.ID, "FIRST_CHALLENGE"))

	// Re-evaluating met triggers never duplicates the award.
	require.NoError(t, svc.AutoAward(user.ID))
	assert.EqualValues(t, 1, awardCount(t, svc, user.ID, "FIRST_CHALLENGE"))
}

func TestAutoAwardBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db)
	user := seedUser(t, db, "ada")

	require.NoError(t, svc.AutoAward(user.ID))

	var n int64
	require.NoError(t, db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestAutoAwardMultipleTriggers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db)
	user := seedUser(t, db, "ada")
	require.NoError(t, db.Model(user).Updates(map[string]any{
		"challenges_completed": 5,
		"streak_days":          7,
		"total_earned":         1200,
	}).Error)

	require.NoError(t, svc.AutoAward(user.ID))

	for _, code := range []string{"FIRST_CHALLENGE", "CHALLENGE_VETERAN", "WEEK_WARRIOR", "POINT_COLLECTOR"} {
		assert.EqualValues(t, 1, awardCount(t, svc, user.ID, code), code)
	}
	assert.EqualValues(t, 0, awardCount(t, svc, user.ID, "BIG_SPENDER"))
}

func TestListForUserResolvesCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db)
	user := seedUser(t, db, "ada")
	require.NoError(t, db.Model(user).Update("challenges_completed", 1).Error)
	require.NoError(t, svc.AutoAward(user.ID))

	got, err := svc.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FIRST_CHALLENGE", got[0]["code"])
	assert.NotEmpty(t, got[0]["name"])
	assert.NotEmpty(t, got[0]["awarded_at"])
}
