package services

import (
	"testing"
	"time"

	"wellness-rewards-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLedgerFixture(t *testing.T, day string) (*gorm.DB, *LedgerService) {
	t.Helper()

	db := newTestDB(t)
	return db, NewLedgerService(db, fixedClock(t, day))
}

func seedReward(t *testing.T, db *gorm.DB, userID string, cost int64) *models.Reward {
	t.Helper()

	reward := &models.Reward{
		ID:         uuid.NewString(),
		Title:      "Coffee Gift Card",
		Category:   models.RewardCategoryGiftCard,
		PointsCost: cost,
		UserID:     userID,
		Status:     models.RewardStatusPublished,
	}
	require.NoError(t, db.Create(reward).Error)
	return reward
}

func entryCount(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func TestCreditUpdatesBalanceAndAggregates(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")

	entry, err := svc.Credit(user.ID, 100, "Savings Sprint", "challenge")
	require.NoError(t, err)
	assert.Equal(t, models.EntryReward, entry.Kind)
	assert.EqualValues(t, 100, entry.Amount)

	got := reloadUser(t, db, user.ID)
	assert.EqualValues(t, 100, got.CurrentPoints)
	assert.EqualValues(t, 100, got.TotalEarned)
	assert.EqualValues(t, 100, got.ThisMonthEarned)
	assert.EqualValues(t, 0, got.TotalSpent)
	// The first credit stamps the rollover marker.
	assert.Equal(t, "2025-08", got.LastUpdatedMonth)
}

func TestCreditRejectsNonPositiveAmounts(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")

	_, err := svc.Credit(user.ID, 0, "zero", "test")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.Credit(user.ID, -10, "negative", "test")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.EqualValues(t, 0, entryCount(t, db, user.ID))
}

func TestCreditUnknownUser(t *testing.T) {
	_, svc := newLedgerFixture(t, "2025-08-15 10:00")

	_, err := svc.Credit(uuid.NewString(), 50, "ghost", "test")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEarnPointsKnownAction(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")

	entry, err := svc.EarnPoints(user.ID, "daily_login")
	require.NoError(t, err)
	assert.EqualValues(t, 10, entry.Amount)

	var event models.ActivityEvent
	require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, "points_earned").First(&event).Error)
	assert.Equal(t, "Daily Login", event.Title)
	assert.EqualValues(t, 10, event.Points)
}

func TestEarnPointsUnknownAction(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")

	_, err := svc.EarnPoints(user.ID, "won_the_lottery")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.EqualValues(t, 0, entryCount(t, db, user.ID))
}

func TestRedeemToggleLifecycle(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")
	reward := seedReward(t, db, user.ID, 40)

	_, err := svc.Credit(user.ID, 100, "seed", "test")
	require.NoError(t, err)

	// First claim debits the cost.
	got, entry, err := svc.RedeemReward(user.ID, reward.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, got.Claimed)
	assert.EqualValues(t, -40, entry.Amount)
	assert.Equal(t, models.EntryRedemption, entry.Kind)

	u := reloadUser(t, db, user.ID)
	assert.EqualValues(t, 60, u.CurrentPoints)
	assert.EqualValues(t, 40, u.TotalSpent)
	assert.EqualValues(t, 40, u.ThisMonthSpent)

	// Unclaim flips the flag back without a refund.
	got, entry, err = svc.RedeemReward(user.ID, reward.ID)
	require.NoError(t, err)
	assert.False(t, got.Claimed)
	assert.Nil(t, entry)
	assert.EqualValues(t, 60, reloadUser(t, db, user.ID).CurrentPoints)

	// Re-claim is a free flip; the cost was already paid.
	got, entry, err = svc.RedeemReward(user.ID, reward.ID)
	require.NoError(t, err)
	assert.True(t, got.Claimed)
	assert.Nil(t, entry)
	assert.EqualValues(t, 60, reloadUser(t, db, user.ID).CurrentPoints)
	assert.EqualValues(t, 2, entryCount(t, db, user.ID)) // one credit, one debit

	sum, err := svc.EntrySum(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 60, sum)
}

func TestRedeemInsufficientPointsFailsClosed(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")
	reward := seedReward(t, db, user.ID, 50)

	_, err := svc.Credit(user.ID, 10, "seed", "test")
	require.NoError(t, err)

	_, _, err = svc.RedeemReward(user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	var got models.Reward
	require.NoError(t, db.Where("id = ?", reward.ID).First(&got).Error)
	assert.False(t, got.Claimed)
	assert.False(t, got.Paid)
	assert.EqualValues(t, 10, reloadUser(t, db, user.ID).CurrentPoints)
	assert.EqualValues(t, 1, entryCount(t, db, user.ID))
}

func TestRedeemUnavailableReward(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")
	_, err := svc.Credit(user.ID, 500, "seed", "test")
	require.NoError(t, err)

	draft := seedReward(t, db, user.ID, 40)
	require.NoError(t, db.Model(draft).Update("status", models.RewardStatusDraft).Error)
	_, _, err = svc.RedeemReward(user.ID, draft.ID)
	assert.ErrorIs(t, err, ErrRewardUnavailable)

	expired := seedReward(t, db, user.ID, 40)
	past := svc.Clock.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(expired).Update("expiry_date", past).Error)
	_, _, err = svc.RedeemReward(user.ID, expired.ID)
	assert.ErrorIs(t, err, ErrRewardUnavailable)
}

func TestRedeemRewardNotFound(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")
	other := seedUser(t, db, "grace")
	reward := seedReward(t, db, other.ID, 40)

	// Another user's reward is invisible, not forbidden.
	_, _, err := svc.RedeemReward(user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrRewardNotFound)

	_, _, err = svc.RedeemReward(user.ID, uuid.NewString())
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestBalanceAlwaysMatchesEntrySum(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")
	reward := seedReward(t, db, user.ID, 75)

	_, err := svc.Credit(user.ID, 200, "challenge one", "challenge")
	require.NoError(t, err)
	_, err = svc.EarnPoints(user.ID, "account_linked")
	require.NoError(t, err)
	_, _, err = svc.RedeemReward(user.ID, reward.ID)
	require.NoError(t, err)

	got := reloadUser(t, db, user.ID)
	sum, err := svc.EntrySum(user.ID)
	require.NoError(t, err)
	assert.Equal(t, got.CurrentPoints, sum)
	assert.EqualValues(t, 225, sum)
}

func TestEntrySumEmptyLedger(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")

	sum, err := svc.EntrySum(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, sum)
}

func TestRecentEntriesNewestFirst(t *testing.T) {
	db, svc := newLedgerFixture(t, "2025-08-15 10:00")
	user := seedUser(t, db, "ada")

	base := time.Date(2025, 8, 10, 12, 0, 0, 0, svc.Clock.Location())
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.LedgerEntry{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Kind:      models.EntryReward,
			Amount:    int64(10 * (i + 1)),
			Reason:    "seed",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	entries, err := svc.RecentEntries(user.ID, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.EqualValues(t, 30, entries[0].Amount)
	assert.EqualValues(t, 20, entries[1].Amount)
}
