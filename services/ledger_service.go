package services

import (
	"errors"
	"fmt"
	"log"

	"wellness-rewards-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EarnActionPoints is the fixed action→points table behind the earn
// endpoint. Everything else goes through challenge completions.
var EarnActionPoints = map[string]int64{
	"daily_login":      10,
	"lesson_completed": 25,
	"goal_created":     30,
	"budget_created":   50,
	"account_linked":   100,
}

// LedgerService owns every mutation of CurrentPoints. The append-only
// entries are ground truth; no code path outside credit/debit may touch the
// balance.
type LedgerService struct {
	DB    *gorm.DB
	Clock *Clock
	locks *keyedLocks
}

func NewLedgerService(db *gorm.DB, clock *Clock) *LedgerService {
	return &LedgerService{DB: db, Clock: clock, locks: newKeyedLocks()}
}

// Credit appends a Reward entry and raises the balance plus the earned
// aggregates. Not self-deduplicating; callers guarantee at-most-once per
// completion event.
func (s *LedgerService) Credit(userID string, amount int64, reason, category string) (*models.LedgerEntry, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var entry *models.LedgerEntry
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		e, err := s.creditTx(tx, userID, amount, reason, category)
		entry = e
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// creditTx is the in-transaction credit used directly by the challenge state
// machine so a completion and its credit commit as one unit. The caller
// holds the per-user serialization.
func (s *LedgerService) creditTx(tx *gorm.DB, userID string, amount int64, reason, category string) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: credit amount must be positive", ErrInvalidRequest)
	}

	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Backfill the rollover marker so the first monthly rollover shifts
	// this month's buckets instead of treating the row as long-dormant.
	if user.LastUpdatedMonth == "" {
		user.LastUpdatedMonth = s.Clock.CurrentMonth()
	}

	entry := &models.LedgerEntry{
		ID:       uuid.NewString(),
		UserID:   userID,
		Kind:     models.EntryReward,
		Amount:   amount,
		Reason:   reason,
		Category: category,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}

	user.CurrentPoints += amount
	user.TotalEarned += amount
	user.ThisMonthEarned += amount
	if err := tx.Save(&user).Error; err != nil {
		return nil, err
	}

	log.Printf("[Ledger] +%d → %s (reason: %s)", amount, userID, reason)
	return entry, nil
}

// EarnPoints credits the fixed reward for a known earn action and records
// the activity. Unknown actions are an InvalidRequest, never a silent zero.
func (s *LedgerService) EarnPoints(userID, action string) (*models.LedgerEntry, error) {
	points, ok := EarnActionPoints[action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown earn action %q", ErrInvalidRequest, action)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var entry *models.LedgerEntry
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		e, err := s.creditTx(tx, userID, points, action, "earn")
		if err != nil {
			return err
		}
		entry = e
		event := &models.ActivityEvent{
			ID:     uuid.NewString(),
			UserID: userID,
			Type:   "points_earned",
			Title:  titleForAction(action),
			Points: points,
			Icon:   "sparkles",
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return nil, err
	}

	achievementSvc := NewAchievementService(s.DB)
	_ = achievementSvc.AutoAward(userID) // fire-and-forget

	return entry, nil
}

// RedeemReward debits the reward's point cost and flips its claim toggle.
// Toggle semantics: redeeming an already-claimed reward unclaims it without
// a refund and without re-charging; a claim switch, not a repeat purchase.
func (s *LedgerService) RedeemReward(userID, rewardID string) (*models.Reward, *models.LedgerEntry, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var reward models.Reward
	var entry *models.LedgerEntry

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", rewardID, userID).First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}

		if reward.Claimed {
			reward.Claimed = false
			return tx.Save(&reward).Error
		}

		// A previously paid reward is re-claimed for free; the debit below
		// only runs the first time.
		if reward.Paid {
			reward.Claimed = true
			return tx.Save(&reward).Error
		}

		if reward.Status != models.RewardStatusPublished {
			return ErrRewardUnavailable
		}
		if reward.ExpiryDate != nil && reward.ExpiryDate.Before(s.Clock.Now()) {
			return ErrRewardUnavailable
		}

		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// Fails closed: no partial debit on an insufficient balance.
		if reward.PointsCost > user.CurrentPoints {
			return ErrInsufficientPoints
		}

		entry = &models.LedgerEntry{
			ID:       uuid.NewString(),
			UserID:   userID,
			Kind:     models.EntryRedemption,
			Amount:   -reward.PointsCost,
			Reason:   reward.Title,
			Category: string(reward.Category),
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		user.CurrentPoints -= reward.PointsCost
		user.TotalSpent += reward.PointsCost
		user.ThisMonthSpent += reward.PointsCost
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		reward.Claimed = true
		reward.Paid = true
		if err := tx.Save(&reward).Error; err != nil {
			return err
		}

		event := &models.ActivityEvent{
			ID:     uuid.NewString(),
			UserID: userID,
			Type:   "reward_redeemed",
			Title:  reward.Title,
			Points: -reward.PointsCost,
			Icon:   "gift",
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if entry != nil {
		log.Printf("[Ledger] -%d → %s (reward: %s)", -entry.Amount, userID, reward.Title)
		achievementSvc := NewAchievementService(s.DB)
		_ = achievementSvc.AutoAward(userID)
	}

	return &reward, entry, nil
}

// EntrySum returns the signed sum of a user's ledger entries. CurrentPoints
// must equal this at all times; it is also the replay source if the
// denormalized balance ever needs rebuilding.
func (s *LedgerService) EntrySum(userID string) (int64, error) {
	var sum *int64
	err := s.DB.Model(&models.LedgerEntry{}).
		Where("user_id = ?", userID).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// RecentEntries returns the newest ledger entries for display.
func (s *LedgerService) RecentEntries(userID string, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var entries []models.LedgerEntry
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
