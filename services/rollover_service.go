package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"wellness-rewards-system/models"
	"wellness-rewards-system/utils"

	"gorm.io/gorm"
)

// RolloverService owns the scheduled maintenance: monthly aggregate shift,
// daily streak decay and countdown decrement. Every job is per-row
// independent and idempotent, so a partial run is safe to leave and safe to
// re-run.
type RolloverService struct {
	DB    *gorm.DB
	Clock *Clock
	Rules *RuleRegistry
}

func NewRolloverService(db *gorm.DB, clock *Clock, rules *RuleRegistry) *RolloverService {
	return &RolloverService{DB: db, Clock: clock, Rules: rules}
}

// MonthlyRollover shifts thisMonth buckets into lastMonth for every user
// whose marker is stale. Skipping more than one month zeroes lastMonth;
// no activity was observed in the gap, so nothing carries forward. One
// user's failure never blocks the rest.
func (s *RolloverService) MonthlyRollover(ctx context.Context) (int, error) {
	current := s.Clock.CurrentMonth()

	var users []models.User
	if err := s.DB.WithContext(ctx).
		Where("last_updated_month <> ?", current).
		Find(&users).Error; err != nil {
		return 0, err
	}

	rolled := 0
	for i := range users {
		if err := ctx.Err(); err != nil {
			return rolled, err
		}
		user := &users[i]

		// Rows without a marker predate marker stamping; their buckets
		// still describe the month just closed, so shift, don't zero.
		skipped := 1
		if user.LastUpdatedMonth != "" {
			skipped = MonthsBetween(user.LastUpdatedMonth, current)
		}
		if skipped == 1 {
			user.LastMonthEarned = user.ThisMonthEarned
			user.LastMonthSpent = user.ThisMonthSpent
		} else {
			user.LastMonthEarned = 0
			user.LastMonthSpent = 0
		}
		user.ThisMonthEarned = 0
		user.ThisMonthSpent = 0
		user.LastUpdatedMonth = current

		if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
			log.Printf("[Scheduler] rollover failed for user %s: %v", user.ID, err)
			continue
		}
		rolled++
	}

	log.Printf("[Scheduler] monthly rollover: %d/%d users stamped %s", rolled, len(users), current)
	return rolled, nil
}

// DecayStreaks zeroes streak and progress on every row whose last completed
// day is strictly before yesterday, and re-opens stale recurring challenges.
// Re-running against already-decayed rows is a no-op.
func (s *RolloverService) DecayStreaks(ctx context.Context) (int64, error) {
	cutoff := s.Clock.Yesterday()

	var staleUserIDs []string
	if err := s.DB.WithContext(ctx).Model(&models.ChallengeProgress{}).
		Where("last_completed_date < ? AND (streak <> 0 OR progress <> 0)", cutoff).
		Distinct().
		Pluck("user_id", &staleUserIDs).Error; err != nil {
		return 0, err
	}

	res := s.DB.WithContext(ctx).Model(&models.ChallengeProgress{}).
		Where("last_completed_date < ? AND (streak <> 0 OR progress <> 0)", cutoff).
		Updates(map[string]any{"streak": 0, "progress": 0})
	if res.Error != nil {
		return 0, res.Error
	}

	if recurring := s.Rules.RecurringIDs(); len(recurring) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.ChallengeProgress{}).
			Where("challenge_id IN ? AND is_completed = ? AND last_completed_date < ?", recurring, true, cutoff).
			Update("is_completed", false).Error; err != nil {
			log.Printf("[Scheduler] recurring re-open failed: %v", err)
		}
	}

	if len(staleUserIDs) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.User{}).
			Where("id IN ?", staleUserIDs).
			Update("streak_days", 0).Error; err != nil {
			log.Printf("[Scheduler] streak_days sync failed: %v", err)
		}
	}

	if res.RowsAffected > 0 {
		log.Printf("[Scheduler] streak decay: %d rows reset", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

// DecrementCountdowns ticks down the remaining days on uncompleted
// time-boxed challenges, flooring at zero.
func (s *RolloverService) DecrementCountdowns(ctx context.Context) (int64, error) {
	timeBoxed := s.Rules.TimeBoxedIDs()
	if len(timeBoxed) == 0 {
		return 0, nil
	}
	res := s.DB.WithContext(ctx).Model(&models.ChallengeProgress{}).
		Where("challenge_id IN ? AND days_left > 0 AND is_completed = ?", timeBoxed, false).
		UpdateColumn("days_left", gorm.Expr("days_left - 1"))
	return res.RowsAffected, res.Error
}

// ArchiveClosedMonth exports the just-closed month's ledger entries as a CSV
// statement to the configured object store. Failures are logged, never
// surfaced; archiving must not block the rollover.
func (s *RolloverService) ArchiveClosedMonth(ctx context.Context) {
	if !utils.StatementStoreEnabled() {
		return
	}

	firstOfCurrent, err := time.ParseInLocation("2006-01", s.Clock.CurrentMonth(), s.Clock.Location())
	if err != nil {
		log.Printf("[Scheduler] statement archive skipped: %v", err)
		return
	}
	start := firstOfCurrent.AddDate(0, -1, 0)
	month := start.Format("2006-01")

	var entries []models.LedgerEntry
	if err := s.DB.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, firstOfCurrent).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		log.Printf("[Scheduler] statement archive: fetch failed for %s: %v", month, err)
		return
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "user_id", "kind", "amount", "reason", "category", "created_at"})
	for _, e := range entries {
		_ = w.Write([]string{
			e.ID, e.UserID, string(e.Kind),
			strconv.FormatInt(e.Amount, 10),
			e.Reason, e.Category,
			e.CreatedAt.In(s.Clock.Location()).Format(time.RFC3339),
		})
	}
	w.Flush()

	key := fmt.Sprintf("statements/%s.csv", month)
	url, err := utils.UploadStatement(ctx, key, buf.Bytes(), "text/csv")
	if err != nil {
		log.Printf("[Scheduler] statement archive upload failed for %s: %v", month, err)
		return
	}
	log.Printf("[Scheduler] archived %d ledger entries for %s → %s", len(entries), month, url)
}
