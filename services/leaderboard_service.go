package services

import (
	"context"
	"log"
	"math"

	"wellness-rewards-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaderboardService builds the competitive snapshot: rank by points (savings
// breaks ties), trend and percent change against the prior snapshot set.
type LeaderboardService struct {
	DB    *gorm.DB
	Clock *Clock
}

func NewLeaderboardService(db *gorm.DB, clock *Clock) *LeaderboardService {
	return &LeaderboardService{DB: db, Clock: clock}
}

// Refresh replaces the snapshot set with one row per user. Each row is an
// independently idempotent upsert; a partial run leaves a degraded but
// self-healing state, so no cross-row rollback is attempted. Returns how
// many rows were written.
func (s *LeaderboardService) Refresh(ctx context.Context) (int, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).
		Order("current_points DESC, savings DESC").
		Find(&users).Error; err != nil {
		return 0, err
	}

	// Prior snapshot, read once for trend computation, then overwritten.
	var prior []models.LeaderboardSnapshot
	if err := s.DB.WithContext(ctx).Find(&prior).Error; err != nil {
		return 0, err
	}
	priorPoints := make(map[string]int64, len(prior))
	for _, row := range prior {
		priorPoints[row.UserID] = row.Points
	}

	now := s.Clock.Now()
	written := 0

	for i, user := range users {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		previous, ok := priorPoints[user.ID]
		if !ok {
			previous = user.CurrentPoints // absent prior: 0% change
		}

		percent := 0.0
		if previous != 0 {
			percent = round2(float64(user.CurrentPoints-previous) / float64(previous) * 100)
		}
		trend := models.TrendSteady
		if percent > 0 {
			trend = models.TrendUp
		} else if percent < 0 {
			trend = models.TrendDown
		}

		snapshot := models.LeaderboardSnapshot{
			ID:            uuid.NewString(),
			UserID:        user.ID,
			DisplayName:   user.DisplayName,
			Points:        user.CurrentPoints,
			Savings:       user.Savings,
			Rank:          i + 1,
			Trend:         trend,
			PercentChange: percent,
			SnapshotAt:    now,
		}
		err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"display_name", "points", "savings", "rank", "trend", "percent_change", "snapshot_at",
			}),
		}).Create(&snapshot).Error
		if err != nil {
			log.Printf("[Leaderboard] snapshot upsert failed for %s: %v", user.ID, err)
			continue
		}

		if err := s.DB.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("rank", i+1).Error; err != nil {
			log.Printf("[Leaderboard] rank write-back failed for %s: %v", user.ID, err)
			continue
		}
		written++
	}

	// Rows for users no longer in the ranked set must not linger on the
	// board.
	var cleanup *gorm.DB
	if len(users) > 0 {
		ids := make([]string, 0, len(users))
		for _, user := range users {
			ids = append(ids, user.ID)
		}
		cleanup = s.DB.WithContext(ctx).Where("user_id NOT IN ?", ids).Delete(&models.LeaderboardSnapshot{})
	} else {
		cleanup = s.DB.WithContext(ctx).Where("user_id IS NOT NULL").Delete(&models.LeaderboardSnapshot{})
	}
	if cleanup.Error != nil {
		log.Printf("[Leaderboard] stale snapshot cleanup failed: %v", cleanup.Error)
	}

	log.Printf("[Leaderboard] refreshed %d/%d rows", written, len(users))
	return written, nil
}

// Get returns the current snapshot ordered by rank.
func (s *LeaderboardService) Get() ([]models.LeaderboardSnapshot, error) {
	var rows []models.LeaderboardSnapshot
	err := s.DB.Order("rank ASC").Find(&rows).Error
	return rows, err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
