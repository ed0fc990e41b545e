package models

import (
	"time"

	"gorm.io/gorm"
)

// User holds the redeemable point balance plus denormalized aggregates
// (monthly buckets, counters, rank). LedgerEntries are the ground truth;
// CurrentPoints and the month buckets are rebuildable projections that only
// the ledger service and the rollover job may mutate.
type User struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	DisplayName string `gorm:"not null" json:"display_name"`

	// Point balance and lifetime totals
	CurrentPoints int64 `json:"current_points" gorm:"default:0"`
	TotalEarned   int64 `json:"total_earned" gorm:"default:0"`
	TotalSpent    int64 `json:"total_spent" gorm:"default:0"`

	// Rolling monthly buckets, shifted by the monthly rollover job.
	// LastUpdatedMonth is a "2006-01" marker in the canonical timezone.
	ThisMonthEarned  int64  `json:"this_month_earned" gorm:"default:0"`
	ThisMonthSpent   int64  `json:"this_month_spent" gorm:"default:0"`
	LastMonthEarned  int64  `json:"last_month_earned" gorm:"default:0"`
	LastMonthSpent   int64  `json:"last_month_spent" gorm:"default:0"`
	LastUpdatedMonth string `json:"last_updated_month" gorm:"size:7;index"`

	// Savings balance, used as the leaderboard tiebreaker
	Savings float64 `json:"savings" gorm:"default:0"`

	Rank                 int `json:"rank" gorm:"default:0"`
	ChallengesCompleted  int `json:"challenges_completed" gorm:"default:0"`
	ChallengesInProgress int `json:"challenges_in_progress" gorm:"default:0"`
	StreakDays           int `json:"streak_days" gorm:"default:0"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
