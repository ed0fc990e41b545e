package models

import "time"

// Trend values for a leaderboard row relative to the prior snapshot.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendSteady = "steady"
)

// LeaderboardSnapshot is one row per user per refresh. The whole set is
// replaced on refresh; the prior set is read once for trend computation and
// then overwritten via per-user upserts.
type LeaderboardSnapshot struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName string `json:"display_name"`

	Points        int64   `json:"points"`
	Savings       float64 `json:"savings"`
	Rank          int     `json:"rank"`
	Trend         string  `json:"trend"`
	PercentChange float64 `json:"percent_change"`

	SnapshotAt time.Time `json:"snapshot_at"`
}
