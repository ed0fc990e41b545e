package models

import "time"

// ActivityEvent is an immutable audit record appended on challenge
// completions and point earns. Display-only: nothing reads it back into
// decision logic.
type ActivityEvent struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`
	Type   string `gorm:"not null" json:"type"` // challenge_completed, points_earned, reward_redeemed
	Title  string `json:"title"`
	Points int64  `json:"points"`
	Icon   string `json:"icon"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
