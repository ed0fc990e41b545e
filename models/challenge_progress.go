package models

import "time"

// ChallengeProgress is the per-(user, challenge) state machine row. Created
// lazily on the first action, never hard-deleted; the composite unique index
// guarantees re-creation cannot duplicate the pair.
type ChallengeProgress struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string `gorm:"uniqueIndex:idx_user_challenge;not null" json:"user_id"`
	ChallengeID string `gorm:"uniqueIndex:idx_user_challenge;not null" json:"challenge_id"`

	Progress    int64 `json:"progress" gorm:"default:0"`
	Goal        int64 `json:"goal" gorm:"not null"`
	IsCompleted bool  `json:"is_completed" gorm:"default:false"`
	IsClaimed   bool  `json:"is_claimed" gorm:"default:false"`

	// Consecutive-day streak; LastCompletedDate is normalized to day
	// granularity in the canonical timezone.
	Streak            int        `json:"streak" gorm:"default:0"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty" gorm:"index"`

	// Remaining days for time-boxed challenges, decremented daily. Zero for
	// untimed challenges.
	DaysLeft int `json:"days_left" gorm:"default:0"`

	Timestamps
}
