package models

import "time"

// EntryKind splits the ledger into the Reward and Redemption streams.
type EntryKind string

const (
	EntryReward     EntryKind = "reward"
	EntryRedemption EntryKind = "redemption"
)

// LedgerEntry is an immutable, append-only record of a point-balance change.
// Amount is signed: positive for rewards, negative for redemptions. The sum
// of a user's entries must always equal User.CurrentPoints.
type LedgerEntry struct {
	ID       string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string    `gorm:"index;not null" json:"user_id"`
	Kind     EntryKind `gorm:"not null" json:"kind"`
	Amount   int64     `gorm:"not null" json:"amount"`
	Reason   string    `json:"reason"`
	Category string    `json:"category"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
