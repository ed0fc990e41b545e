package models

import (
	"time"

	"gorm.io/gorm"
)

type RewardCategory string

const (
	RewardCategoryGiftCard  RewardCategory = "gift_card"
	RewardCategoryCashback  RewardCategory = "cashback"
	RewardCategoryFeeCredit RewardCategory = "fee_credit"
	RewardCategoryPerk      RewardCategory = "perk"
)

// RewardStatus indicates whether the reward is visible to its user.
type RewardStatus string

const (
	RewardStatusDraft     RewardStatus = "draft"
	RewardStatusPublished RewardStatus = "published"
	RewardStatusArchived  RewardStatus = "archived"
)

// Reward is a redeemable catalog item assigned to a user. Claiming debits
// the points ledger by PointsCost; Claimed is a toggle, so unclaiming flips
// it back without a refund and re-claiming does not re-charge.
type Reward struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Category    RewardCategory `gorm:"not null" json:"category"`
	Emoji       string         `gorm:"size:10" json:"emoji"`
	Excerpt     string         `gorm:"type:text" json:"excerpt"`
	PointsCost  int64          `gorm:"not null" json:"points_cost"`
	ExpiryDate  *time.Time     `json:"expiry_date,omitempty"`
	Claimed     bool           `gorm:"default:false" json:"claimed"`
	// Paid is set on the first real debit. Later claim flips are free in
	// both directions: no refund on unclaim, no re-charge on re-claim.
	Paid        bool           `gorm:"default:false" json:"paid"`
	UserID      string         `gorm:"index" json:"user_id"`
	Status      RewardStatus   `gorm:"not null;default:'published'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
