package models

import "time"

// AchievementDef: static trigger config. Threshold keys reference User
// counters (challenges_completed, streak_days, total_earned, total_spent).
type AchievementDef struct {
	Code        string
	Name        string
	Description string
	Icon        string
	Rarity      string // common, rare, epic, legendary
	Threshold   map[string]int64
}

// UserAchievement: awarded instance, at most one per (user, code).
type UserAchievement struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	Code      string    `gorm:"uniqueIndex:idx_user_achievement;not null" json:"code"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// AchievementTriggers are evaluated after every completion and credit.
var AchievementTriggers = []AchievementDef{
	{
		Code:        "FIRST_CHALLENGE",
		Name:        "First Steps",
		Description: "Completed your first challenge",
		Icon:        "flag",
		Rarity:      "common",
		Threshold:   map[string]int64{"challenges_completed": 1},
	},
	{
		Code:        "WEEK_WARRIOR",
		Name:        "Week Warrior",
		Description: "Kept a streak alive for 7 days",
		Icon:        "flame",
		Rarity:      "rare",
		Threshold:   map[string]int64{"streak_days": 7},
	},
	{
		Code:        "POINT_COLLECTOR",
		Name:        "Point Collector",
		Description: "Earned 1,000 lifetime points",
		Icon:        "gem",
		Rarity:      "rare",
		Threshold:   map[string]int64{"total_earned": 1000},
	},
	{
		Code:        "CHALLENGE_VETERAN",
		Name:        "Challenge Veteran",
		Description: "Completed 5 challenges",
		Icon:        "trophy",
		Rarity:      "epic",
		Threshold:   map[string]int64{"challenges_completed": 5},
	},
	{
		Code:        "BIG_SPENDER",
		Name:        "Treat Yourself",
		Description: "Redeemed 500 points on rewards",
		Icon:        "gift",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_spent": 500},
	},
}
