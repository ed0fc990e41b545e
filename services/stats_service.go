package services

import (
	"errors"

	"wellness-rewards-system/models"

	"gorm.io/gorm"
)

// StatsService is the read-only projection behind the profile screen: the
// user record, awarded achievements and the recent activity feed.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

func (s *StatsService) UserStats(userID string) (map[string]any, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	achievements, err := NewAchievementService(s.DB).ListForUser(userID)
	if err != nil {
		return nil, err
	}

	var recent []models.ActivityEvent
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(10).
		Find(&recent).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"id":                     user.ID,
		"display_name":           user.DisplayName,
		"current_points":         user.CurrentPoints,
		"total_earned":           user.TotalEarned,
		"total_spent":            user.TotalSpent,
		"this_month_earned":      user.ThisMonthEarned,
		"this_month_spent":       user.ThisMonthSpent,
		"last_month_earned":      user.LastMonthEarned,
		"last_month_spent":       user.LastMonthSpent,
		"savings":                user.Savings,
		"rank":                   user.Rank,
		"streak_days":            user.StreakDays,
		"challenges_completed":   user.ChallengesCompleted,
		"challenges_in_progress": user.ChallengesInProgress,
		"achievements":           achievements,
		"recent_activity":        recent,
	}, nil
}
