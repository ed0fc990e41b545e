package services

import (
	"log"

	"wellness-rewards-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// AutoAward checks every achievement trigger for a user after a counter
// update and awards the ones newly met, each at most once.
func (s *AchievementService) AutoAward(userID string) error {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return err
	}

	for _, trigger := range models.AchievementTriggers {
		if !s.meetsThreshold(&user, trigger.Threshold) {
			continue
		}
		var count int64
		s.DB.Model(&models.UserAchievement{}).
			Where("user_id = ? AND code = ?", userID, trigger.Code).
			Count(&count)
		if count == 0 {
			award := models.UserAchievement{
				ID:     uuid.NewString(),
				UserID: userID,
				Code:   trigger.Code,
			}
			if err := s.DB.Create(&award).Error; err != nil {
				return err
			}
			log.Printf("[Achievements] %s → %s", trigger.Name, userID)
		}
	}
	return nil
}

func (s *AchievementService) meetsThreshold(user *models.User, req map[string]int64) bool {
	for key, required := range req {
		switch key {
		case "challenges_completed":
			if int64(user.ChallengesCompleted) < required {
				return false
			}
		case "streak_days":
			if int64(user.StreakDays) < required {
				return false
			}
		case "total_earned":
			if user.TotalEarned < required {
				return false
			}
		case "total_spent":
			if user.TotalSpent < required {
				return false
			}
		case "current_points":
			if user.CurrentPoints < required {
				return false
			}
		}
	}
	return true
}

// ListForUser resolves awarded achievements against the static catalog.
func (s *AchievementService) ListForUser(userID string) ([]map[string]any, error) {
	var awards []models.UserAchievement
	if err := s.DB.Where("user_id = ?", userID).Order("awarded_at ASC").Find(&awards).Error; err != nil {
		return nil, err
	}

	byCode := make(map[string]models.AchievementDef, len(models.AchievementTriggers))
	for _, def := range models.AchievementTriggers {
		byCode[def.Code] = def
	}

	out := make([]map[string]any, 0, len(awards))
	for _, a := range awards {
		def, ok := byCode[a.Code]
		if !ok {
			continue // trigger retired from the catalog
		}
		out = append(out, map[string]any{
			"code":        def.Code,
			"name":        def.Name,
			"description": def.Description,
			"icon":        def.Icon,
			"rarity":      def.Rarity,
			"awarded_at":  a.AwardedAt,
		})
	}
	return out, nil
}
