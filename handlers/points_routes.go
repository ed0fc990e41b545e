// handlers/points_routes.go
package handlers

import (
	"errors"
	"time"

	"wellness-rewards-system/middleware"
	"wellness-rewards-system/models"
	"wellness-rewards-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupPointsRoutes(app *fiber.App, ledgerService *services.LedgerService, historyService *services.HistoryService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Post("/points/earn", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Action string `json:"action"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		entry, err := ledgerService.EarnPoints(userID, req.Action)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRequest):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to earn points",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(entry)
	})

	securedGroup.Get("/user/points/history", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		history, err := historyService.PointsHistory(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build points history",
				"cause": err.Error(),
			})
		}
		return c.JSON(history)
	})

	securedGroup.Get("/rewards", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var rewards []models.Reward
		if err := ledgerService.DB.
			Where("user_id = ? AND status = ?", userID, models.RewardStatusPublished).
			Order("created_at DESC").
			Find(&rewards).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch rewards"})
		}
		return c.JSON(rewards)
	})

	securedGroup.Post("/rewards/:id/redeem", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		rewardID := c.Params("id")

		if _, err := uuid.Parse(rewardID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid reward ID"})
		}

		reward, entry, err := ledgerService.RedeemReward(userID, rewardID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRewardNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reward not found or not owned by user"})
			case errors.Is(err, services.ErrRewardUnavailable):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reward is not available for claiming"})
			case errors.Is(err, services.ErrInsufficientPoints):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "insufficient points"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to redeem reward",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"reward": reward, "entry": entry})
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	adminGroup.Post("/points/grant", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
			Points int64  `json:"points"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		entry, err := ledgerService.Credit(req.UserID, req.Points, req.Reason, "admin_grant")
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrInvalidRequest):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "points grant failed",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"message": "points granted successfully", "entry": entry})
	})

	adminGroup.Post("/users", func(c *fiber.Ctx) error {
		var req struct {
			DisplayName string `json:"display_name"`
		}
		if err := c.BodyParser(&req); err != nil || req.DisplayName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "display_name is required"})
		}

		user := models.User{
			ID:               uuid.NewString(),
			DisplayName:      req.DisplayName,
			LastUpdatedMonth: ledgerService.Clock.CurrentMonth(),
		}
		if err := ledgerService.DB.Create(&user).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create user"})
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	adminGroup.Post("/rewards", func(c *fiber.Ctx) error {
		var req struct {
			Title      string                `json:"title"`
			Category   models.RewardCategory `json:"category"`
			Emoji      string                `json:"emoji"`
			Excerpt    string                `json:"excerpt"`
			PointsCost int64                 `json:"points_cost"`
			ExpiryDate *time.Time            `json:"expiry_date"`
			UserID     string                `json:"user_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.Title == "" || req.PointsCost <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and a positive points_cost are required"})
		}

		reward := models.Reward{
			ID:         uuid.NewString(),
			Title:      req.Title,
			Category:   req.Category,
			Emoji:      req.Emoji,
			Excerpt:    req.Excerpt,
			PointsCost: req.PointsCost,
			ExpiryDate: req.ExpiryDate,
			UserID:     req.UserID,
			Status:     models.RewardStatusPublished,
		}
		if err := ledgerService.DB.Create(&reward).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create reward"})
		}
		return c.Status(fiber.StatusCreated).JSON(reward)
	})
}
