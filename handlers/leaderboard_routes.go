// handlers/leaderboard_routes.go
package handlers

import (
	"wellness-rewards-system/middleware"
	"wellness-rewards-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboardService *services.LeaderboardService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/leaderboard", func(c *fiber.Ctx) error {
		rows, err := leaderboardService.Get()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(rows)
	})

	securedGroup.Post("/leaderboard/refresh", func(c *fiber.Ctx) error {
		written, err := leaderboardService.Refresh(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "leaderboard refresh failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "leaderboard refreshed", "rows": written})
	})
}
