// handlers/challenge_routes.go
package handlers

import (
	"errors"

	"wellness-rewards-system/middleware"
	"wellness-rewards-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService, rules *services.RuleRegistry) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	// Registry catalog merged with the caller's progress overlay.
	securedGroup.Get("/challenges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		progress, err := challengeService.ProgressFor(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load challenge progress",
				"cause": err.Error(),
			})
		}

		var response []fiber.Map
		for _, def := range rules.All() {
			entry := fiber.Map{
				"id":            def.ID,
				"title":         def.Title,
				"description":   def.Description,
				"icon":          def.Icon,
				"category":      def.Category,
				"goal":          def.Goal,
				"reward_points": def.RewardPoints,
				"daily_streak":  def.DailyStreak,
				"recurring":     def.Recurring,
				"progress":      int64(0),
				"is_completed":  false,
				"is_claimed":    false,
				"streak":        0,
				"days_left":     def.DurationDays,
			}
			if row, ok := progress[def.ID]; ok {
				entry["progress"] = row.Progress
				entry["is_completed"] = row.IsCompleted
				entry["is_claimed"] = row.IsClaimed
				entry["streak"] = row.Streak
				entry["days_left"] = row.DaysLeft
			}
			response = append(response, entry)
		}
		return c.JSON(response)
	})

	securedGroup.Post("/challenges/:id/action", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		challengeID := c.Params("id")

		var req struct {
			Action string `json:"action"`
			Amount *int64 `json:"amount"`
			Value  *int64 `json:"value"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.Action == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action is required"})
		}

		prog, err := challengeService.ApplyAction(userID, challengeID, req.Action, services.ActionPayload{
			Amount: req.Amount,
			Value:  req.Value,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAction):
				// Non-fatal no-op: the action is not part of this
				// challenge's vocabulary, state is unchanged.
				return c.JSON(fiber.Map{"ignored": true, "challenge_id": challengeID})
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrInvalidChallenge), errors.Is(err, services.ErrInvalidRequest):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to apply action",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(prog)
	})

	// Claim toggle only; the points were already credited on completion.
	securedGroup.Post("/challenges/:id/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		challengeID := c.Params("id")

		prog, err := challengeService.ToggleClaim(userID, challengeID)
		if err != nil {
			if errors.Is(err, services.ErrProgressNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "challenge not started"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to toggle claim",
				"cause": err.Error(),
			})
		}
		return c.JSON(prog)
	})
}
