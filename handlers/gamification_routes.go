// handlers/gamification_routes.go
package handlers

import (
	"errors"
	"strconv"

	"career-counselor-service/middleware"
	"career-counselor-service/models"
	"career-counselor-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGamificationRoutes(app *fiber.App, engine *services.GamificationEngine, dashboard *services.DashboardService, notifier *services.NotificationService) {
	// 🔐 Secured routes — require user context (userID, roles)
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/user/gamification", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		state, err := engine.GetState(userID)
		if errors.Is(err, services.ErrUserNotFound) {
			state, err = engine.EnsureGameState(userID)
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load gamification state",
				"cause": err.Error(),
			})
		}
		return c.JSON(state)
	})

	// The frontend calls this on every page load; the engine pays the login
	// XP at most once per calendar day, so repeats are a no-op.
	securedGroup.Post("/gamification/update-streak", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		result, err := engine.ApplyEvent(userID, models.Event{Kind: models.ActionDailyLogin})
		if errors.Is(err, services.ErrUserNotFound) {
			if _, ensureErr := engine.EnsureGameState(userID); ensureErr == nil {
				result, err = engine.ApplyEvent(userID, models.Event{Kind: models.ActionDailyLogin})
			}
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update streak",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, result)

		state, err := engine.GetState(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reload gamification state",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"reward": result,
			"state":  state,
		})
	})

	securedGroup.Get("/leaderboard", func(c *fiber.Ctx) error {
		topN, _ := strconv.Atoi(c.Query("top", "10"))
		entries, err := dashboard.Leaderboard(topN)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"leaderboard": entries})
	})

	securedGroup.Get("/user/dashboard", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		data, err := dashboard.DashboardData(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load dashboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(data)
	})

	securedGroup.Get("/user/progress-report", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		report, err := dashboard.ProgressReport(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build progress report",
				"cause": err.Error(),
			})
		}
		return c.JSON(report)
	})

	securedGroup.Get("/user/notifications", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		unreadOnly := c.Query("unread") == "true"
		notifications, err := notifier.List(userID, unreadOnly)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load notifications",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"notifications": notifications})
	})

	securedGroup.Patch("/user/notifications/:id/read", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		found, err := notifier.MarkRead(c.Params("id"), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notification read",
				"cause": err.Error(),
			})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "notification not found",
			})
		}
		return c.JSON(fiber.Map{"message": "marked as read"})
	})

	securedGroup.Post("/user/notifications/read-all", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		count, err := notifier.MarkAllRead(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notifications read",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"marked": count})
	})
}
