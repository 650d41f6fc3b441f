// handlers/career_routes.go
package handlers

import (
	"errors"
	"strconv"

	"career-counselor-service/middleware"
	"career-counselor-service/models"
	"career-counselor-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCareerRoutes(app *fiber.App, activities *services.ActivityService, roadmaps *services.RoadmapService, paths *services.LearningPathService, insights *services.CareerInsightsService, notifier *services.NotificationService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	// Activities & quizzes
	securedGroup.Get("/user/activities", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := activities.List(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list activities",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"activities": list})
	})

	securedGroup.Post("/user/activities/seed", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Role string `json:"role"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		created, err := activities.CreateForRole(userID, req.Role)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to seed activities",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"activities": created})
	})

	securedGroup.Get("/user/activities/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		activity, err := activities.Get(c.Params("id"), userID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "activity not found",
				"cause": err.Error(),
			})
		}
		return c.JSON(activity)
	})

	securedGroup.Get("/user/activities/:id/quiz", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		activity, quiz, err := activities.QuizForActivity(c.Params("id"), userID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "quiz not found",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"activity": activity,
			"quiz":     quiz,
		})
	})

	securedGroup.Post("/user/activities/:id/quiz", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Answers map[string]int `json:"answers"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		result, reward, err := activities.SubmitQuiz(c.Params("id"), userID, req.Answers)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to grade quiz",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.JSON(fiber.Map{
			"result": result,
			"reward": reward,
		})
	})

	securedGroup.Post("/user/activities/:id/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		activity, err := activities.MarkCompleted(c.Params("id"), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to complete activity",
				"cause": err.Error(),
			})
		}
		return c.JSON(activity)
	})

	// Roadmaps
	securedGroup.Post("/user/roadmaps", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Goal    string `json:"goal"`
			Context string `json:"context"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.Goal == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "goal is required",
			})
		}
		roadmap, reward, err := roadmaps.Generate(userID, req.Goal, req.Context)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to generate roadmap",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"roadmap": roadmap,
			"reward":  reward,
		})
	})

	securedGroup.Get("/user/roadmaps", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := roadmaps.ListForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list roadmaps",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"roadmaps": list})
	})

	securedGroup.Get("/user/roadmaps/saved", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := roadmaps.SavedForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list saved roadmaps",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"saved": list})
	})

	securedGroup.Get("/roadmaps/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		roadmap, err := roadmaps.Get(c.Params("id"), userID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "roadmap not found",
				"cause": err.Error(),
			})
		}
		return c.JSON(roadmap)
	})

	securedGroup.Post("/user/roadmaps/:id/share", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		roadmap, err := roadmaps.Share(c.Params("id"), userID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "roadmap not found",
				"cause": err.Error(),
			})
		}
		return c.JSON(roadmap)
	})

	securedGroup.Post("/user/roadmaps/:id/save", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		reward, err := roadmaps.Save(c.Params("id"), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save roadmap",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.JSON(fiber.Map{"reward": reward})
	})

	// Learning paths
	securedGroup.Post("/user/learning-paths", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			CareerField string             `json:"career_field"`
			Milestones  []models.Milestone `json:"milestones"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		path, reward, err := paths.Create(userID, req.CareerField, req.Milestones)
		if errors.Is(err, services.ErrNoMilestones) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "at least one milestone is required",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create learning path",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"learning_path": path,
			"reward":        reward,
		})
	})

	securedGroup.Get("/user/learning-paths", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := paths.ListForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list learning paths",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"learning_paths": list})
	})

	securedGroup.Post("/user/learning-paths/:id/milestones/:index/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "milestone index must be a number",
			})
		}
		path, reward, err := paths.CompleteMilestone(c.Params("id"), userID, index)
		if errors.Is(err, services.ErrPathNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "learning path not found",
			})
		}
		if errors.Is(err, services.ErrBadMilestone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "milestone index out of range",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to complete milestone",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.JSON(fiber.Map{
			"learning_path": path,
			"reward":        reward,
		})
	})

	// Career intelligence (AI-backed, with static fallbacks)
	securedGroup.Get("/careers/explore", func(c *fiber.Ctx) error {
		career := c.Query("career")
		if career == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "career query param is required",
			})
		}
		return c.JSON(insights.ExploreCareer(career))
	})

	securedGroup.Get("/careers/courses", func(c *fiber.Ctx) error {
		role := c.Query("role")
		if role == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "role query param is required",
			})
		}
		return c.JSON(fiber.Map{"courses": insights.CourseRecommendations(role)})
	})

	securedGroup.Get("/careers/market-insights", func(c *fiber.Ctx) error {
		career := c.Query("career")
		if career == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "career query param is required",
			})
		}
		return c.JSON(insights.MarketInsights(career, c.Query("region")))
	})

	securedGroup.Post("/careers/salary-tips", func(c *fiber.Ctx) error {
		type Req struct {
			Role          string `json:"role"`
			CurrentSalary string `json:"current_salary"`
			OfferAmount   string `json:"offer_amount"`
			Location      string `json:"location"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		return c.JSON(insights.SalaryNegotiationTips(req.Role, req.CurrentSalary, req.OfferAmount, req.Location))
	})

	securedGroup.Get("/careers/interview-questions", func(c *fiber.Ctx) error {
		role := c.Query("role")
		if role == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "role query param is required",
			})
		}
		return c.JSON(fiber.Map{"questions": insights.InterviewQuestions(role)})
	})

	securedGroup.Post("/careers/chat", func(c *fiber.Ctx) error {
		type Req struct {
			Message string `json:"message"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.Message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "message is required",
			})
		}
		return c.JSON(fiber.Map{"reply": insights.Chat(req.Message)})
	})

	securedGroup.Post("/user/personality-test", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Answers string `json:"answers"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		result, reward, err := insights.PersonalityTest(userID, req.Answers)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to evaluate personality test",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.JSON(fiber.Map{
			"result": result,
			"reward": reward,
		})
	})
}
