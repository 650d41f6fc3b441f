// handlers/community_routes.go
package handlers

import (
	"errors"
	"strconv"

	"career-counselor-service/middleware"
	"career-counselor-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCommunityRoutes(app *fiber.App, forum *services.ForumService, social *services.SocialService, companies *services.CompanyService, users *services.UserService, notifier *services.NotificationService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	// Forum
	securedGroup.Post("/forum/posts", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			CareerField string `json:"career_field"`
			Title       string `json:"title"`
			Content     string `json:"content"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.Title == "" || req.Content == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "title and content are required",
			})
		}

		authorName := userID
		if user, err := users.Get(userID); err == nil && user.FullName != "" {
			authorName = user.FullName
		}

		post, reward, err := forum.CreatePost(userID, authorName, req.CareerField, req.Title, req.Content)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create post",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"post":   post,
			"reward": reward,
		})
	})

	securedGroup.Get("/forum/posts", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		posts, err := forum.ListPosts(c.Query("career_field"), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list posts",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"posts": posts})
	})

	securedGroup.Get("/forum/posts/:idOrSlug", func(c *fiber.Ctx) error {
		post, err := forum.GetPost(c.Params("idOrSlug"))
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "post not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load post",
				"cause": err.Error(),
			})
		}
		return c.JSON(post)
	})

	// Connections & mentors
	securedGroup.Post("/connections/:userID/request", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Message string `json:"message"`
		}
		var req Req
		_ = c.BodyParser(&req) // message is optional

		connection, reward, err := social.SendRequest(userID, c.Params("userID"), req.Message)
		if errors.Is(err, services.ErrConnectionExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "connection already exists",
			})
		}
		if errors.Is(err, services.ErrSelfConnection) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "cannot connect with yourself",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to send connection request",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"connection": connection,
			"reward":     reward,
		})
	})

	securedGroup.Post("/connections/:id/accept", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		connection, reward, err := social.Accept(c.Params("id"), userID)
		if errors.Is(err, services.ErrConnectionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "connection request not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to accept connection",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.JSON(fiber.Map{
			"connection": connection,
			"reward":     reward,
		})
	})

	securedGroup.Get("/user/connections", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		connections, err := social.Connections(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list connections",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"connections": connections})
	})

	securedGroup.Get("/user/connections/pending", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		pending, err := social.PendingRequests(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list pending requests",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"pending": pending})
	})

	securedGroup.Get("/mentors", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		mentors, err := social.FindMentors(userID, c.Query("career_field"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to find mentors",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"mentors": mentors})
	})

	// Company reviews
	securedGroup.Post("/companies/reviews", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var input services.ReviewInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		review, reward, err := companies.AddReview(userID, input)
		if errors.Is(err, services.ErrInvalidRating) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "rating must be between 1 and 5",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to add review",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"review": review,
			"reward": reward,
		})
	})

	securedGroup.Get("/companies/:name/reviews", func(c *fiber.Ctx) error {
		reviews, err := companies.Reviews(c.Params("name"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list reviews",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"reviews": reviews})
	})

	securedGroup.Get("/companies/:name/insights", func(c *fiber.Ctx) error {
		insights, err := companies.Insights(c.Params("name"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute insights",
				"cause": err.Error(),
			})
		}
		return c.JSON(insights)
	})
}
