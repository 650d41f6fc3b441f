// handlers/profile_routes.go
package handlers

import (
	"errors"
	"log"

	"career-counselor-service/middleware"
	"career-counselor-service/models"
	"career-counselor-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, users *services.UserService, engine *services.GamificationEngine, activities *services.ActivityService, referrals *services.ReferralService, resumes *services.ResumeService, notifier *services.NotificationService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	// Called by the profile service when an account is created. Seeds the
	// local mirror row, the gamification state (with the signup XP and the
	// welcome badge) and the role-based starter activities.
	app.Post("/internal/users/signup", func(c *fiber.Ctx) error {
		type Req struct {
			UserID       string `json:"user_id"`
			Email        string `json:"email"`
			FullName     string `json:"full_name"`
			TargetRole   string `json:"target_role"`
			ReferralCode string `json:"referral_code"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.UserID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id is required",
			})
		}

		if _, err := users.EnsureUser(req.UserID, req.Email, req.FullName); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create user record",
				"cause": err.Error(),
			})
		}
		if _, err := engine.EnsureGameState(req.UserID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create gamification state",
				"cause": err.Error(),
			})
		}

		result, err := engine.ApplyEvent(req.UserID, models.Event{Kind: models.ActionAccountCreated})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to apply signup reward",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(req.UserID, result)

		if req.TargetRole != "" {
			if _, err := activities.CreateForRole(req.UserID, req.TargetRole); err != nil {
				log.Printf("⚠️ Failed to seed activities for %s: %v", req.UserID, err)
			}
		}

		response := fiber.Map{
			"message": "user initialized",
			"reward":  result,
		}
		if req.ReferralCode != "" {
			outcome, redeemErr := referrals.Redeem(req.UserID, req.ReferralCode)
			if redeemErr != nil {
				log.Printf("⚠️ Referral redeem failed for %s: %v", req.UserID, redeemErr)
				response["referral_error"] = redeemErr.Error()
			} else {
				response["referral"] = outcome
			}
		}
		return c.JSON(response)
	})

	securedGroup.Get("/user/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		user, err := users.Get(userID)
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "profile not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}
		users.TouchLastSeen(userID)
		return c.JSON(user)
	})

	securedGroup.Put("/user/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var upd services.ProfileUpdate
		if err := c.BodyParser(&upd); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		user, err := users.SaveProfile(userID, upd)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(user)
	})

	securedGroup.Post("/user/profile/public-id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		publicID, err := users.GeneratePublicID(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to generate public profile id",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"public_id": publicID})
	})

	// Public profile page — no user context needed.
	app.Get("/p/:publicID", func(c *fiber.Ctx) error {
		user, err := users.GetByPublicID(c.Params("publicID"))
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "profile not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load public profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"full_name":    user.FullName,
			"target_role":  user.TargetRole,
			"career_field": user.CareerField,
			"skills":       user.Skills,
			"bio":          user.Bio,
			"portfolio":    user.Portfolio,
		})
	})

	securedGroup.Put("/user/portfolio", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Portfolio string `json:"portfolio"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		user, err := users.UpdatePortfolio(userID, req.Portfolio)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update portfolio",
				"cause": err.Error(),
			})
		}
		return c.JSON(user)
	})

	// Referrals
	securedGroup.Get("/user/referral-code", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		code, err := referrals.CodeFor(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get referral code",
				"cause": err.Error(),
			})
		}
		return c.JSON(code)
	})

	securedGroup.Post("/referrals/redeem", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Code string `json:"code"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		outcome, err := referrals.Redeem(userID, req.Code)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to redeem referral code",
				"cause": err.Error(),
			})
		}
		return c.JSON(outcome)
	})

	securedGroup.Get("/user/referral-stats", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		stats, err := referrals.Stats(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load referral stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(stats)
	})

	// Resumes
	securedGroup.Post("/user/resumes", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		resume, reward, err := resumes.Create(userID, req.Title, req.Content)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create resume",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"resume": resume,
			"reward": reward,
		})
	})

	securedGroup.Get("/user/resumes", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := resumes.List(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list resumes",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"resumes": list})
	})

	securedGroup.Get("/user/resumes/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		resume, err := resumes.Get(c.Params("id"), userID)
		if errors.Is(err, services.ErrResumeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "resume not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load resume",
				"cause": err.Error(),
			})
		}
		return c.JSON(resume)
	})

	securedGroup.Put("/user/resumes/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		type Req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		resume, err := resumes.Update(c.Params("id"), userID, req.Title, req.Content)
		if errors.Is(err, services.ErrResumeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "resume not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update resume",
				"cause": err.Error(),
			})
		}
		return c.JSON(resume)
	})

	securedGroup.Delete("/user/resumes/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		err := resumes.Delete(c.Params("id"), userID)
		if errors.Is(err, services.ErrResumeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "resume not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to delete resume",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "resume deleted"})
	})

	securedGroup.Post("/user/resumes/:id/attachment", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		file, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "file is required",
				"cause": err.Error(),
			})
		}
		resume, err := resumes.AttachFile(c.Params("id"), userID, file)
		if errors.Is(err, services.ErrResumeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "resume not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to upload attachment",
				"cause": err.Error(),
			})
		}
		return c.JSON(resume)
	})
}
