// handlers/job_routes.go
package handlers

import (
	"errors"

	"career-counselor-service/middleware"
	"career-counselor-service/models"
	"career-counselor-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupJobRoutes(app *fiber.App, jobs *services.JobService, notifier *services.NotificationService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/jobs", func(c *fiber.Ctx) error {
		status := models.JobStatus(c.Query("status", string(models.JobStatusActive)))
		list, err := jobs.ListPostings(c.Query("career_field"), status)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list jobs",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"jobs": list})
	})

	securedGroup.Get("/jobs/:idOrSlug", func(c *fiber.Ctx) error {
		job, err := jobs.GetPosting(c.Params("idOrSlug"))
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load job",
				"cause": err.Error(),
			})
		}
		return c.JSON(job)
	})

	securedGroup.Post("/jobs/:id/apply", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var input services.ApplicationInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		application, reward, err := jobs.Apply(userID, c.Params("id"), input)
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		if errors.Is(err, services.ErrAlreadyApplied) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "you already applied to this job",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to submit application",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"application": application,
			"reward":      reward,
		})
	})

	securedGroup.Get("/user/applications", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := jobs.ListUserApplications(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list applications",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"applications": list})
	})

	securedGroup.Post("/jobs/:id/save", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		reward, err := jobs.SaveJob(userID, c.Params("id"))
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save job",
				"cause": err.Error(),
			})
		}
		notifier.AnnounceReward(userID, reward)
		return c.JSON(fiber.Map{"reward": reward})
	})

	securedGroup.Delete("/jobs/:id/save", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := jobs.UnsaveJob(userID, c.Params("id")); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to unsave job",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "job removed from saved list"})
	})

	securedGroup.Get("/user/saved-jobs", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := jobs.SavedJobs(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list saved jobs",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"saved_jobs": list})
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	adminGroup.Post("/jobs", func(c *fiber.Ctx) error {
		adminID := c.Locals("user_id").(string)
		var input services.JobInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if input.Title == "" || input.Company == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "title and company are required",
			})
		}
		job, err := jobs.CreatePosting(adminID, input)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create job posting",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(job)
	})

	adminGroup.Patch("/jobs/:id/status", func(c *fiber.Ctx) error {
		type Req struct {
			Status models.JobStatus `json:"status"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		job, err := jobs.UpdatePostingStatus(c.Params("id"), req.Status)
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update job status",
				"cause": err.Error(),
			})
		}
		return c.JSON(job)
	})

	adminGroup.Delete("/jobs/:id", func(c *fiber.Ctx) error {
		err := jobs.DeletePosting(c.Params("id"))
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to delete job",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "job deleted"})
	})

	adminGroup.Get("/applications", func(c *fiber.Ctx) error {
		adminID := c.Locals("user_id").(string)
		list, err := jobs.ListApplicationsForAdmin(adminID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list applications",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"applications": list})
	})

	adminGroup.Patch("/applications/:id/status", func(c *fiber.Ctx) error {
		type Req struct {
			Status     models.ApplicationStatus `json:"status"`
			AdminNotes string                   `json:"admin_notes"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		application, err := jobs.UpdateApplicationStatus(c.Params("id"), req.Status, req.AdminNotes)
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "application not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update application status",
				"cause": err.Error(),
			})
		}
		return c.JSON(application)
	})
}
