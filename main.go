package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"career-counselor-service/handlers"
	"career-counselor-service/middleware"
	"career-counselor-service/models"
	"career-counselor-service/services"
	"career-counselor-service/utils"
	"career-counselor-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB — resume attachments
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitStorage(); err != nil {
		log.Fatal("failed to initialize object storage client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.CareerUser{},
		&models.UserGameState{},
		&models.UserBadge{},
		&models.Activity{},
		&models.Roadmap{},
		&models.SavedRoadmap{},
		&models.JobPosting{},
		&models.JobApplication{},
		&models.SavedJob{},
		&models.ForumPost{},
		&models.Connection{},
		&models.CompanyReview{},
		&models.LearningPath{},
		&models.ReferralCode{},
		&models.Referral{},
		&models.Resume{},
		&models.Notification{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	engine := services.NewGamificationEngine(db)
	notifier := services.NewNotificationService(db)
	userService := services.NewUserService(db)
	aiClient := services.NewAIClientFromEnv()
	activityService := services.NewActivityService(db, engine)
	roadmapService := services.NewRoadmapService(db, aiClient, engine)
	jobService := services.NewJobService(db, engine, notifier)
	forumService := services.NewForumService(db, engine)
	socialService := services.NewSocialService(db, engine, notifier)
	companyService := services.NewCompanyService(db, engine)
	learningPathService := services.NewLearningPathService(db, engine)
	referralService := services.NewReferralService(db, engine)
	resumeService := services.NewResumeService(db, engine)
	insightsService := services.NewCareerInsightsService(aiClient, engine)
	dashboardService := services.NewDashboardService(db, engine)

	profileServiceURL := os.Getenv("PROFILE_SERVICE_URL")
	if profileServiceURL == "" {
		log.Fatal("PROFILE_SERVICE_URL environment variable not set")
	}
	careerServiceToken := os.Getenv("CAREER_SERVICE_TOKEN")
	if careerServiceToken == "" {
		log.Fatal("CAREER_SERVICE_TOKEN environment variable not set")
	}

	syncWorker := workers.NewProfileSyncWorker(db, profileServiceURL, "/api/v1/public/profiles", careerServiceToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncWorker.Start(ctx)
	jobService.StartExpiryScheduler()

	// ✅ Setup routes — enforced Gateway auth + user context on secured paths
	handlers.SetupGamificationRoutes(app, engine, dashboardService, notifier)
	handlers.SetupProfileRoutes(app, userService, engine, activityService, referralService, resumeService, notifier)
	handlers.SetupCareerRoutes(app, activityService, roadmapService, learningPathService, insightsService, notifier)
	handlers.SetupJobRoutes(app, jobService, notifier)
	handlers.SetupCommunityRoutes(app, forumService, socialService, companyService, userService, notifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Profile Sync Worker running")
	log.Println("✅ Job expiry scheduler running (every 10m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)
	if aiClient == nil {
		log.Println("⚠️  AI_API_KEY not set — career insights will use static fallbacks")
	}

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
