package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"flowx-relief/internal/config"
	"flowx-relief/internal/domain"
	"flowx-relief/internal/handler"
	"flowx-relief/internal/jobs"
	"flowx-relief/internal/middleware"
	"flowx-relief/internal/pkg/i18n"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (caching and rate limiting disabled)", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (report export will not work)", err)
		minioClient = nil
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	runner := jobs.NewRunner(repos.Flood, repos.Session, cfg.Location())
	if err := runner.Start(jobs.Schedules{
		FloodHousekeeping: cfg.FloodHousekeepingSchedule,
		SessionPurge:      cfg.SessionPurgeSchedule,
	}); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services, rdb, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down")
		runner.Stop()
		_ = app.Shutdown()
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services, rdb *redis.Client, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/register/:role", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/logout", h.Auth.Logout)

	// public
	v1.Get("/floods", h.Flood.List)
	v1.Get("/floods/current", h.Flood.Current)
	v1.Get("/floods/:id", h.Flood.Get)
	v1.Get("/floods/:id/details", h.Flood.ListDetails)
	v1.Get("/floods/:id/statistics", h.Flood.Statistics)
	v1.Post("/donations", h.Donation.Create)
	v1.Get("/donations/statistics", h.Donation.Statistics)
	v1.Get("/announcements", h.Announcement.List)
	v1.Get("/announcements/:id", h.Announcement.Get)
	v1.Get("/subsidies", h.Subsidy.List)

	area := v1.Group("/area")
	area.Get("/districts", h.Area.Districts)
	area.Get("/districts/:id/divisional-secretariats", h.Area.DivisionalSecretariats)
	area.Get("/divisional-secretariats/:id/gn-divisions", h.Area.GNDivisions)
	area.Get("/:type/:id/name", h.Area.Name)

	protected := v1.Group("", middleware.AuthRequired(services.Auth))
	staff := middleware.RequireStaff()
	admin := middleware.RequireRole(domain.RoleAdmin)
	officer := middleware.RequireRole(domain.RoleGovernmentOfficer)

	protected.Get("/auth/me", h.Auth.Me)
	protected.Put("/users/me", h.User.UpdateProfile)
	protected.Put("/users/:id/active", admin, h.User.SetActive)

	requests := protected.Group("/requests")
	requests.Post("/", middleware.RequireRole(domain.RoleCitizen),
		middleware.RateLimit(rdb, "requests", cfg.RequestRateLimit, cfg.RequestRateWindow), h.Request.Create)
	requests.Get("/:role/:view", h.Request.List)
	requests.Get("/:id", h.Request.Get)
	requests.Put("/:id/status", h.Request.Transition)

	floods := protected.Group("/floods", admin)
	floods.Post("/", h.Flood.Create)
	floods.Put("/:id", h.Flood.Update)
	floods.Put("/:id/details", h.Flood.UpsertDetail)

	subsidies := protected.Group("/subsidies")
	subsidies.Post("/", officer, h.Subsidy.Create)
	subsidies.Put("/:id", officer, h.Subsidy.Update)
	subsidies.Post("/:id/requests", middleware.RequireRole(domain.RoleGramaSevaka), h.Subsidy.CreateRequest)

	shelters := protected.Group("/shelters", staff)
	shelters.Get("/", h.Shelter.List)
	shelters.Post("/", officer, h.Shelter.Create)
	shelters.Put("/:id", officer, h.Shelter.Update)

	announcements := protected.Group("/announcements", staff)
	announcements.Post("/", h.Announcement.Create)
	announcements.Delete("/:id", h.Announcement.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	protected.Get("/dashboard", h.Dashboard.GetStats)
	protected.Post("/reports/history", staff, h.Report.ExportHistory)

	audit := protected.Group("/audit", admin)
	audit.Get("/recent", h.Audit.GetRecentActivities)
	audit.Get("/:entity/:id", h.Audit.ListByEntity)
}
