package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
	config "github.com/socialtrend/automator/configs"
	"github.com/socialtrend/automator/internal/api/handlers"
	"github.com/socialtrend/automator/internal/api/middleware"
	"github.com/socialtrend/automator/internal/client"
	job "github.com/socialtrend/automator/internal/jobs"
	"github.com/socialtrend/automator/internal/queue"
	"github.com/socialtrend/automator/internal/repository"
	"github.com/socialtrend/automator/internal/service"
	"github.com/socialtrend/automator/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	if err := repository.RunMigrations(context.Background(), db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	asynqClient := asynq.NewClient(redisConn)
	defer asynqClient.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewScheduledPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db, []byte(cfg.SecretKey))
	trendRepo := repository.NewTrendRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)

	auditService := service.NewAuditService(auditLogRepo)
	authService := service.NewAuthService(userRepo, auditService)
	userService := service.NewUserService(userRepo)
	scheduleService := service.NewScheduleService(postRepo, socialAccountRepo, auditService)
	webhookService := service.NewWebhookService(postRepo)
	trendService := service.NewTrendService(trendRepo)
	accountService := service.NewAccountService(socialAccountRepo)
	r2Service := service.NewR2Service(*cfg)
	mediaService := service.NewMediaService(mediaAssetRepo, r2Service)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "SocialTrend Automator API",
			"version": "1.0.0",
		})
	})
	api.Get("/metrics", adaptor.HTTPHandler(telemetry.Handler()))

	auth := handlers.NewAuthHandler(*cfg, authService)
	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)

	webhook := handlers.NewWebhookHandler(webhookService)
	api.Post("/upload/callback", webhook.UploadCallback)

	authed := api.Group("", authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	authed.Get("/user", user.GetUserInfo)

	trend := handlers.NewTrendHandler(trendService)
	authed.Get("/trends", trend.ListTrends)

	schedule := handlers.NewScheduleHandler(scheduleService)
	authed.Post("/schedule", schedule.CreateSchedule)
	authed.Get("/posts", schedule.ListPosts)

	account := handlers.NewAccountHandler(accountService)
	authed.Post("/accounts", account.ConnectAccount)
	authed.Get("/accounts", account.ListAccounts)
	authed.Post("/accounts/remove", account.RemoveAccount)

	media := handlers.NewMediaHandler(mediaService)
	authed.Post("/media/upload", media.UploadMedia)
	authed.Get("/media", media.ListMedia)

	// queue worker
	uploader := client.NewAutomationClient(cfg.AutomationURL)
	worker := queue.NewWorker(postRepo, uploader, cfg.AppBaseURL+"/api/upload/callback")

	// cron: per-minute sweep promoting due posts into upload tasks
	dispatchJob := job.NewDispatchDueJob(postRepo, queue.NewClient(asynqClient))

	c := cron.New()
	c.AddFunc("@every 1m", dispatchJob.Run)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				queue.UploadQueue: 10,
			},
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeUploadPost, worker.HandleUploadPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(cfg.ServerAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s", cfg.ServerAddr)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
