package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/config"
	"github.com/mentora-labs/mentora-api/internal/database"
	"github.com/mentora-labs/mentora-api/internal/handler"
	"github.com/mentora-labs/mentora-api/internal/middleware"
	"github.com/mentora-labs/mentora-api/internal/models"
	"github.com/mentora-labs/mentora-api/internal/notify"
	"github.com/mentora-labs/mentora-api/internal/repository"
	"github.com/mentora-labs/mentora-api/internal/roster"
	"github.com/mentora-labs/mentora-api/internal/router"
	"github.com/mentora-labs/mentora-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Module{}, &models.Topic{}, &models.Student{}, &models.Assignment{}, &models.Submission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	notifier := notify.NewNopNotifier(logger)
	if cfg.NatsURL != "" {
		natsConn, err := database.ConnectNATS(cfg.NatsURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()

		notifier = notify.NewBrokerNotifier(redisClient, natsConn, cfg.ReminderChannelBase, logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	rosterProvider := roster.NewCachedProvider(
		roster.NewProvider(studentRepo),
		redisClient,
		cfg.DashboardCacheTTL,
		logger,
	)

	lifecycleService := service.NewLifecycleService(
		assignmentRepo,
		submissionRepo,
		moduleRepo,
		rosterProvider,
		cfg.ClassroomID,
		notifier,
		validate,
		logger,
	)
	selectionService := service.NewSelectionService(assignmentRepo, submissionRepo, lifecycleService, logger)
	dashboardService := service.NewTutorDashboardService(assignmentRepo, submissionRepo, rosterProvider, redisClient, cfg.DashboardCacheTTL, logger)
	seedService := service.NewSeedService(assignmentRepo, submissionRepo, studentRepo, cfg.SeedEnabled, logger)

	assignmentHandler := handler.NewAssignmentHandler(lifecycleService, logger)
	submissionHandler := handler.NewSubmissionHandler(lifecycleService, logger)
	moduleHandler := handler.NewModuleHandler(lifecycleService, logger)
	selectionHandler := handler.NewSelectionHandler(selectionService, validate, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, cfg.ClassroomID, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})

	var jwtMiddleware fiber.Handler
	if cfg.JWTSecret != "" {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}

	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler: assignmentHandler,
		SubmissionHandler: submissionHandler,
		ModuleHandler:     moduleHandler,
		SelectionHandler:  selectionHandler,
		DashboardHandler:  dashboardHandler,
		SeedHandler:       seedHandler,
		JWTMiddleware:     jwtMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
