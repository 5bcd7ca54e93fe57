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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/config"
	"github.com/noah-isme/promptclass-api/internal/database"
	"github.com/noah-isme/promptclass-api/internal/events"
	"github.com/noah-isme/promptclass-api/internal/handler"
	"github.com/noah-isme/promptclass-api/internal/middleware"
	"github.com/noah-isme/promptclass-api/internal/models"
	"github.com/noah-isme/promptclass-api/internal/repository"
	"github.com/noah-isme/promptclass-api/internal/router"
	"github.com/noah-isme/promptclass-api/internal/service"
	"github.com/noah-isme/promptclass-api/pkg/ai"
	"github.com/noah-isme/promptclass-api/pkg/imagegen"
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

	if err := db.AutoMigrate(&models.Class{}, &models.Assignment{}, &models.Submission{}, &models.Vote{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, results are served uncached")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	hub := events.NewHub()
	publishers := events.Fanout{hub}

	var natsPublisher *events.NATSPublisher
	if cfg.NATSURL != "" {
		natsPublisher, err = events.NewNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, events stay in-process")
		} else {
			publishers = append(publishers, natsPublisher)
			defer natsPublisher.Close()
		}
	}

	var remoteScorer ai.Scorer
	if cfg.OpenAIAPIKey != "" {
		scorer, err := ai.NewOpenAIScorer(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.ScoringModel,
			Logger: logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("openai scorer unavailable, using heuristic only")
		} else {
			remoteScorer = scorer
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	classRepo := repository.NewClassRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	prober := imagegen.New(cfg.ImageAPIBaseURL, cfg.TextAPIBaseURL, cfg.ProbeTimeout, logger)

	classService := service.NewClassService(classRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, classRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, validate, publishers, logger)
	resultsService := service.NewResultsService(submissionRepo, redisClient, cfg.ResultsCacheTTL, logger)
	voteService := service.NewVoteService(voteRepo, submissionRepo, resultsService, validate, publishers, logger)
	promptService := service.NewPromptService(remoteScorer, validate, logger)
	healthService := service.NewHealthService(statsRepo, prober, cfg.ProbeTimeout, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ClassHandler:      handler.NewClassHandler(classService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, resultsService, logger),
		VoteHandler:       handler.NewVoteHandler(voteService, logger),
		PromptHandler:     handler.NewPromptHandler(promptService, logger),
		HealthHandler:     handler.NewHealthHandler(healthService, cfg, logger),
		LiveHandler:       handler.NewLiveHandler(hub, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, db)
}

func waitForShutdown(app *fiber.App, db *gorm.DB) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	if err := database.Close(db); err != nil {
		log.Printf("failed to close database: %v", err)
	}

	log.Println("server stopped")
}
