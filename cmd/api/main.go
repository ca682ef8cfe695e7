package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/salestrain-api/internal/catalog"
	"github.com/noah-isme/salestrain-api/internal/config"
	"github.com/noah-isme/salestrain-api/internal/database"
	"github.com/noah-isme/salestrain-api/internal/handler"
	"github.com/noah-isme/salestrain-api/internal/middleware"
	"github.com/noah-isme/salestrain-api/internal/observability"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/router"
	"github.com/noah-isme/salestrain-api/internal/service"
	"github.com/noah-isme/salestrain-api/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func run(logger zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}
	logger = logger.With().Str("service", cfg.AppName).Str("env", cfg.AppEnv).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	observability.RegisterMetrics()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName, logger)
		if err != nil {
			return err
		}
		defer natsConn.Close()
	}

	kv, err := openStore(cfg, redisClient)
	if err != nil {
		return err
	}

	broker := store.NewBroker(store.BrokerOptions{
		Redis:   redisClient,
		NATS:    natsConn,
		Channel: cfg.EventsChannel,
		Logger:  logger,
	})
	if transport := broker.Transport(); transport != "" {
		logger.Info().Str("transport", transport).Str("node_id", broker.NodeID()).Msg("event relay enabled")
	}

	bank, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load scenario bank: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	scenarioRepo := repository.NewScenarioRepository(kv, broker, logger)
	knowledgeRepo := repository.NewKnowledgeRepository(kv, broker, logger)
	appealRepo := repository.NewAppealRepository(kv, broker, logger)
	sessionRepo := repository.NewDialogueSessionRepository(kv, broker, cfg.DialogueSessionTTL, logger)
	taskRepo := repository.NewTaskRepository(kv, broker, logger)

	scenarioService := service.NewScenarioService(scenarioRepo, validate, logger)
	seeded, err := scenarioService.Seed(ctx, bank, false)
	if err != nil {
		return fmt.Errorf("failed to seed scenarios: %w", err)
	}
	logger.Info().Int("seeded", seeded.Seeded).Int("skipped", seeded.Skipped).Msg("scenario catalog ready")

	evaluationService := service.NewEvaluationService(scenarioRepo, validate, cfg.DefaultStrategy, logger)
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, validate, logger)
	appealService := service.NewAppealService(appealRepo, validate, logger)
	dialogueService := service.NewDialogueService(sessionRepo, scenarioRepo, validate, logger)
	taskService := service.NewTaskService(taskRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSOrigins,
		AccessLog:    cfg.AccessLog,
	})
	router.Register(app, cfg, router.Dependencies{
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		ScenarioHandler:   handler.NewScenarioHandler(scenarioService, bank, logger),
		KnowledgeHandler:  handler.NewKnowledgeHandler(knowledgeService, logger),
		AppealHandler:     handler.NewAppealHandler(appealService, logger),
		DialogueHandler:   handler.NewDialogueHandler(dialogueService, logger),
		TaskHandler:       handler.NewTaskHandler(taskService, logger),
		EventsHandler:     handler.NewEventsHandler(broker, logger),
	})

	group, groupCtx := errgroup.WithContext(ctx)

	broker.Start(groupCtx)

	group.Go(func() error {
		logger.Info().Str("addr", cfg.HTTPAddress()).Str("store", cfg.StoreBackend).Msg("http server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
		logger.Info().Msg("server stopped")
		return nil
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func openStore(cfg config.Config, redisClient *redis.Client) (store.KV, error) {
	switch cfg.StoreBackend {
	case store.BackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis store selected without a redis connection")
		}
		return store.NewRedisStore(redisClient, cfg.EventsChannel), nil
	case store.BackendSQL:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		sqlStore := store.NewSQLStore(db)
		if err := sqlStore.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return sqlStore, nil
	default:
		return store.NewMemoryStore(), nil
	}
}
