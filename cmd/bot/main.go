package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/app"
	"github.com/Freeeeeet/pillbot/internal/config"
	"github.com/Freeeeeet/pillbot/internal/controller"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/repository"
	"github.com/Freeeeeet/pillbot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("👋 Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting pillbot",
		zap.String("environment", cfg.Environment),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("timezone", cfg.Location.String()))

	// База данных: только таблица сессий
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		_ = migrator.Close()
		return err
	}
	_ = migrator.Close()

	// Сервисы
	sessions := repository.NewSessionRepository(pool)
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger.Named("api"))

	authService := service.NewAuthService(client, sessions, logger.Named("auth"))
	pillService := service.NewPillService(client, authService, logger.Named("pills"))
	alertService := service.NewAlertService(client, pillService, authService, logger.Named("alerts"))

	stateManager := state.NewManager()
	deps := &callbacktypes.Handler{
		Auth:         authService,
		Pills:        pillService,
		Alerts:       alertService,
		StateManager: stateManager,
		Logger:       logger,
		Location:     cfg.Location,
	}

	// Telegram
	botInstance, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Warn("Telegram polling error", zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(botInstance, deps)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично, бот работает и без него
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	// Фоновые задачи
	scheduler := app.NewScheduler(stateManager, sessions, app.SchedulerConfig{
		DraftTTL:      cfg.DraftTTL,
		SessionMaxAge: cfg.SessionMaxAge,
	}, logger.Named("scheduler"))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	health := app.NewHealthServer(cfg.HTTPAddr, app.NewHealthRouter(pool, cfg.Environment, logger), logger)
	health.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := health.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Health server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("✅ Bot is running")
	return botController.Start(ctx)
}
