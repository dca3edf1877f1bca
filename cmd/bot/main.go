package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/config"
	"github.com/Takoyaki92/goukaku/internal/delivery/telegram"
	"github.com/Takoyaki92/goukaku/internal/infra/postgres"
	pgrepo "github.com/Takoyaki92/goukaku/internal/infra/postgres/repository"
	"github.com/Takoyaki92/goukaku/internal/infra/redisblob"
	"github.com/Takoyaki92/goukaku/internal/logger"
	"github.com/Takoyaki92/goukaku/internal/repository"
	"github.com/Takoyaki92/goukaku/internal/service"
	"github.com/Takoyaki92/goukaku/internal/storage"
)

func main() {
	// Missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create bot api", zap.Error(err))
	}
	zl.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Open the main menu"},
		{Command: "quiz", Description: "Pick a JLPT level and start a quiz"},
		{Command: "review", Description: "Questions saved for review"},
		{Command: "remind", Description: "Toggle the daily practice reminder"},
		{Command: "cancel", Description: "Abandon the current quiz"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		zl.Fatal("failed to ensure database schema", zap.Error(err))
	}

	questionRepo, err := repository.NewQuestionRepository(cfg.QuestionsJSONPath)
	if err != nil {
		zl.Fatal("failed to load question banks", zap.Error(err))
	}

	var reviewBlobs service.BlobStorage
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redisblob.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		reviewBlobs = redisblob.NewReviewBlobStorage(client)
	default:
		reviewBlobs = pgrepo.NewReviewBlobRepository(pool)
	}
	zl.Info("review list storage ready", zap.String("backend", cfg.Storage.Backend))

	userRepo := pgrepo.NewUserRepository(pool)
	reminderRepo := pgrepo.NewReminderRepository(pool)

	quizService := service.NewQuizService(questionRepo, storage.NewResultStorage(), cfg.Quiz, zl)
	reviewService := service.NewReviewService(reviewBlobs, zl)
	userService := service.NewUserService(userRepo, zl)
	reminderService := service.NewReminderService(reminderRepo, cfg.Reminder.CronSpec, zl)

	notifier := telegram.NewNotifier(bot, zl)
	quizService.SetNotifier(notifier)
	reminderService.SetNotifier(notifier)

	if cfg.Reminder.Enabled {
		go reminderService.Start(ctx)
	}

	handler := telegram.NewHandler(
		bot,
		zl,
		quizService,
		reviewService,
		userService,
		reminderService,
		questionRepo,
	)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zl.Fatal("handler stopped", zap.Error(err))
	}

	quizService.Shutdown()
	zl.Info("shutdown complete")
}
