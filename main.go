package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/medscan/internal/bot"
	"github.com/vladimiradmaev/medscan/internal/bot/handlers"
	"github.com/vladimiradmaev/medscan/internal/config"
	"github.com/vladimiradmaev/medscan/internal/logger"
	"github.com/vladimiradmaev/medscan/internal/services"
	"github.com/vladimiradmaev/medscan/internal/storage"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()

	if envErr != nil {
		logger.Warn(".env file not found, using the process environment")
	}
	logger.Info("Starting MedScan bot", "provider", cfg.LLM.Provider, "storage", cfg.Storage.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to open storage", "backend", cfg.Storage.Backend, "error", err)
	}
	defer store.Close()
	logger.Info("Storage ready", "backend", cfg.Storage.Backend)

	provider, err := services.NewProvider(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("Failed to create inference client", "provider", cfg.LLM.Provider, "error", err)
	}
	defer provider.Close()

	// Initialize services
	historyService := services.NewHistoryService(store)
	analysisService := services.NewAnalysisService(services.NewExtractionService(provider), cfg.LLM.AnalysisTimeout)
	deps := handlers.Dependencies{
		Reports:     services.NewReportService(analysisService, historyService),
		History:     historyService,
		Profiles:    services.NewProfileService(store),
		Trends:      services.NewTrendService(historyService),
		Chat:        services.NewChatService(provider, cfg.LLM.ChatTimeout),
		DemoHistory: cfg.DemoHistory,
	}
	logger.Info("Services initialized successfully")

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", "error", err)
	}
	logger.Info("Bot stopped")
}
