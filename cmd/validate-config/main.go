package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/medscan/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	// Load .env if present
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Configuration details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - LLM Provider: %s\n", cfg.LLM.Provider)
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.LLM.GeminiAPIKey))
		fmt.Printf("  - Gemini Model: %s\n", cfg.LLM.GeminiModel)
	case config.ProviderOpenAI:
		fmt.Printf("  - OpenAI API Key: %s\n", maskToken(cfg.LLM.OpenAIAPIKey))
		fmt.Printf("  - OpenAI Model: %s\n", cfg.LLM.OpenAIModel)
	}
	fmt.Printf("  - Analysis Timeout: %s\n", cfg.LLM.AnalysisTimeout)
	fmt.Printf("  - Chat Timeout: %s\n", cfg.LLM.ChatTimeout)
	fmt.Printf("  - Storage Backend: %s\n", cfg.Storage.Backend)
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		fmt.Printf("  - Redis Address: %s:%s (db %d)\n", cfg.Storage.Redis.Host, cfg.Storage.Redis.Port, cfg.Storage.Redis.DB)
		fmt.Printf("  - Redis Password: %s\n", maskToken(cfg.Storage.Redis.Password))
	case config.StoragePostgres:
		fmt.Printf("  - DB Host: %s\n", cfg.Storage.DB.Host)
		fmt.Printf("  - DB Port: %s\n", cfg.Storage.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.Storage.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.Storage.DB.DBName)
	}
	fmt.Printf("  - Demo History: %t\n", cfg.DemoHistory)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
