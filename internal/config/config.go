package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/medscan/internal/logger"
)

// Inference providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	TelegramToken string
	LLM           LLMConfig
	Storage       StorageConfig
	DemoHistory   bool
	Logger        LoggerConfig
}

type LLMConfig struct {
	Provider        string
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnalysisTimeout time.Duration
	ChatTimeout     time.Duration
}

type StorageConfig struct {
	Backend string
	Redis   RedisConfig
	DB      DBConfig
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DSN returns the Postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// Load reads the configuration from the environment and validates it.
// The returned error lists every problem found.
func Load() (*Config, error) {
	var errs []error

	analysisTimeout, err := time.ParseDuration(getEnvOrDefault("ANALYSIS_TIMEOUT", "120s"))
	if err != nil {
		errs = append(errs, fmt.Errorf("ANALYSIS_TIMEOUT: %w", err))
	}
	chatTimeout, err := time.ParseDuration(getEnvOrDefault("CHAT_TIMEOUT", "60s"))
	if err != nil {
		errs = append(errs, fmt.Errorf("CHAT_TIMEOUT: %w", err))
	}
	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		errs = append(errs, fmt.Errorf("REDIS_DB: %w", err))
	}
	demoHistory, err := strconv.ParseBool(getEnvOrDefault("DEMO_HISTORY", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("DEMO_HISTORY: %w", err))
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LLM: LLMConfig{
			Provider:        strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderGemini)),
			GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
			GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			AnalysisTimeout: analysisTimeout,
			ChatTimeout:     chatTimeout,
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", StorageMemory)),
			Redis: RedisConfig{
				Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
				Port:     getEnvOrDefault("REDIS_PORT", "6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       redisDB,
			},
			DB: DBConfig{
				Host:     getEnvOrDefault("DB_HOST", "localhost"),
				Port:     getEnvOrDefault("DB_PORT", "5432"),
				User:     getEnvOrDefault("DB_USER", "postgres"),
				Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
				DBName:   getEnvOrDefault("DB_NAME", "medscan"),
			},
		},
		DemoHistory: demoHistory,
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func (c *Config) validate() []error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is required"))
	}

	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the gemini provider"))
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER %q is not supported", c.LLM.Provider))
	}

	switch c.Storage.Backend {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND %q is not supported", c.Storage.Backend))
	}

	if c.LLM.AnalysisTimeout < 0 || c.LLM.ChatTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	return errs
}
