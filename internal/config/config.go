package config

import (
	"fmt"
	"os"
	"strconv"
)

// Dataset source constants
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr   string
	BaseURL      string
	RateLimitMax int // requests per minute per IP

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)
	RedisURL      string // Optional session storage, e.g. "redis://localhost:6379/0"

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Database (only needed when DatasetSource is "postgres")
	DatabaseURL string

	// Datasets
	DatasetSource      string // "csv" or "postgres"
	ChatDataset        string // path to the question -> reply table
	EmotionDataset     string // path to the text -> emotion table
	InputColumn        string
	ChatLabelColumn    string
	EmotionLabelColumn string

	// Resolution
	MatchThreshold int // 0-100, inclusive lexicon cut-off

	// Metrics
	MetricsEnabled bool

	// Mood styles
	ConfigFile string // env: CONFIG_FILE, default: "config.yaml"

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Friendly Chatbot"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	threshold, err := getEnvInt("MATCH_THRESHOLD", 70)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvInt("RATE_LIMIT_MAX", 100)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:           getEnv("ENV", "development"),
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
		RateLimitMax:  rateLimit,
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		RedisURL:      getEnv("REDIS_URL", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		DatasetSource:      getEnv("DATASET_SOURCE", SourceCSV),
		ChatDataset:        getEnv("CHAT_DATASET", "data/chatbot.csv"),
		EmotionDataset:     getEnv("EMOTION_DATASET", "data/emotion_chat_dataset.csv"),
		InputColumn:        getEnv("INPUT_COLUMN", "input"),
		ChatLabelColumn:    getEnv("CHAT_LABEL_COLUMN", "chatbot"),
		EmotionLabelColumn: getEnv("EMOTION_LABEL_COLUMN", "emotion"),

		MatchThreshold: threshold,
		MetricsEnabled: getEnv("METRICS_ENABLED", "") != "",
		ConfigFile:     getEnv("CONFIG_FILE", "config.yaml"),

		SiteTitle:   getEnv("SITE_TITLE", "Friendly Chatbot"),
		SiteTagline: getEnv("SITE_TAGLINE", "Talk to your virtual friend. I'll also feel your mood 😄😭😤"),
		SiteFooter:  getEnv("SITE_FOOTER", "Chat & Mood Aware"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.MatchThreshold < 0 || c.MatchThreshold > 100 {
		return fmt.Errorf("MATCH_THRESHOLD must be between 0 and 100, got %d", c.MatchThreshold)
	}
	if c.RateLimitMax < 1 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	switch c.DatasetSource {
	case SourceCSV:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATASET_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("DATASET_SOURCE must be %q or %q, got %q", SourceCSV, SourcePostgres, c.DatasetSource)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// UsesPostgres returns true if datasets are read from the database.
func (c *Config) UsesPostgres() bool {
	return c.DatasetSource == SourcePostgres
}
