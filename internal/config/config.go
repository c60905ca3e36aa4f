// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, collaborator endpoints, timeouts, and cache settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Request Authentication
	APIKey string // Shared key clients must present in X-API-Key

	// Inference Configuration (mandatory classifiers)
	HFAPIKey  string // Hugging Face Inference API token
	HFBaseURL string // Hugging Face Inference API base URL

	// Embedding / Keyphrase Configuration
	GeminiAPIKey string // Gemini API key for embeddings and keyphrase extraction
	GroqAPIKey   string // Groq API key (fallback keyphrase provider, optional)

	// Literature Search Configuration
	ScholarBaseURL string // Semantic Scholar API base URL
	ScholarAPIKey  string // Semantic Scholar API key (optional)

	// Lexical Dictionary Configuration
	LexiconBaseURL string // Datamuse API base URL

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Error Reporting
	SentryDSN   string // Sentry DSN (empty = disabled)
	Environment string // Deployment environment (e.g., "production")

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir  string        // Data directory for SQLite cache database
	CacheTTL time.Duration // Absolute expiration for cache entries (default: 7 days)

	// Per-client rate limiting (token bucket)
	ClientRateLimitBurst        float64 // Maximum burst tokens per client key (default: 10)
	ClientRateLimitRefillPerSec float64 // Tokens refilled per second (default: 0.5)
	EmbeddingRequestsPerMinute  float64 // Upstream embedding API budget (default: 1000)
	InferenceRequestsPerMinute  float64 // Upstream inference API budget (default: 300)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey: getEnv("API_KEY", ""),

		HFAPIKey:  getEnv("HF_API_KEY", ""),
		HFBaseURL: getEnv("HF_BASE_URL", "https://api-inference.huggingface.co"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),

		ScholarBaseURL: getEnv("SCHOLAR_BASE_URL", "https://api.semanticscholar.org"),
		ScholarAPIKey:  getEnv("SCHOLAR_API_KEY", ""),

		LexiconBaseURL: getEnv("LEXICON_BASE_URL", "https://api.datamuse.com"),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		SentryDSN:   getEnv("SENTRY_DSN", ""),
		Environment: getEnv("ENVIRONMENT", "production"),

		Port:            getEnv("PORT", "8000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataDir:  getEnv("DATA_DIR", "./data"),
		CacheTTL: getDurationEnv("CACHE_TTL", 168*time.Hour), // 7 days

		ClientRateLimitBurst:        getFloatEnv("CLIENT_RATE_LIMIT_BURST", 10.0),
		ClientRateLimitRefillPerSec: getFloatEnv("CLIENT_RATE_LIMIT_REFILL_PER_SEC", 0.5),
		EmbeddingRequestsPerMinute:  getFloatEnv("EMBEDDING_REQUESTS_PER_MINUTE", 1000.0),
		InferenceRequestsPerMinute:  getFloatEnv("INFERENCE_REQUESTS_PER_MINUTE", 300.0),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required"))
	}
	if c.HFAPIKey == "" {
		errs = append(errs, errors.New("HF_API_KEY is required"))
	}
	if c.GeminiAPIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %v", c.CacheTTL))
	}
	if c.ClientRateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("CLIENT_RATE_LIMIT_BURST must be positive, got %v", c.ClientRateLimitBurst))
	}
	if c.ClientRateLimitRefillPerSec <= 0 {
		errs = append(errs, fmt.Errorf("CLIENT_RATE_LIMIT_REFILL_PER_SEC must be positive, got %v", c.ClientRateLimitRefillPerSec))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// SQLitePath returns the full path to the SQLite cache database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

// HasFallbackProvider returns true if a fallback keyphrase provider is configured.
func (c *Config) HasFallbackProvider() bool {
	return c.GroqAPIKey != ""
}
