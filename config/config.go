package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Generation backend. An empty API key is valid: the generator then runs
	// in fallback-only mode against the canned recipe table.
	OpenAIAPIKey   string
	OpenAIAPIURL   string
	OpenAIModel    string
	RequireBackend bool

	// Courtesy delay between consecutive generation calls against the real
	// backend, to stay under the provider's rate limit.
	GenerationDelay time.Duration
}

// LoadConfig reads configuration from the environment. A .env file is loaded
// first when present, matching the local development setup.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getEnv("DB_NAME", "gramvana"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIURL:   getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4"),
		RequireBackend: getBoolEnv("REQUIRE_GENERATION_BACKEND", false),
	}

	cfg.RedisDB = 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	cfg.GenerationDelay = 500 * time.Millisecond
	if d := os.Getenv("GENERATION_DELAY_MS"); d != "" {
		ms, err := strconv.Atoi(d)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATION_DELAY_MS value %q: %w", d, err)
		}
		cfg.GenerationDelay = time.Duration(ms) * time.Millisecond
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.RequireBackend && cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("REQUIRE_GENERATION_BACKEND is set but OPENAI_API_KEY is empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
