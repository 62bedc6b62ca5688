package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"retailgenie/gateway/internal/service/retail"
)

type Config struct {
	ServerPort       string
	DatabaseURL      string
	LogLevel         zerolog.Level
	OverviewCacheTTL time.Duration

	Retail retail.Config
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	apiURL := os.Getenv("RETAIL_API_BASE_URL")
	if apiURL == "" {
		apiURL = retail.DefaultAPIURL
	}

	timeout, err := durationEnv("RETAIL_API_TIMEOUT", retail.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	// zero lets the dashboard service pick its default
	cacheTTL, err := durationEnv("OVERVIEW_CACHE_TTL", 0)
	if err != nil {
		return nil, err
	}

	logLevel := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		logLevel, err = zerolog.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	return &Config{
		ServerPort:       serverPort,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		LogLevel:         logLevel,
		OverviewCacheTTL: cacheTTL,
		Retail: retail.Config{
			APIURL:  apiURL,
			Token:   os.Getenv("RETAIL_API_TOKEN"),
			Timeout: timeout,
		},
	}, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
