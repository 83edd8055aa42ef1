package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DEFAULT_API_URL      = "https://public.api.bsky.app/xrpc"
	DEFAULT_HTTP_TIMEOUT = 30 * time.Second
	DEFAULT_OPENAI_MODEL = "gpt-4o-mini"
)

type Config struct {
	Env      string
	LogLevel string

	Bluesky BlueskyConfig
	Valkey  ValkeyConfig
	OpenAI  OpenAIConfig
}

type BlueskyConfig struct {
	APIURL  string
	Timeout time.Duration
	// RateLimit is requests per second; 0 disables pacing.
	RateLimit float64
}

type ValkeyConfig struct {
	Address  string
	Password string
	TLS      bool
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// Load reads the configuration from the environment. Call LoadEnv first to
// pull in the .env file for the current APP_ENV.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("BSKY_HTTP_TIMEOUT", DEFAULT_HTTP_TIMEOUT.String()))
	if err != nil {
		return nil, fmt.Errorf("[Config] invalid BSKY_HTTP_TIMEOUT: %w", err)
	}

	rateLimit, err := strconv.ParseFloat(getEnv("BSKY_RATE_LIMIT", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("[Config] invalid BSKY_RATE_LIMIT: %w", err)
	}
	if rateLimit < 0 {
		return nil, fmt.Errorf("[Config] BSKY_RATE_LIMIT must not be negative, got %v", rateLimit)
	}

	return &Config{
		Env:      getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Bluesky: BlueskyConfig{
			APIURL:    getEnv("BSKY_API_URL", DEFAULT_API_URL),
			Timeout:   timeout,
			RateLimit: rateLimit,
		},
		Valkey: ValkeyConfig{
			Address:  os.Getenv("VALKEY_INIT_ADDRESS"),
			Password: os.Getenv("VALKEY_PASSWORD"),
			TLS:      os.Getenv("VALKEY_TLS") == "true",
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  getEnv("OPENAI_MODEL", DEFAULT_OPENAI_MODEL),
		},
	}, nil
}
