// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEndpoint is the homework status API polled when ENDPOINT is unset.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Config holds the application configuration.
type Config struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64
	Endpoint       string
	PollInterval   time.Duration
	PollJitter     float64
	HistoryDBPath  string
	LogLevel       string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present;
// it never overrides variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if missing := MissingTokens(); len(missing) > 0 {
		return nil, fmt.Errorf("required variables are not set: %s", strings.Join(missing, ", "))
	}

	chatID, err := strconv.ParseInt(strings.TrimSpace(secret("TELEGRAM_CHAT_ID")), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	interval := 10 * time.Minute
	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		interval, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", interval)
		}
	}

	var jitter float64
	if raw := os.Getenv("POLL_JITTER"); raw != "" {
		jitter, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_JITTER: %w", err)
		}
		if jitter < 0 || jitter >= 1 {
			return nil, fmt.Errorf("POLL_JITTER must be in [0, 1), got %v", jitter)
		}
	}

	endpoint := os.Getenv("ENDPOINT")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		PracticumToken: secret("PRACTICUM_TOKEN"),
		TelegramToken:  secret("TELEGRAM_TOKEN"),
		TelegramChatID: chatID,
		Endpoint:       endpoint,
		PollInterval:   interval,
		PollJitter:     jitter,
		HistoryDBPath:  os.Getenv("HISTORY_DB_PATH"),
		LogLevel:       logLevel,
	}, nil
}

// legacyNames maps each required secret to the name older deployments use.
var legacyNames = map[string]string{
	"PRACTICUM_TOKEN":  "PR_TOKEN",
	"TELEGRAM_TOKEN":   "TOKEN",
	"TELEGRAM_CHAT_ID": "CHAT_ID",
}

// secret reads key, falling back to its legacy name.
func secret(key string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(legacyNames[key]))
}

// MissingTokens returns the names of required secrets absent from the environment
// under both their current and legacy names.
func MissingTokens() []string {
	var missing []string
	for _, key := range []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"} {
		if secret(key) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
