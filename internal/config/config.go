// Package config handles application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	TMDBAPIKey    string `envconfig:"TMDB_API_KEY" required:"true"`
	TMDBBaseURL   string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`

	HighlightsPath string `envconfig:"HIGHLIGHTS_PATH" default:"./data/highlight_lists.json"`
	EventLogPath   string `envconfig:"EVENT_LOG_PATH" default:"./data/events.txt"`

	// Calendar mirroring is enabled by setting GOOGLE_CREDENTIALS_FILE.
	// The token file must already exist; there is no interactive OAuth flow.
	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE"`
	GoogleTokenFile       string `envconfig:"GOOGLE_TOKEN_FILE" default:"token.json"`

	LogLevel     string  `envconfig:"LOG_LEVEL" default:"info"`
	AllowedUsers []int64 `envconfig:"ALLOWED_USERS"`
}

// Load reads configuration from the environment, after loading an
// optional .env file. Missing required values are a fatal startup error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

// CalendarEnabled reports whether the external calendar sink is configured.
func (c *Config) CalendarEnabled() bool {
	return c.GoogleCredentialsFile != ""
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}
