package config

import (
	"os"
)

// Config holds all configuration for the application
type Config struct {
	Beyond  BeyondConfig
	Redis   RedisConfig
	Archive ArchiveConfig
}

// BeyondConfig holds D&D Beyond configuration
type BeyondConfig struct {
	// Session is the CobaltSession cookie value. Only the scrape and
	// campaigns commands need it; reading the archive does not.
	Session string

	BaseURL             string
	AuthURL             string
	CharacterServiceURL string
	UserAgent           string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL selects the redis document store when set, e.g.
	// redis://localhost:6379/0. Empty means the file store.
	URL string
}

// ArchiveConfig holds the on-disk archive configuration
type ArchiveConfig struct {
	Dir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Beyond: BeyondConfig{
			Session:             os.Getenv("DNDBEYOND_SESSION"),
			BaseURL:             getEnvOrDefault("DNDBEYOND_BASE_URL", "https://www.dndbeyond.com"),
			AuthURL:             getEnvOrDefault("DNDBEYOND_AUTH_URL", "https://auth-service.dndbeyond.com/v1/cobalt-token"),
			CharacterServiceURL: getEnvOrDefault("DNDBEYOND_CHARACTER_URL", "https://character-service.dndbeyond.com"),
			UserAgent:           getEnvOrDefault("DNDBEYOND_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Archive: ArchiveConfig{
			Dir: getEnvOrDefault("ARCHIVE_DIR", "campaigns"),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
