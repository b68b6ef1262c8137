// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DefaultFeedURL is the national GTFS-realtime trip updates endpoint.
const DefaultFeedURL = "http://20.19.98.194:8328/Api/api/gtfs-realtime"

// Config holds all application configuration.
type Config struct {
	Port        string
	Env         string
	FeedURL     string
	StopsFile   string
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		FeedURL:     getEnv("FEED_URL", DefaultFeedURL),
		StopsFile:   getEnv("STOPS_FILE", "data/stops.geojson"),
		CacheTTL:    getDurationEnv("CACHE_TTL_SECONDS", 30) * time.Second,
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT_SECONDS", 10) * time.Second,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.FeedURL == "" {
		return fmt.Errorf("FEED_URL must not be empty")
	}
	if _, err := url.ParseRequestURI(c.FeedURL); err != nil {
		return fmt.Errorf("FEED_URL is not a valid URL: %w", err)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}
