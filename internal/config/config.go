package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Article extraction
	Extractor       string
	FetchTimeout    time.Duration
	FetchUserAgent  string
	FetchMaxBytes   int64
	FetchRetries    int
	MinContentChars int

	// Upload limits
	MaxUploadBytes int64

	// Sessions
	SessionTTL  time.Duration
	MaxSessions int

	// Stats
	StatsWindow time.Duration
}

const maxFetchRetries = 10

const (
	ExtractorHeuristic   = "heuristic"
	ExtractorReadability = "readability"
)

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		APIKey: os.Getenv("READER_API_KEY"),

		Extractor:       envOr("READER_EXTRACTOR", ExtractorHeuristic),
		FetchTimeout:    envDuration("FETCH_TIMEOUT", 15*time.Second),
		FetchUserAgent:  envOr("FETCH_USER_AGENT", "Mozilla/5.0 (compatible; SpeedReader/1.0)"),
		FetchMaxBytes:   envInt64("FETCH_MAX_BYTES", 10485760), // 10MB
		FetchRetries:    envInt("FETCH_RETRIES", 2),
		MinContentChars: envInt("MIN_CONTENT_CHARS", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB

		SessionTTL:  envDuration("SESSION_TTL", 1*time.Hour),
		MaxSessions: envInt("MAX_SESSIONS", 1000),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.FetchMaxBytes <= 0 {
		cfg.FetchMaxBytes = 10485760
	}
	if cfg.FetchRetries < 0 {
		cfg.FetchRetries = 0
	}
	if cfg.MinContentChars <= 0 {
		cfg.MinContentChars = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 1 * time.Hour
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.FetchRetries > maxFetchRetries {
		return fmt.Errorf("FETCH_RETRIES must be at most %d, got %d", maxFetchRetries, c.FetchRetries)
	}
	if c.Extractor != ExtractorHeuristic && c.Extractor != ExtractorReadability {
		return fmt.Errorf("READER_EXTRACTOR must be %q or %q, got %q", ExtractorHeuristic, ExtractorReadability, c.Extractor)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
