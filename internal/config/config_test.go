package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "READER_API_KEY", "READER_EXTRACTOR", "FETCH_TIMEOUT", "FETCH_RETRIES", "SESSION_TTL", "MAX_SESSIONS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.Extractor != ExtractorHeuristic {
		t.Errorf("expected heuristic extractor, got %q", cfg.Extractor)
	}
	if cfg.FetchTimeout != 15*time.Second || cfg.FetchRetries != 2 || cfg.MinContentChars != 50 {
		t.Errorf("unexpected fetch defaults %+v", cfg)
	}
	if cfg.SessionTTL != time.Hour || cfg.MaxSessions != 1000 {
		t.Errorf("unexpected session defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("READER_API_KEY", "secret")
	t.Setenv("READER_EXTRACTOR", "readability")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("MAX_SESSIONS", "5")

	cfg := Load()
	if cfg.Port != "9000" || cfg.APIKey != "secret" || cfg.Extractor != ExtractorReadability {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.FetchTimeout != 3*time.Second || cfg.MaxSessions != 5 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("MAX_SESSIONS", "-3")
	t.Setenv("FETCH_RETRIES", "-1")

	cfg := Load()
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.FetchTimeout)
	}
	if cfg.MaxSessions != 1000 {
		t.Errorf("expected default max sessions, got %d", cfg.MaxSessions)
	}
	if cfg.FetchRetries != 0 {
		t.Errorf("expected negative retries to clamp to 0, got %d", cfg.FetchRetries)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Port: "8080", Extractor: "magic"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown extractor to fail validation")
	}
	cfg = Config{Port: "http", Extractor: ExtractorHeuristic}
	if err := cfg.Validate(); err == nil {
		t.Error("expected non-numeric port to fail validation")
	}
}

func TestValidate_FetchRetriesBound(t *testing.T) {
	cfg := Config{Port: "8080", Extractor: ExtractorHeuristic, FetchRetries: maxFetchRetries}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected %d retries to be accepted, got %v", maxFetchRetries, err)
	}
	cfg.FetchRetries = maxFetchRetries + 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected too many retries to fail validation")
	}
}
