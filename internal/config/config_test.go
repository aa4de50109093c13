package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.NFLVerseTimeout != 60*time.Second {
		t.Fatalf("unexpected NFLVerseTimeout: %s", cfg.NFLVerseTimeout)
	}
	if !cfg.SchedulerEnabled {
		t.Fatalf("expected SchedulerEnabled=true by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_SourceOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("PORT", "9000")
	t.Setenv("NFLVERSE_BASE_URL", "http://mirror.local/nflverse")
	t.Setenv("NFLVERSE_MAX_RETRIES", "1")
	t.Setenv("FFDP_TIMEOUT", "10s")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.NFLVerseBaseURL != "http://mirror.local/nflverse" {
		t.Fatalf("unexpected NFLVerseBaseURL: %q", cfg.NFLVerseBaseURL)
	}
	if cfg.NFLVerseMaxRetries != 1 {
		t.Fatalf("unexpected NFLVerseMaxRetries: %d", cfg.NFLVerseMaxRetries)
	}
	if cfg.FFDPTimeout != 10*time.Second {
		t.Fatalf("unexpected FFDPTimeout: %s", cfg.FFDPTimeout)
	}
	if cfg.SchedulerEnabled {
		t.Fatalf("expected SchedulerEnabled=false")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NFLVERSE_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid NFLVERSE_TIMEOUT")
	}
}
