package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	CacheTTL           time.Duration
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration

	NFLVerseBaseURL               string
	NFLVerseTimeout               time.Duration
	NFLVerseMaxRetries            int
	NFLVerseCircuitEnabled        bool
	NFLVerseCircuitFailureCount   int
	NFLVerseCircuitOpenTimeout    time.Duration
	NFLVerseCircuitHalfOpenMaxReq int

	FFDPBaseURL string
	FFDPTimeout time.Duration

	SchedulerEnabled bool

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "120s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	nflverseTimeout, err := time.ParseDuration(getEnv("NFLVERSE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_TIMEOUT: %w", err)
	}
	nflverseMaxRetries, err := getEnvAsInt("NFLVERSE_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_MAX_RETRIES: %w", err)
	}
	nflverseCircuitEnabled, err := strconv.ParseBool(getEnv("NFLVERSE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_ENABLED: %w", err)
	}
	nflverseCircuitFailureCount, err := getEnvAsInt("NFLVERSE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	nflverseCircuitOpenTimeout, err := time.ParseDuration(getEnv("NFLVERSE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	nflverseCircuitHalfOpenMaxReq, err := getEnvAsInt("NFLVERSE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	ffdpTimeout, err := time.ParseDuration(getEnv("FFDP_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FFDP_TIMEOUT: %w", err)
	}

	schedulerEnabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULER_ENABLED: %w", err)
	}

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "nfl-projections"),
		ServiceVersion:     getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":"+getEnv("PORT", "8000")),
		DBURL:              strings.TrimSpace(getEnv("DATABASE_URL", "")),
		CacheTTL:           cacheTTL,
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,

		NFLVerseBaseURL:               strings.TrimSpace(getEnv("NFLVERSE_BASE_URL", "")),
		NFLVerseTimeout:               nflverseTimeout,
		NFLVerseMaxRetries:            nflverseMaxRetries,
		NFLVerseCircuitEnabled:        nflverseCircuitEnabled,
		NFLVerseCircuitFailureCount:   nflverseCircuitFailureCount,
		NFLVerseCircuitOpenTimeout:    nflverseCircuitOpenTimeout,
		NFLVerseCircuitHalfOpenMaxReq: nflverseCircuitHalfOpenMaxReq,

		FFDPBaseURL: strings.TrimSpace(getEnv("FFDP_BASE_URL", "")),
		FFDPTimeout: ffdpTimeout,

		SchedulerEnabled: schedulerEnabled,

		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
