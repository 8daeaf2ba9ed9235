package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultListenAddr    = ":8080"
	defaultDatabaseURL   = "vrisa_sessions.db"
	defaultSessionTTL    = "24h"
	defaultIntentTTL     = "2m"
	defaultPollInterval  = "30s"
	defaultSessionPepper = "change-me-session-pepper"
	defaultSessionSecret = "change-me-session-secret"
	defaultSessionCookie = "vrisa_session"
)

type Config struct {
	AppEnv          string
	ListenAddr      string
	UpstreamBaseURL string
	DatabaseURL     string
	RedisURL        string
	SessionTTL      time.Duration
	IntentTTL       time.Duration
	PollInterval    time.Duration
	SessionPepper   string
	SessionSecret   string
	SessionCookie   string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.UpstreamBaseURL = strings.TrimSpace(os.Getenv("VRISA_API_URL")) // empty means client default
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.SessionPepper = strings.TrimSpace(getEnv("SESSION_PEPPER", defaultSessionPepper))
	cfg.SessionSecret = strings.TrimSpace(getEnv("SESSION_SECRET", defaultSessionSecret))
	cfg.SessionCookie = strings.TrimSpace(getEnv("SESSION_COOKIE", defaultSessionCookie))

	var err error
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.IntentTTL, err = parseDurationEnv("APPROVAL_INTENT_TTL", defaultIntentTTL); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = parseDurationEnv("AQI_POLL_INTERVAL", defaultPollInterval); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.IntentTTL <= 0 {
		return fmt.Errorf("APPROVAL_INTENT_TTL must be > 0")
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("AQI_POLL_INTERVAL must be > 0")
	}
	if cfg.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.SessionPepper, defaultSessionPepper) {
			return fmt.Errorf("in prod/release SESSION_PEPPER must be set and not default")
		}
		if isEmptyOrDefault(cfg.SessionSecret, defaultSessionSecret) {
			return fmt.Errorf("in prod/release SESSION_SECRET must be set and not default")
		}
		if cfg.UpstreamBaseURL == "" {
			return fmt.Errorf("in prod/release VRISA_API_URL must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
