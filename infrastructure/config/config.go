package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"inbound/frontend/receiving/editline"
)

// Config is the process configuration read from the environment.
type Config struct {
	Addr                  string
	SQLitePath            string
	MigrationsDir         string
	DefaultLocale         string
	MinimumExpirationDate time.Time
	PendingEditTTL        time.Duration
	SessionTTL            time.Duration
	CookieSecure          bool
	LogLevel              slog.Level
	AdminPassword         string
}

// Load reads the optional env files (".env" when none are given) and then the
// environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Addr:          getenv("APP_ADDR", ":8080"),
		SQLitePath:    getenv("SQLITE_PATH", "inbound.db"),
		MigrationsDir: getenv("MIGRATIONS_DIR", ""),
		DefaultLocale: getenv("DEFAULT_LOCALE", "en"),
		AdminPassword: getenv("ADMIN_PASSWORD", "Admin123!Inbound"),
	}

	if raw := getenv("MINIMUM_EXPIRATION_DATE", ""); raw != "" {
		d, err := editline.ParseDate(raw)
		if err != nil {
			return Config{}, fmt.Errorf("MINIMUM_EXPIRATION_DATE: %w", err)
		}
		cfg.MinimumExpirationDate = d
	}

	ttl, err := time.ParseDuration(getenv("PENDING_EDIT_TTL", "10m"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("PENDING_EDIT_TTL: invalid duration")
	}
	cfg.PendingEditTTL = ttl

	sessionTTL, err := time.ParseDuration(getenv("SESSION_TTL", "12h"))
	if err != nil || sessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL: invalid duration")
	}
	cfg.SessionTTL = sessionTTL

	secure, err := strconv.ParseBool(getenv("COOKIE_SECURE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("COOKIE_SECURE: %w", err)
	}
	cfg.CookieSecure = secure

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
