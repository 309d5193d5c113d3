package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// devSecret — только для локального запуска без SESSION_SECRET.
const devSecret = "dev-insecure-secret-change-me-now"

type Config struct {
	Host          string        `env:"HOST" envDefault:"0.0.0.0"`
	Port          string        `env:"PORT" envDefault:"5000"`
	DatabaseURL   string        `env:"DATABASE_URL" envDefault:"sqlite://academy.db"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SecureCookies bool          `env:"APP_HTTPS"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	AdminUsername string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	ProgramsFile  string        `env:"PROGRAMS_FILE"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load читает .env (если есть) и затем переменные окружения.
// Уже выставленные переменные окружения .env не перекрывает.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set, using insecure development secret")
		c.SessionSecret = devSecret
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if strings.TrimSpace(c.AdminUsername) == "" {
		return fmt.Errorf("ADMIN_USERNAME must not be empty")
	}
	return nil
}

// Addr — адрес для http.Server.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Level переводит LOG_LEVEL в slog.Level; неизвестное значение — info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewLogger — текстовый slog в stderr с уровнем из конфига.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()}))
}
