package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"
	_ "time/tzdata" // TIMEZONE работает и без системной базы часовых поясов

	"github.com/joho/godotenv"

	"github.com/Freeeeeet/pillbot/internal/api"
)

// Значения по умолчанию
const (
	DefaultEnvironment   = "development"
	DefaultAPITimeout    = 15 * time.Second
	DefaultDraftTTL      = 30 * time.Minute
	DefaultHTTPAddr      = ":8080"
	DefaultMigrationsDir = "migrations"
	DefaultTimezone      = "UTC"
	DefaultSessionMaxAge = 720 * time.Hour
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`

	APIBaseURL string        `mapstructure:"API_BASE_URL"`
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`

	DraftTTL      time.Duration `mapstructure:"DRAFT_TTL"`
	SessionMaxAge time.Duration `mapstructure:"SESSION_MAX_AGE"`

	HTTPAddr      string         `mapstructure:"HTTP_ADDR"`
	MigrationsDir string         `mapstructure:"MIGRATIONS_DIR"`
	Location      *time.Location `mapstructure:"TIMEZONE"`
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из getenv и проверяет обязательные поля
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken: getenv("TELEGRAM_TOKEN"),
		DBDSN:         getenv("DB_DSN"),
		Environment:   orDefault(getenv("ENV"), DefaultEnvironment),
		APIBaseURL:    orDefault(getenv("API_BASE_URL"), api.DefaultBaseURL),
		HTTPAddr:      orDefault(getenv("HTTP_ADDR"), DefaultHTTPAddr),
		MigrationsDir: orDefault(getenv("MIGRATIONS_DIR"), DefaultMigrationsDir),
	}

	var errs []error
	if cfg.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_TOKEN is required but not set"))
	}
	if cfg.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is required but not set"))
	}

	var err error
	if cfg.APITimeout, err = duration(getenv, "API_TIMEOUT", DefaultAPITimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.DraftTTL, err = duration(getenv, "DRAFT_TTL", DefaultDraftTTL); err != nil {
		errs = append(errs, err)
	}
	if cfg.SessionMaxAge, err = duration(getenv, "SESSION_MAX_AGE", DefaultSessionMaxAge); err != nil {
		errs = append(errs, err)
	}

	tz := orDefault(getenv("TIMEZONE"), DefaultTimezone)
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", tz, err))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// IsProduction проверяет окружение
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// duration разбирает положительную длительность вида "15s", "30m"
func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
