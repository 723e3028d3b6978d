package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const dateLayout = "2006-01-02"

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"DB_DSN" envDefault:"festa-pos.db"`
	Seed     bool   `env:"SEED" envDefault:"true"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	Timezone   string `env:"TIMEZONE" envDefault:"Asia/Tokyo"`
	OpenHour   int    `env:"OPEN_HOUR" envDefault:"10"`
	CloseHour  int    `env:"CLOSE_HOUR" envDefault:"18"`
	BypassFrom string `env:"BYPASS_FROM"`
	BypassTo   string `env:"BYPASS_TO"`

	RabbitMQURL      string `env:"RABBITMQ_URL"`
	RabbitMQExchange string `env:"RABBITMQ_EXCHANGE" envDefault:"pos_events"`

	ReportWebhookURL   string `env:"REPORT_WEBHOOK_URL"`
	ReportWebhookToken string `env:"REPORT_WEBHOOK_TOKEN"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.OpenHour < 0 || c.OpenHour > 24 || c.CloseHour < 0 || c.CloseHour > 24 {
		return fmt.Errorf("OPEN_HOUR and CLOSE_HOUR must be within 0..24")
	}
	if (c.BypassFrom == "") != (c.BypassTo == "") {
		return errors.New("BYPASS_FROM and BYPASS_TO must be set together")
	}
	for _, d := range []string{c.BypassFrom, c.BypassTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("invalid bypass date %q: %w", d, err)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TIMEZONE; "today" and business hours are evaluated in it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
