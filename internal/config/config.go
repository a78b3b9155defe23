package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/spendly/internal/database"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Spendly"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"spendly"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
		ConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"SERVER_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Auth struct {
		// Secret signs HS256 bearer tokens. Empty disables authentication.
		Secret    string        `envconfig:"AUTH_SECRET"`
		RateLimit float64       `envconfig:"AUTH_RATE_LIMIT" default:"5"`
		RateBurst int           `envconfig:"AUTH_RATE_BURST" default:"20"`
		RateTTL   time.Duration `envconfig:"AUTH_RATE_TTL" default:"10m"`
	}

	Import struct {
		MaxUploadBytes    int64  `envconfig:"IMPORT_MAX_UPLOAD_BYTES" default:"10485760"`
		PlaceholderPrefix string `envconfig:"IMPORT_PLACEHOLDER_PREFIX" default:"Transazione"`
		UncategorizedName string `envconfig:"IMPORT_UNCATEGORIZED_NAME" default:"Non classificato"`
		SubmitConcurrency int    `envconfig:"IMPORT_SUBMIT_CONCURRENCY" default:"0"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Pool returns the connection pool settings for database.New.
func (c *Config) Pool() database.Pool {
	return database.Pool{
		MaxOpen:     c.DB.MaxOpenConns,
		MaxIdle:     c.DB.MaxIdleConns,
		MaxLifetime: c.DB.ConnMaxLifetime,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Import.PlaceholderPrefix == "" {
		return nil, errors.New("IMPORT_PLACEHOLDER_PREFIX must not be empty")
	}

	if cfg.Import.SubmitConcurrency < 0 {
		return nil, errors.New("IMPORT_SUBMIT_CONCURRENCY must not be negative")
	}

	return &cfg, nil
}
