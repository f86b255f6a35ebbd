package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresEnabled  bool   `envconfig:"POSTGRES_ENABLED" default:"false"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432" validate:"numeric"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"cleaner"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"cleaner123"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"apartments_db"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable" validate:"oneof=disable require verify-ca verify-full"`

	InputPath    string `envconfig:"INPUT_PATH" default:"data_input/apartments.csv" validate:"required"`
	InputSheet   string `envconfig:"INPUT_SHEET"`
	OutputPath   string `envconfig:"OUTPUT_PATH" default:"data_output/cleaned_apartments.csv" validate:"required"`
	OutputFormat string `envconfig:"OUTPUT_FORMAT" default:"csv" validate:"oneof=csv xlsx"`

	// ExchangeRate converts GEL to USD. Zero means fetch it from the NBG API.
	ExchangeRate float64       `envconfig:"EXCHANGE_RATE" default:"0" validate:"gte=0"`
	NBGURL       string        `envconfig:"NBG_API_URL" validate:"omitempty,url"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"3" validate:"gte=1,lte=10"`

	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	PrintDiagnostics bool   `envconfig:"PRINT_DIAGNOSTICS" default:"true"`
}

// Load reads the .env file and returns a populated, validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
