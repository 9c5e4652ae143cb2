package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// Config defaults match the docker compose setup.
type Config struct {
	PostgresAddress  string `env:"POSTGRES_ADDRESS" envDefault:"localhost" validate:"required"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5433" validate:"required,numeric"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"postgres" validate:"required"`
	PostgresUsername string `env:"POSTGRES_USERNAME" envDefault:"postgres" validate:"required"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"testpassword"`

	Port     int    `env:"PORT" envDefault:"9446" validate:"min=1,max=65535"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`

	StorageBackend string `env:"LEDGER_STORAGE" envDefault:"postgres" validate:"oneof=postgres memory"`
	JWTSecret      string `env:"JWT_SECRET,required" validate:"required"`

	WriteWorkers     int   `env:"LEDGER_WRITE_WORKERS" envDefault:"8" validate:"min=1"`
	WriteQueueSize   int   `env:"LEDGER_WRITE_QUEUE" envDefault:"1000" validate:"min=1"`
	MaxWriteAttempts int   `env:"LEDGER_MAX_WRITE_ATTEMPTS" envDefault:"3" validate:"min=1"`
	CurrencyScale    int32 `env:"LEDGER_CURRENCY_SCALE" envDefault:"0" validate:"min=0,max=8"`

	ProductCatalogPath string `env:"PRODUCT_CATALOG_PATH"`
}

func ProcessEnvironmentVariables() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("ProcessEnvironmentVariables: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("ProcessEnvironmentVariables: %w", err)
	}

	return &cfg, nil
}
