package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/platform/observability"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBName            string        `env:"DB_NAME"`
	DBSslMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	DeferredPaymentEnabled bool             `env:"DEFERRED_PAYMENT_ENABLED" envDefault:"false"`
	DeferredDefaultCeiling int64            `env:"DEFERRED_DEFAULT_CEILING" envDefault:"0"`
	DeferredCeilings       map[string]int64 `env:"DEFERRED_CEILINGS" envSeparator:"," envKeyValSeparator:":"`

	AuditRetention         time.Duration `env:"AUDIT_RETENTION" envDefault:"2160h"`
	AuditRetentionSchedule string        `env:"AUDIT_RETENTION_SCHEDULE" envDefault:"0 0 3 * * *"`
	AuditRetentionTimeout  time.Duration `env:"AUDIT_RETENTION_TIMEOUT" envDefault:"5m"`

	LedgerMaxAttempts int `env:"LEDGER_MAX_ATTEMPTS" envDefault:"3"`

	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"fulfillment"`
	Environment  string `env:"ENVIRONMENT" envDefault:"local"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELStdout   bool   `env:"OTEL_STDOUT" envDefault:"false"`
}

// LoadConfig reads .env when present and parses the environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) DBOptions() postgres.Options {
	return postgres.Options{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxOpenConns / 2,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	}
}

func (c Config) Observability() observability.Config {
	return observability.Config{
		ServiceName:  c.ServiceName,
		Environment:  c.Environment,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
		Stdout:       c.OTELStdout,
	}
}

// DeferredPaymentPolicy converts the ceiling settings. Keys of
// DEFERRED_CEILINGS are serving unit ids.
func (c Config) DeferredPaymentPolicy() (services.DeferredPaymentPolicy, error) {
	defaultCeiling, err := kernel.NewAmount(c.DeferredDefaultCeiling)
	if err != nil {
		return services.DeferredPaymentPolicy{}, fmt.Errorf("DEFERRED_DEFAULT_CEILING: %w", err)
	}

	ceilings := make(map[kernel.UUID]kernel.Amount, len(c.DeferredCeilings))
	for rawID, rawCeiling := range c.DeferredCeilings {
		id, idErr := kernel.UUIDFromString(rawID)
		if idErr != nil {
			return services.DeferredPaymentPolicy{}, fmt.Errorf("DEFERRED_CEILINGS: %w", idErr)
		}
		ceiling, amountErr := kernel.NewAmount(rawCeiling)
		if amountErr != nil {
			return services.DeferredPaymentPolicy{}, fmt.Errorf("DEFERRED_CEILINGS: %w", amountErr)
		}
		ceilings[id] = ceiling
	}

	return services.DeferredPaymentPolicy{
		Enabled:        c.DeferredPaymentEnabled,
		DefaultCeiling: defaultCeiling,
		Ceilings:       ceilings,
	}, nil
}
