package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/AntonStoeckl/library-circulation-go/circulation/coordinator"
)

// Environment variables read by Load.
const (
	EnvDailyFineRate       = "CIRCULATION_DAILY_FINE_RATE"
	EnvMaxRenewals         = "CIRCULATION_MAX_RENEWALS"
	EnvAllowOverdueRenewal = "CIRCULATION_ALLOW_OVERDUE_RENEWAL"
	EnvDesk                = "CIRCULATION_DESK"
	EnvJournalDriver       = "JOURNAL_DRIVER"
	EnvJournalTable        = "JOURNAL_TABLE"
	EnvPostgresDSN         = "POSTGRES_DSN"
	EnvPostgresAdapter     = "POSTGRES_ADAPTER"
	EnvSQLitePath          = "SQLITE_PATH"
	EnvLogLevel            = "LOG_LEVEL"
)

// Journal drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Postgres adapters, matching the postgresengine factory functions.
const (
	AdapterPGX  = "pgx"
	AdapterSQL  = "sql"
	AdapterSQLX = "sqlx"
)

const (
	defaultDesk         = "main"
	defaultJournalTable = "events"
	defaultSQLitePath   = "circulation.db"
)

var (
	// ErrInvalidConfigValue is returned when an environment variable holds an unusable value.
	ErrInvalidConfigValue = errors.New("invalid config value")

	// ErrReadingEnvFileFailed is returned when a named .env file cannot be read.
	ErrReadingEnvFileFailed = errors.New("reading env file failed")

	// ErrMissingPostgresDSN is returned when the postgres driver is selected without a DSN.
	ErrMissingPostgresDSN = errors.New("POSTGRES_DSN is required for the postgres journal")
)

// Config is the runtime configuration.
type Config struct {
	DailyFineRate       float64
	MaxRenewals         int
	AllowOverdueRenewal bool
	Desk                string
	JournalDriver       string
	JournalTable        string
	PostgresDSN         string
	PostgresAdapter     string
	SQLitePath          string
	LogLevel            slog.Level
}

// Load reads the named .env files, or the .env file in the working directory if there is one,
// then the environment. Variables already set in the environment win over the files.
// Only the implicit .env file may be missing.
func Load(envFiles ...string) (Config, error) {
	err := godotenv.Load(envFiles...)

	switch {
	case err == nil:
	case len(envFiles) == 0 && errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, errors.Join(ErrReadingEnvFileFailed, err)
	}

	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() (Config, error) {
	policy := coordinator.DefaultPolicy()

	cfg := Config{
		DailyFineRate:       policy.DailyFineRate,
		MaxRenewals:         policy.MaxRenewals,
		AllowOverdueRenewal: policy.AllowOverdue,
		Desk:                defaultDesk,
		JournalDriver:       DriverMemory,
		JournalTable:        defaultJournalTable,
		PostgresAdapter:     AdapterPGX,
		SQLitePath:          defaultSQLitePath,
		LogLevel:            slog.LevelInfo,
	}

	var errs []error

	if val, ok := lookup(EnvDailyFineRate); ok {
		rate, err := strconv.ParseFloat(val, 64)
		if err != nil || rate < 0 {
			errs = append(errs, invalid(EnvDailyFineRate, val))
		}
		cfg.DailyFineRate = rate
	}

	if val, ok := lookup(EnvMaxRenewals); ok {
		maxRenewals, err := strconv.Atoi(val)
		if err != nil || maxRenewals < 0 {
			errs = append(errs, invalid(EnvMaxRenewals, val))
		}
		cfg.MaxRenewals = maxRenewals
	}

	if val, ok := lookup(EnvAllowOverdueRenewal); ok {
		allow, err := strconv.ParseBool(val)
		if err != nil {
			errs = append(errs, invalid(EnvAllowOverdueRenewal, val))
		}
		cfg.AllowOverdueRenewal = allow
	}

	if val, ok := lookup(EnvDesk); ok {
		cfg.Desk = val
	}

	if val, ok := lookup(EnvJournalDriver); ok {
		cfg.JournalDriver = strings.ToLower(val)
		switch cfg.JournalDriver {
		case DriverMemory, DriverPostgres, DriverSQLite:
		default:
			errs = append(errs, invalid(EnvJournalDriver, val))
		}
	}

	if val, ok := lookup(EnvPostgresAdapter); ok {
		cfg.PostgresAdapter = strings.ToLower(val)
		switch cfg.PostgresAdapter {
		case AdapterPGX, AdapterSQL, AdapterSQLX:
		default:
			errs = append(errs, invalid(EnvPostgresAdapter, val))
		}
	}

	if val, ok := lookup(EnvJournalTable); ok {
		cfg.JournalTable = val
	}

	if val, ok := lookup(EnvSQLitePath); ok {
		cfg.SQLitePath = val
	}

	if val, ok := lookup(EnvLogLevel); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(val)); err != nil {
			errs = append(errs, invalid(EnvLogLevel, val))
		}
	}

	cfg.PostgresDSN = os.Getenv(EnvPostgresDSN)
	if cfg.JournalDriver == DriverPostgres && cfg.PostgresDSN == "" {
		errs = append(errs, ErrMissingPostgresDSN)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

// Policy returns the circulation policy for coordinator.WithPolicy.
func (c Config) Policy() coordinator.Policy {
	return coordinator.Policy{
		DailyFineRate: c.DailyFineRate,
		MaxRenewals:   c.MaxRenewals,
		AllowOverdue:  c.AllowOverdueRenewal,
	}
}

// lookup returns the trimmed value of a non-blank environment variable.
func lookup(key string) (string, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	return val, val != ""
}

func invalid(key string, val string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidConfigValue, key, val)
}
