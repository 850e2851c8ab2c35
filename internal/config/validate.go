package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rkaran/silverdash/internal/render"
)

// Validate checks that all required fields are set and values are valid.
func (c *DashboardConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Data.Source {
	case SourceCSV:
		if c.Data.StatesCSV == "" {
			return errors.New("data.states_csv is required")
		}
	case SourcePostgres:
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("data.source must be %q or %q, got %q", SourceCSV, SourcePostgres, c.Data.Source)
	}

	if c.Database.Postgres.Enabled() && c.Data.Source == SourceCSV {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	}

	if inr, ok := c.Pricing.CurrencyRates["INR"]; !ok {
		return errors.New("pricing.currency_rates must include INR")
	} else if inr != 1 {
		return fmt.Errorf("pricing.currency_rates.INR must be 1, got %g", inr)
	}
	for code, rate := range c.Pricing.CurrencyRates {
		if rate <= 0 {
			return fmt.Errorf("pricing.currency_rates.%s must be > 0, got %g", code, rate)
		}
	}

	if c.Uploads.MaxBytes < 1 {
		return errors.New("uploads.max_bytes must be >= 1")
	}
	if c.Uploads.MaxEntries < 1 {
		return errors.New("uploads.max_entries must be >= 1")
	}

	if c.Map.Width < render.MinMapWidth || c.Map.Height < render.MinMapHeight {
		return fmt.Errorf("map dimensions must be at least %dx%d, got %dx%d",
			render.MinMapWidth, render.MinMapHeight, c.Map.Width, c.Map.Height)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

// ParseLevel maps a logging.level value onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", s)
}
