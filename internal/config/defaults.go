package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultDataSource      = SourceCSV
	DefaultStatesCSV       = "state_wise_silver_purchased_kg.csv"
	DefaultDebounce        = 500 * time.Millisecond
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 4
	DefaultMinConns        = 0
	DefaultUploadMaxBytes  = 16 << 20
	DefaultUploadTTL       = 30 * time.Minute
	DefaultSweepInterval   = time.Minute
	DefaultUploadEntries   = 32
	DefaultMapWidth        = 1200
	DefaultMapHeight       = 900
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Data source names.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// DefaultCurrencyRates converts one INR into each supported currency.
func DefaultCurrencyRates() map[string]float64 {
	return map[string]float64{
		"INR": 1.0,
		"USD": 0.012,
		"EUR": 0.011,
		"GBP": 0.0095,
		"AUD": 0.018,
	}
}

func (c *DashboardConfig) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	// Data defaults
	if c.Data.Source == "" {
		c.Data.Source = DefaultDataSource
	}
	if c.Data.StatesCSV == "" {
		c.Data.StatesCSV = DefaultStatesCSV
	}
	if c.Data.Debounce == 0 {
		c.Data.Debounce = DefaultDebounce
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Pricing defaults
	if len(c.Pricing.CurrencyRates) == 0 {
		c.Pricing.CurrencyRates = DefaultCurrencyRates()
	}

	// Upload defaults
	if c.Uploads.MaxBytes == 0 {
		c.Uploads.MaxBytes = DefaultUploadMaxBytes
	}
	if c.Uploads.TTL == 0 {
		c.Uploads.TTL = DefaultUploadTTL
	}
	if c.Uploads.SweepInterval == 0 {
		c.Uploads.SweepInterval = DefaultSweepInterval
	}
	if c.Uploads.MaxEntries == 0 {
		c.Uploads.MaxEntries = DefaultUploadEntries
	}

	// Map defaults
	if c.Map.Width == 0 {
		c.Map.Width = DefaultMapWidth
	}
	if c.Map.Height == 0 {
		c.Map.Height = DefaultMapHeight
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
