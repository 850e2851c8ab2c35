package config

import "time"

// DashboardConfig is the root configuration for a silverdash instance.
type DashboardConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Map      MapConfig      `yaml:"map"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// DataConfig selects where the state purchase table comes from.
type DataConfig struct {
	Source    string        `yaml:"source"`     // "csv" or "postgres"
	StatesCSV string        `yaml:"states_csv"` // Path to State,Silver_Purchased_kg file
	Watch     bool          `yaml:"watch"`      // Reload when the CSV changes
	Debounce  time.Duration `yaml:"debounce"`
}

// DatabaseConfig holds the optional PostgreSQL connection for state purchases.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// Enabled reports whether a database host has been configured.
func (db DBConfig) Enabled() bool {
	return db.Host != ""
}

// PricingConfig holds currency conversion rates from INR.
type PricingConfig struct {
	CurrencyRates map[string]float64 `yaml:"currency_rates"`
}

// UploadsConfig bounds the in-memory GeoJSON upload store.
type UploadsConfig struct {
	MaxBytes      int64         `yaml:"max_bytes"`
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	MaxEntries    int           `yaml:"max_entries"`
}

// MapConfig holds choropleth canvas settings.
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig holds slog handler settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
