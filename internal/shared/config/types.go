package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

// IsSQLite reports whether the sqlite driver is configured.
func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == "sqlite" || d.Driver == "sqlite3"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PlannerConfig tunes the monthly menu generator.
type PlannerConfig struct {
	// Lookback is the variety window in service days.
	Lookback int `mapstructure:"lookback"`
	// StrictVariety excludes repeats inside the window instead of ranking them last.
	StrictVariety bool `mapstructure:"strict_variety"`
	// SeedFromPreviousMonth seeds the variety history with the previous month's tail.
	SeedFromPreviousMonth bool `mapstructure:"seed_from_previous_month"`
	// Concurrency bounds tenant-wide generation across programs.
	Concurrency int `mapstructure:"concurrency"`
}

// InvoicingConfig tunes invoice number allocation.
type InvoicingConfig struct {
	MaxRetries       int    `mapstructure:"max_retries"`
	InitialBackoffMs int    `mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int    `mapstructure:"max_backoff_ms"`
	LockDriver       string `mapstructure:"lock_driver"`
	LockTTLMs        int    `mapstructure:"lock_ttl_ms"`
}
