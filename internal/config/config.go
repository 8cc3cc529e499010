// Package config defines the fix-routes process configuration and how it is
// loaded.
//
// Neither the rewrite target nor the rewrite rules are configurable; only
// ambient concerns (logging, metrics export) live here.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		MetricsFile: "",
	}
}
