package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration. Command-line flags take
// precedence over these values.
type Config struct {
	// Processing
	ErrorPolicy       string `env:"ERROR_POLICY"       envDefault:"skip"`
	VerifyConsistency bool   `env:"VERIFY_CONSISTENCY" envDefault:"false"`
	MetricsFile       string `env:"METRICS_FILE"       envDefault:""`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
