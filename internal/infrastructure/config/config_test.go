package config_test

import (
	"testing"
	"time"

	"github.com/iho/payments-engine/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ERROR_POLICY", "")
	t.Setenv("METRICS_FILE", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Fatalf("expected default log level warn, got %s", cfg.LogLevel)
	}

	if cfg.MetricsFile != "" {
		t.Fatalf("expected metrics file default to be empty, got %q", cfg.MetricsFile)
	}

	if cfg.VerifyConsistency {
		t.Fatalf("expected consistency check to be off by default")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ERROR_POLICY", "strict")
	t.Setenv("VERIFY_CONSISTENCY", "true")
	t.Setenv("METRICS_FILE", "/tmp/payments.prom")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "45s")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.ErrorPolicy != "strict" {
		t.Fatalf("expected error policy override, got %s", cfg.ErrorPolicy)
	}

	if !cfg.VerifyConsistency {
		t.Fatalf("expected consistency check override")
	}

	if cfg.MetricsFile != "/tmp/payments.prom" {
		t.Fatalf("expected metrics file override, got %s", cfg.MetricsFile)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.HTTPShutdownTimeout != 45*time.Second {
		t.Fatalf("expected shutdown timeout override, got %s", cfg.HTTPShutdownTimeout)
	}

	if cfg.LogFormat != "console" {
		t.Fatalf("expected log format override, got %s", cfg.LogFormat)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidBool(t *testing.T) {
	t.Setenv("VERIFY_CONSISTENCY", "maybe")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
}
