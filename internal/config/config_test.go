package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	apperrors "github.com/agbru/headergen/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("headergen", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Mode != ModeProduction || cfg.Quantity() != ProductionQuantity {
		t.Errorf("mode = %q quantity = %d, want production/%d", cfg.Mode, cfg.Quantity(), ProductionQuantity)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("OutputDir = %q, want dist", cfg.OutputDir)
	}
	if cfg.Workers != DefaultWorkers() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers())
	}
	if cfg.ProgressStyle != ProgressBar || cfg.Timeout != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c AppConfig)
	}{
		{"development mode", []string{"-mode", "development"}, func(t *testing.T, c AppConfig) {
			if c.Quantity() != DevelopmentQuantity {
				t.Errorf("Quantity() = %d, want %d", c.Quantity(), DevelopmentQuantity)
			}
		}},
		{"explicit quantity wins over mode", []string{"-mode", "development", "-n", "12"}, func(t *testing.T, c AppConfig) {
			if c.Quantity() != 12 {
				t.Errorf("Quantity() = %d, want 12", c.Quantity())
			}
		}},
		{"short output", []string{"-o", "out"}, func(t *testing.T, c AppConfig) {
			if c.OutputDir != "out" {
				t.Errorf("OutputDir = %q", c.OutputDir)
			}
		}},
		{"long output", []string{"-output", "out2"}, func(t *testing.T, c AppConfig) {
			if c.OutputDir != "out2" {
				t.Errorf("OutputDir = %q", c.OutputDir)
			}
		}},
		{"misc", []string{"-workers", "3", "-fail-fast", "-q", "-progress", "log", "-timeout", "1m"}, func(t *testing.T, c AppConfig) {
			if c.Workers != 3 || !c.FailFast || !c.Quiet || c.ProgressStyle != ProgressLog || c.Timeout != time.Minute {
				t.Errorf("unexpected config %+v", c)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("headergen", tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("ParseConfig(%v) error = %v", tt.args, err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative quantity", []string{"-n", "-1"}},
		{"zero workers", []string{"-workers", "0"}},
		{"unknown mode", []string{"-mode", "staging"}},
		{"unknown progress", []string{"-progress", "fancy"}},
		{"tui and quiet", []string{"-tui", "-quiet"}},
		{"positional args", []string{"extra"}},
		{"unknown flag", []string{"-algo", "fast"}},
		{"malformed integer", []string{"-workers", "many"}},
		{"malformed duration", []string{"-timeout", "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("headergen", tt.args, &bytes.Buffer{})
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if code := apperrors.ExitCode(err); code != apperrors.ExitErrorConfig {
				t.Errorf("ExitCode = %d, want %d", code, apperrors.ExitErrorConfig)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("headergen", []string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Usage: headergen")) {
		t.Errorf("usage not printed: %q", buf.String())
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"MODE", "DEVELOPMENT")
	t.Setenv(EnvPrefix+"WORKERS", "7")
	t.Setenv(EnvPrefix+"OUTPUT", "from-env")
	t.Setenv(EnvPrefix+"FAIL_FAST", "yes")
	t.Setenv(EnvPrefix+"TIMEOUT", "30s")

	cfg, err := ParseConfig("headergen", []string{"-workers", "2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != ModeDevelopment {
		t.Errorf("Mode = %q, want development from env", cfg.Mode)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, flag must win over env", cfg.Workers)
	}
	if cfg.OutputDir != "from-env" || !cfg.FailFast || cfg.Timeout != 30*time.Second {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestParseConfig_EnvIgnoredWhenAliasSet(t *testing.T) {
	t.Setenv(EnvPrefix+"OUTPUT", "from-env")
	cfg, err := ParseConfig("headergen", []string{"-o", "flag"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "flag" {
		t.Errorf("OutputDir = %q, want flag value", cfg.OutputDir)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		def      bool
		expected bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.expected {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.expected)
		}
	}
}
