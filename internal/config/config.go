// Package config parses and validates the command-line configuration of a
// generation run.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"time"

	apperrors "github.com/agbru/headergen/internal/errors"
)

// EnvPrefix is prepended to every environment variable the tool reads.
const EnvPrefix = "HEADERGEN_"

// Run modes and the per-group quantity each one implies.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"

	DevelopmentQuantity = 5
	ProductionQuantity  = 50000
)

// Progress display styles.
const (
	ProgressBar = "bar"
	ProgressLog = "log"
)

// AppConfig aggregates the configuration of one run.
type AppConfig struct {
	// Mode selects the default quantity: development or production.
	Mode string
	// N overrides the quantity derived from Mode when positive.
	N int
	// OutputDir is the root of the output tree.
	OutputDir string
	// Workers is the number of partitions of the all group.
	Workers int
	// PresetsFile is an optional YAML file replacing the built-in presets.
	PresetsFile string
	// FailFast cancels the remaining units on the first failure.
	FailFast bool
	// Quiet disables progress display.
	Quiet bool
	// ProgressStyle is ProgressBar or ProgressLog.
	ProgressStyle string
	// TUI launches the interactive dashboard.
	TUI bool
	// NoColor disables ANSI colors.
	NoColor bool
	// LogLevel is a zerolog level name.
	LogLevel string
	// MetricsFile receives the Prometheus text exposition after the run.
	MetricsFile string
	// ServeAddr, when set, serves the output tree after a successful run.
	ServeAddr string
	// Timeout bounds the whole run; zero means no deadline.
	Timeout time.Duration
}

// Quantity returns the number of artifacts produced per group.
func (c AppConfig) Quantity() int {
	if c.N > 0 {
		return c.N
	}
	return QuantityForMode(c.Mode)
}

// QuantityForMode maps a run mode to its default quantity. Anything other
// than development is treated as production.
func QuantityForMode(mode string) int {
	if mode == ModeDevelopment {
		return DevelopmentQuantity
	}
	return ProductionQuantity
}

// DefaultWorkers returns the partition count used when -workers is not given.
func DefaultWorkers() int {
	return max(1, runtime.NumCPU())
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	switch {
	case c.Mode != ModeDevelopment && c.Mode != ModeProduction:
		return apperrors.NewConfigError("unknown mode %q (want %s or %s)", c.Mode, ModeDevelopment, ModeProduction)
	case c.N < 0:
		return apperrors.NewConfigError("quantity must not be negative, got %d", c.N)
	case c.Workers < 1:
		return apperrors.NewConfigError("workers must be at least 1, got %d", c.Workers)
	case c.ProgressStyle != ProgressBar && c.ProgressStyle != ProgressLog:
		return apperrors.NewConfigError("unknown progress style %q (want %s or %s)", c.ProgressStyle, ProgressBar, ProgressLog)
	case c.TUI && c.Quiet:
		return apperrors.NewConfigError("-tui and -quiet cannot be combined")
	case c.OutputDir == "":
		return apperrors.NewConfigError("output directory must not be empty")
	case c.Timeout < 0:
		return apperrors.NewConfigError("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags not given on the command line, and validates the result.
//
// Usage and flag errors are written to errorOutput. A -h/-help request
// returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)
	fs.Usage = func() {
		fmt.Fprintf(errorOutput, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorOutput, "Generates %d (development) or %d (production) header files per preset.\n\n",
			DevelopmentQuantity, ProductionQuantity)
		fmt.Fprintln(errorOutput, "Options:")
		fs.PrintDefaults()
		fmt.Fprintf(errorOutput, "\nEvery option may also be set through %s<NAME> environment variables.\n", EnvPrefix)
	}

	config := AppConfig{}
	fs.StringVar(&config.Mode, "mode", ModeProduction, "Run mode: development or production.")
	fs.IntVar(&config.N, "n", 0, "Files per group (0 derives it from -mode).")
	fs.StringVar(&config.OutputDir, "output", "dist", "Root directory of the output tree.")
	fs.StringVar(&config.OutputDir, "o", "dist", "Root directory of the output tree (shorthand).")
	fs.IntVar(&config.Workers, "workers", DefaultWorkers(), "Number of concurrent units for the all group.")
	fs.StringVar(&config.PresetsFile, "presets", "", "YAML file of presets replacing the built-in set.")
	fs.BoolVar(&config.FailFast, "fail-fast", false, "Stop the remaining units on the first failure.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Disable progress display.")
	fs.BoolVar(&config.Quiet, "q", false, "Disable progress display (shorthand).")
	fs.StringVar(&config.ProgressStyle, "progress", ProgressBar, "Progress style: bar or log.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the interactive dashboard.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn or error.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run.")
	fs.StringVar(&config.ServeAddr, "serve", "", "Serve the output tree and /metrics on this address after success.")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Deadline for the whole run (0 disables it).")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorOutput, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
