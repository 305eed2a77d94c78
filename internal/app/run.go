package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/headergen/internal/cli"
	"github.com/agbru/headergen/internal/config"
	apperrors "github.com/agbru/headergen/internal/errors"
	"github.com/agbru/headergen/internal/logging"
	"github.com/agbru/headergen/internal/metrics"
	"github.com/agbru/headergen/internal/orchestration"
	"github.com/agbru/headergen/internal/server"
	"github.com/agbru/headergen/internal/tui"
	"github.com/agbru/headergen/internal/ui"
)

// Run generates the output tree and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level := logging.ParseLevel(a.Config.LogLevel)
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runID := uuid.NewString()
	collector := metrics.NewCollector()
	logger := logging.NewConsoleLogger(a.ErrWriter, level)

	summary, err := a.runGenerate(ctx, out, runID, collector, logger)

	collector.RunFinished(summary.Elapsed)
	if a.Config.MetricsFile != "" {
		if werr := collector.WriteTextfile(a.Config.MetricsFile); werr != nil {
			logger.Error("write metrics file", werr, logging.String("path", a.Config.MetricsFile))
		}
	}

	code := apperrors.HandleRunError(err, a.ErrWriter)
	if code != apperrors.ExitSuccess || a.Config.ServeAddr == "" {
		return code
	}
	srv := server.NewServer(a.Config.ServeAddr, a.Config.OutputDir, collector, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server stopped", err, logging.String("addr", a.Config.ServeAddr))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runGenerate runs the coordinator under the configured timeout with the
// progress display matching the configuration.
func (a *Application) runGenerate(ctx context.Context, out io.Writer, runID string, collector *metrics.Collector, logger logging.Logger) (orchestration.RunSummary, error) {
	if a.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancel()
	}

	groups := orchestration.GroupsFromPresets(a.Presets)
	runCfg := orchestration.RunConfig{
		Quantity:   a.Config.Quantity(),
		OutputRoot: a.Config.OutputDir,
		Workers:    a.Config.Workers,
		Groups:     groups,
	}
	opts := []orchestration.CoordinatorOption{
		orchestration.WithRecorder(collector),
		orchestration.WithRunID(runID),
		orchestration.WithFailFast(a.Config.FailFast),
	}

	if a.Config.TUI {
		// The dashboard owns the terminal; the summary is printed after it exits.
		summary, err := tui.Run(ctx, a.Config, func(ctx context.Context, reporter orchestration.ProgressReporter) (orchestration.RunSummary, error) {
			coord := orchestration.NewCoordinator(a.Factory, append(opts, orchestration.WithReporter(reporter))...)
			return coord.Run(ctx, runCfg)
		}, Version)
		cli.CLISummaryPresenter{}.PresentSummary(summary, out)
		return summary, err
	}

	if !a.Config.Quiet {
		cli.PrintRunConfig(a.Config, orchestration.GroupNames(groups), out)
	}
	opts = append(opts,
		orchestration.WithLogger(logger),
		orchestration.WithReporter(reporterFor(a.Config)),
		orchestration.WithOutput(out))

	summary, err := orchestration.NewCoordinator(a.Factory, opts...).Run(ctx, runCfg)
	if !a.Config.Quiet {
		cli.CLISummaryPresenter{}.PresentSummary(summary, out)
	} else if err == nil {
		fmt.Fprintln(out, summary.OutputRoot)
	}
	return summary, err
}

// reporterFor picks the progress display.
func reporterFor(cfg config.AppConfig) orchestration.ProgressReporter {
	switch {
	case cfg.Quiet:
		return orchestration.NullProgressReporter{}
	case cfg.ProgressStyle == config.ProgressLog:
		return cli.LogReporter{}
	default:
		return cli.BarReporter{}
	}
}
