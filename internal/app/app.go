// Package app wires configuration, the coordinator and the presentation
// layers into the headergen command.
package app

import (
	"errors"
	"flag"
	"io"

	"github.com/agbru/headergen/internal/config"
	apperrors "github.com/agbru/headergen/internal/errors"
	"github.com/agbru/headergen/internal/generator"
)

// Application represents the headergen application instance.
type Application struct {
	Config    config.AppConfig
	Factory   generator.Factory
	Presets   generator.Presets
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom generator Factory for the application.
func WithFactory(f generator.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithPresets replaces the preset set, ignoring -presets.
func WithPresets(p generator.Presets) AppOption {
	return func(a *Application) { a.Presets = p }
}

// New creates a new Application instance by parsing command-line arguments
// and loading the preset set.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = generator.NewDefaultFactory()
	}

	programName := "headergen"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Presets == nil {
		presets, err := loadPresets(cfg.PresetsFile)
		if err != nil {
			return nil, err
		}
		app.Presets = presets
	}
	return app, nil
}

func loadPresets(path string) (generator.Presets, error) {
	if path == "" {
		return generator.DefaultPresets(), nil
	}
	presets, err := generator.LoadPresets(path)
	if err != nil {
		return nil, apperrors.NewConfigError("presets %s: %v", path, err)
	}
	return presets, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
