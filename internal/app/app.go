package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"labelpc/internal/cli"
	"labelpc/internal/config"
	"labelpc/internal/settings"
	"labelpc/pkg/logging"
)

// Application runs one launch: it normalises the invocation, resolves the
// configuration and hands the result to a Window.
//
// Example usage:
//
//	logger := logging.New(logging.LevelInfo, os.Stderr)
//	resolver := config.NewResolver(config.DefaultConfigPath(), logger)
//	application := app.New(logger, resolver)
//	return application.Run(ctx, inv)
type Application struct {
	logger        *logging.Logger
	resolver      *config.Resolver
	settings      *settings.Store
	windowFactory WindowFactory
	out           io.Writer
}

// Option configures an Application.
type Option func(*Application)

// WithWindowFactory replaces the default headless window.
func WithWindowFactory(factory WindowFactory) Option {
	return func(a *Application) {
		a.windowFactory = factory
	}
}

// WithSettings sets the persisted settings store. By default the store at
// settings.DefaultPath is used.
func WithSettings(store *settings.Store) Option {
	return func(a *Application) {
		a.settings = store
	}
}

// WithOutput sets where --show-config writes its report.
func WithOutput(w io.Writer) Option {
	return func(a *Application) {
		a.out = w
	}
}

// New creates an Application.
func New(logger *logging.Logger, resolver *config.Resolver, opts ...Option) *Application {
	a := &Application{
		logger:        logger,
		resolver:      resolver,
		windowFactory: NewHeadlessWindow,
		out:           os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.settings == nil {
		a.settings = settings.NewStore(settings.DefaultPath(), logger)
	}
	return a
}

// Run executes the launch sequence. The window is constructed only after
// the configuration has resolved and validated; --reset-config and
// --show-config finish before that point.
func (a *Application) Run(ctx context.Context, inv *cli.Invocation) error {
	overrides, err := cli.Normalize(inv, a.logger)
	if err != nil {
		return err
	}

	effective, err := a.resolver.Resolve(inv.ConfigSource, overrides)
	if err != nil {
		return err
	}

	output := cli.ResolveOutput(inv.Output)
	a.logger.Debug("App", "Output target: %s", output)

	if inv.ResetConfig {
		a.logger.Info("App", "Resetting config: %s", a.settings.Path())
		return a.settings.Clear()
	}

	if inv.ShowConfig {
		return WriteReport(a.out, effective, inv.Filename, output)
	}

	if err := a.settings.Load(); err != nil {
		a.logger.Warn("App", "Ignoring unreadable settings: %v", err)
	}

	window, err := a.windowFactory(Launch{
		Config:   effective,
		Filename: inv.Filename,
		Output:   output,
		Settings: a.settings,
		Logger:   a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	return window.Show(ctx)
}
