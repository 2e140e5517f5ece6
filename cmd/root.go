package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"labelpc/internal/app"
	"labelpc/internal/cli"
	"labelpc/internal/config"
	"labelpc/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for the launcher.
const (
	// ExitCodeSuccess indicates a normal exit, including --version and --reset-config.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a validation failure or any other error.
	ExitCodeError = 1
	// ExitCodeUsage indicates malformed input: a bad flag, unparsable
	// structured data or an unknown configuration key.
	ExitCodeUsage = 2
)

// newRootCmd builds the labelpc command. appOpts are passed through to the
// Application, which lets tests substitute the window.
func newRootCmd(appOpts ...app.Option) *cobra.Command {
	flags := &cli.CommandFlags{}

	cmd := &cobra.Command{
		Use:   "labelpc [filename]",
		Short: "Annotate images and point clouds with polygons",
		Long: `labelpc opens the annotation window for an image, a label file or a
directory. Options come from built-in defaults, then the config file
(~/.labelpcrc or --config), then the command line; the last one wins per key.`,
		Version: version,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &cli.UsageError{Reason: err}
			}
			return nil
		},
		// SilenceUsage keeps cobra from printing the usage message on
		// errors that are handled by the application.
		SilenceUsage: true,
		// Errors are printed by run, or logged by RunE once a logger exists.
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := flags.LogLevel()
			if err != nil {
				return &cli.UsageError{Reason: err}
			}
			logger := logging.New(level, cmd.ErrOrStderr())

			inv := flags.Invocation(cmd.Flags(), args)
			resolver := config.NewResolver(config.DefaultConfigPath(), logger)
			opts := append([]app.Option{app.WithOutput(cmd.OutOrStdout())}, appOpts...)
			if err := app.New(logger, resolver, opts...).Run(cmd.Context(), inv); err != nil {
				logger.Fatal("Launcher", err, "Failed to launch")
				return &reportedError{err: err}
			}
			return nil
		},
	}

	cli.RegisterFlags(cmd, flags)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Reason: err}
	})
	cmd.SetVersionTemplate(versionTemplate)
	return cmd
}

// run executes the command with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, appOpts ...app.Option) int {
	cmd := newRootCmd(appOpts...)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return getExitCode(err)
	}
	return ExitCodeSuccess
}

// reportedError marks an error that has already been written through the
// logger.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		return ExitCodeUsage
	}

	var parseErr *config.ParseError
	if errors.As(err, &parseErr) {
		return ExitCodeUsage
	}

	var unknownErr *config.UnknownKeyError
	if errors.As(err, &unknownErr) {
		return ExitCodeUsage
	}

	// Validation failures and everything else
	return ExitCodeError
}
