// Package logging provides the structured logger used by labelpc.
//
// The logger is a thin wrapper over Go's slog package that keeps a fixed
// record shape: level, message and a subsystem attribute, plus an optional
// error attribute.
//
// # Lifecycle
//
// A Logger is created exactly once, from the --logger-level flag, before any
// configuration is read:
//
//	level, err := logging.ParseLevel("info")
//	logger := logging.New(level, os.Stderr)
//
// The handle is then passed explicitly into the application. There is no
// package-level logger and nothing in this package mutates global state,
// so tests can create as many independent loggers as they like.
//
// # Log Levels
//
//   - debug: config layering decisions, dereferenced files
//   - info: loaded sources, settings resets, GUI hand-off
//   - warning: recoverable oddities
//   - error: failures reported to the user
//   - fatal: failures that stop the process before the GUI starts
//
// Fatal does not exit the process. The command layer maps the returned
// error to an exit code.
//
// # Subsystems
//
// Each entry carries a subsystem such as "Args", "Config", "Settings" or
// "App" so output can be filtered with ordinary text tools.
package logging
