// Package logging provides structured logging for the globcheck CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// Set Config.Mirror to also write every record as JSON, for instance to a
// log file; records then pass through a [MultiHandler].
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Verbosity
//
// [LevelFromVerbosity] maps repeated -v flags to a level, down to
// [LevelTrace]. Commands find their logger with [FromContext]:
//
//	logger := logging.FromContext(cmd.Context())
//	logger.Debug("decoded", "file", path)
//
// # Quiet Mode
//
// The -q flag sets the level to slog.LevelError; failures are still logged
// before main prints the error itself.
package logging
