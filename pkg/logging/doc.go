// Package logging provides structured logging utilities for the EPM poller.
//
// This package wraps the standard library slog package with EPM defaults so
// every component logs the same way: JSON to stderr, tagged with the module
// and version of the binary, with source locations at debug level.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Missing telemetry items, recovered decode failures
//   - ERROR: Failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("epm", version, "info")
//	    slog.Info("poller started", "devices", 3)
//	}
//
// Components accept a *slog.Logger and scope it with attributes:
//
//	logger := slog.Default().With("component", "poller", "device", cfg.DeviceName)
//
// # Environment Configuration
//
// When no explicit level is passed, LOG_LEVEL controls verbosity:
//
//	LOG_LEVEL=debug epm run --config epm.yaml
package logging
