// Package log provides the ffufai logger: log/slog with a handler that
// masks secrets before they reach the output.
//
// ffufai handles two kinds of secrets. Provider API keys come from the
// environment, and target credentials arrive through ffuf's -H and -b
// flags and are replayed on the probe request. Neither may appear in logs,
// including verbose ones that users paste into bug reports.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("probe request", "authorization", "Bearer abc") // masked
//	slog.SetDefault(logger)
package log
