// Package logging provides structured logging configuration for mockhttp.
//
// This package wraps log/slog so that the session, the adapters and the CLI
// log the same way. It supports configurable log levels and output formats.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//
//	session := engine.New(engine.WithLogger(logger))
//
// FromEnv builds a Config from MOCKHTTP_LOG_LEVEL and MOCKHTTP_LOG_FORMAT.
//
// # Log Levels
//
// The session logs registrations and successful dispatches at Debug and
// unmatched requests at Warn, so Info is quiet during a passing test run.
//
// # Output Formats
//
//   - Text: Human-readable format for development
//   - JSON: Structured format for log aggregation systems
//
// # Integration
//
// Components accept a *slog.Logger through an option. If no logger is
// provided they use logging.Nop().
package logging
