// Package logging provides structured logging for ponyini.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON, text and console output
//   - Context-aware logging with run ids, pony and file names
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithPony(ctx, "Rarity")
//	logger.InfoContext(ctx, "converted", "behaviors", 42)
//
// Libraries that accept a *slog.Logger get the same handler through Slog:
//
//	p := parser.NewParser().WithLogger(logger.Slog())
package logging
