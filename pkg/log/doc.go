/*
Package log provides structured logging for the sync engine using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper
functions for common logging patterns. All logs include timestamps and
support filtering by severity level.

# Usage

Initializing the Logger:

	import "github.com/eyeMNaughtReal/gutcheck-sync/pkg/log"

	// JSON output (production)
	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

	// Console output (development)
	log.Init(log.Config{
		Level:      log.DebugLevel,
		JSONOutput: false,
	})

Component Loggers:

	hubLog := log.WithComponent("observe")
	hubLog.Info().Str("category", "vitals.heart_rate").Msg("watch registered")

	catLog := log.WithCategory("dietary.sodium")
	catLog.Warn().Msg("write skipped: not authorized")

# Integration Points

This package integrates with:

  - pkg/authz: authorization request and refresh logging
  - pkg/writer: write outcome logging
  - pkg/observe: watch lifecycle and notification logging
  - pkg/fetch: per-metric fetch failure logging
  - pkg/engine: published state transitions
*/
package log
