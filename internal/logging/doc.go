// Package logging provides structured logging for the bridge.
//
// This package wraps Go's log/slog to write JSON-formatted logs that record
// every state transition of the core (boot phases, instrument power, panel
// beats, speech arbitration). Rejected transitions in strict mode are logged at
// WARN so they show up while developing.
//
// # Handlers
//
// A [Logger] always has one primary handler: JSON to {dir}/bridge.log, or JSON
// to stderr when no directory is configured. With [Options.Stderr] set, a text
// handler to stderr is fanned out next to the file handler using
// github.com/samber/slog-multi, so the headless simulator can show a readable
// trace while the file keeps the machine-readable one.
//
// # Context Propagation
//
//	logger, err := logging.NewLogger(dir, "DEBUG")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	power := logger.WithComponent("power")
//	power.WithInstrument("shield-gauge").Debug("settled", "power", "running")
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"settled","component":"power","instrument_id":"shield-gauge","power":"running"}
//
// # Testing
//
// Use [NopLogger] to discard all output.
//
// # Levels
//
// The level is shared by a logger and all of its children and can be changed at
// runtime with [Logger.SetLevel], which is how a config reload takes effect.
package logging
