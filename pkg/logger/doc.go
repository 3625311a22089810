// Package logger builds slog loggers for fsmkit binaries and provides the
// attribute helpers used by every package that logs.
//
// New assembles a *slog.Logger from functional options covering the output
// format (text or json), minimum level, output writer, static attributes and
// ContextExtractor callbacks. ParseFormat validates format names read from
// configuration. The concrete handler is wrapped in LogHandlerDecorator, which runs
// the extractors on each record so per-context values such as a console session
// id are injected without rebuilding the logger.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, "fsmctl"),
//	    logger.WithContextExtractors(console.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "state changed",
//	    logger.FromState("normal"),
//	    logger.ToState("busy"),
//	    logger.Event("study"),
//	)
//
// # Environments
//
// WithEnvironment selects text at debug level for development and JSON at info level for
// staging and production, and tags records with service and env attributes.
//
// # Attributes
//
// Helper constructors keep key names consistent: State, FromState, ToState,
// Event, Kind, MachineID, SessionID, Command, Component, Duration. Error
// returns an empty Attr for a nil error, so
//
//	log.Info("command done", logger.Error(err))
//
// needs no nil check.
package logger
