// Package logger builds *slog.Logger instances for mentorkit components.
//
// New takes functional options for output format (JSON or text), level, output
// writer, static attributes and ContextExtractor callbacks. Extractors run on every
// record, so request- or session-scoped values stored in a context.Context end up
// in the log line without being threaded through every call.
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("LOG_ENV"), "subwatch"),
//		logger.WithContextValue("session_id", sessionKey{}),
//	)
//	log.InfoContext(ctx, "subscription checked",
//		logger.Component("subscription"),
//		logger.Branch("ongoing-medium"),
//	)
//
// The attribute helpers in attr.go keep key names consistent across packages.
package logger
