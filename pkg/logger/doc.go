// Package logger provides a small factory for configured slog.Logger
// instances plus attribute helpers shared across the module.
//
// The factory defaults to JSON output at INFO level, which suits log
// aggregation in production. Development setups usually want text output
// at DEBUG level:
//
//	log := logger.New(
//		logger.WithDevelopment("authkit"),
//	)
//
//	log := logger.New(
//		logger.WithProduction("authkit"),
//		logger.WithOutput(os.Stderr),
//	)
//
// Attribute helpers keep log keys consistent between packages:
//
//	log.Error("session validation failed",
//		logger.Component("session"),
//		logger.Error(err),
//	)
//
// Helpers return an empty slog.Attr for nil input, so call sites do not
// need nil guards.
package logger
