package utils

const (
	// LoggerInitializationFailedMessageFormat is used when the application logger cannot be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "collect failed"
)
