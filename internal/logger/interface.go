package logger

// Logger defines the interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
	LogErrorf(err error, format string, args ...interface{}) error
	LogFatal(err error, context string)
	LogDebug(message string, fields map[string]interface{})
	LogWarn(message string, fields map[string]interface{})

	// WithFields returns a logger that adds fields to every entry
	WithFields(fields map[string]interface{}) Logger
	// WithRequestID returns a logger scoped to one HTTP request
	WithRequestID(requestID string) Logger
	// WithSessionID returns a logger scoped to one upload session
	WithSessionID(sessionID string) Logger
}
