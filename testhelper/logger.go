package testhelper

import (
	"fmt"
	"sync"

	"github.com/K1mc4n/GoClip/internal/logger"
)

// TestLogger provides a logger implementation for testing with debug capabilities.
// Loggers derived with WithFields record into the same entries as their parent.
type TestLogger struct {
	entries      *entries
	fields       map[string]interface{}
	debugEnabled bool
}

// LogEntry represents a log entry with its message and fields
type LogEntry struct {
	Message string
	Fields  map[string]interface{}
}

type entries struct {
	mu    sync.RWMutex
	info  []LogEntry
	error []LogEntry
	warn  []LogEntry
	debug []LogEntry
}

// NewTestLogger creates a new test logger instance
func NewTestLogger(debugEnabled bool) *TestLogger {
	return &TestLogger{
		entries:      &entries{},
		fields:       make(map[string]interface{}),
		debugEnabled: debugEnabled,
	}
}

// LogInfo implements logger.Logger
func (t *TestLogger) LogInfo(msg string, fields map[string]interface{}) {
	t.entries.mu.Lock()
	defer t.entries.mu.Unlock()
	t.entries.info = append(t.entries.info, LogEntry{Message: msg, Fields: t.mergeFields(fields)})
}

// LogError implements logger.Logger
func (t *TestLogger) LogError(err error, msg string) error {
	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}

	t.entries.mu.Lock()
	defer t.entries.mu.Unlock()
	t.entries.error = append(t.entries.error, LogEntry{Message: msg, Fields: t.mergeFields(fields)})
	return err
}

// LogErrorf implements logger.Logger
func (t *TestLogger) LogErrorf(err error, format string, args ...interface{}) error {
	return t.LogError(err, fmt.Sprintf(format, args...))
}

// LogFatal implements logger.Logger without exiting
func (t *TestLogger) LogFatal(err error, context string) {
	t.LogError(err, "FATAL: "+context)
}

// LogDebug implements logger.Logger
func (t *TestLogger) LogDebug(message string, fields map[string]interface{}) {
	if !t.debugEnabled {
		return
	}

	t.entries.mu.Lock()
	defer t.entries.mu.Unlock()
	t.entries.debug = append(t.entries.debug, LogEntry{Message: message, Fields: t.mergeFields(fields)})
}

// LogWarn implements logger.Logger
func (t *TestLogger) LogWarn(message string, fields map[string]interface{}) {
	t.entries.mu.Lock()
	defer t.entries.mu.Unlock()
	t.entries.warn = append(t.entries.warn, LogEntry{Message: message, Fields: t.mergeFields(fields)})
}

// WithFields implements logger.Logger
func (t *TestLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return &TestLogger{
		entries:      t.entries,
		fields:       t.mergeFields(fields),
		debugEnabled: t.debugEnabled,
	}
}

// WithRequestID implements logger.Logger
func (t *TestLogger) WithRequestID(requestID string) logger.Logger {
	return t.WithFields(map[string]interface{}{
		"requestID": requestID,
	})
}

// WithSessionID implements logger.Logger
func (t *TestLogger) WithSessionID(sessionID string) logger.Logger {
	return t.WithFields(map[string]interface{}{
		"sessionID": sessionID,
	})
}

// GetInfoMessages returns all info level messages
func (t *TestLogger) GetInfoMessages() []LogEntry {
	t.entries.mu.RLock()
	defer t.entries.mu.RUnlock()
	return append([]LogEntry(nil), t.entries.info...)
}

// GetErrorMessages returns all error level messages
func (t *TestLogger) GetErrorMessages() []LogEntry {
	t.entries.mu.RLock()
	defer t.entries.mu.RUnlock()
	return append([]LogEntry(nil), t.entries.error...)
}

// GetWarnMessages returns all warning level messages
func (t *TestLogger) GetWarnMessages() []LogEntry {
	t.entries.mu.RLock()
	defer t.entries.mu.RUnlock()
	return append([]LogEntry(nil), t.entries.warn...)
}

// GetDebugMessages returns all debug level messages
func (t *TestLogger) GetDebugMessages() []LogEntry {
	t.entries.mu.RLock()
	defer t.entries.mu.RUnlock()
	return append([]LogEntry(nil), t.entries.debug...)
}

// ClearMessages clears all logged messages
func (t *TestLogger) ClearMessages() {
	t.entries.mu.Lock()
	defer t.entries.mu.Unlock()
	t.entries.info = nil
	t.entries.error = nil
	t.entries.warn = nil
	t.entries.debug = nil
}

// mergeFields merges the logger's base fields with the provided fields
func (t *TestLogger) mergeFields(fields map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(t.fields)+len(fields))
	for k, v := range t.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}
