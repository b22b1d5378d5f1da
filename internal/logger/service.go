package logger

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// callerSkip hides LogX and write from the reported caller
const callerSkip = 2

// zapLogger adapts a *zap.Logger to Logger. Scoped fields are bound with zap's With.
type zapLogger struct {
	base *zap.Logger
}

// NewLogger creates a new Logger instance
func NewLogger(config *Config) (Logger, error) {
	zapConfig, err := buildConfig(config)
	if err != nil {
		return nil, err
	}

	base, err := zapConfig.Build(
		zap.AddCallerSkip(callerSkip),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &zapLogger{base: base}, nil
}

func buildConfig(config *Config) (zap.Config, error) {
	zapConfig := zap.NewProductionConfig()
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(string(config.Level))
	if err != nil {
		return zap.Config{}, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if config.Format != "" {
		zapConfig.Encoding = config.Format
	}
	if config.Output != "" {
		zapConfig.OutputPaths = []string{config.Output}
	}
	return zapConfig, nil
}

func (l *zapLogger) LogInfo(msg string, fields map[string]interface{}) {
	l.write(zapcore.InfoLevel, msg, toZapFields(fields)...)
}

func (l *zapLogger) LogDebug(msg string, fields map[string]interface{}) {
	l.write(zapcore.DebugLevel, msg, toZapFields(fields)...)
}

func (l *zapLogger) LogWarn(msg string, fields map[string]interface{}) {
	l.write(zapcore.WarnLevel, msg, toZapFields(fields)...)
}

// LogError logs err and hands it back so callers can return it directly
func (l *zapLogger) LogError(err error, msg string) error {
	l.write(zapcore.ErrorLevel, msg, zap.Error(err))
	return err
}

func (l *zapLogger) LogErrorf(err error, format string, args ...interface{}) error {
	l.write(zapcore.ErrorLevel, fmt.Sprintf(format, args...), zap.Error(err))
	return err
}

// LogFatal logs err and exits the process
func (l *zapLogger) LogFatal(err error, msg string) {
	l.write(zapcore.FatalLevel, msg, zap.Error(err))
}

func (l *zapLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return l
	}
	return &zapLogger{base: l.base.With(toZapFields(fields)...)}
}

func (l *zapLogger) WithRequestID(requestID string) Logger {
	return &zapLogger{base: l.base.With(zap.String("requestID", requestID))}
}

func (l *zapLogger) WithSessionID(sessionID string) Logger {
	return &zapLogger{base: l.base.With(zap.String("sessionID", sessionID))}
}

func (l *zapLogger) write(level zapcore.Level, msg string, fields ...zap.Field) {
	if entry := l.base.Check(level, msg); entry != nil {
		entry.Write(fields...)
	}
}

// toZapFields converts fields in key order so entries read the same every time
func toZapFields(fields map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
