package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.SugaredLogger
	fallbackOnce sync.Once
)

// Init builds the global JSON logger. level overrides the environment default when set.
func Init(appEnv, level string) error {
	config := zap.NewDevelopmentConfig()
	if appEnv == "production" {
		config = zap.NewProductionConfig()
	}
	config.Encoding = "json"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(parsed)
	}

	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	globalLogger = logger.Sugar().With("service", "agora")
	return nil
}

// GetLogger returns the global logger, or a no-op one before Init
func GetLogger() *zap.SugaredLogger {
	if globalLogger == nil {
		fallbackOnce.Do(func() {
			globalLogger = zap.NewNop().Sugar()
		})
	}
	return globalLogger
}

// Close flushes any buffered logs
func Close() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

func Info(message string, fields ...interface{}) {
	GetLogger().Infow(message, fields...)
}

func Debug(message string, fields ...interface{}) {
	GetLogger().Debugw(message, fields...)
}

func Warn(message string, fields ...interface{}) {
	GetLogger().Warnw(message, fields...)
}

func Error(message string, fields ...interface{}) {
	GetLogger().Errorw(message, fields...)
}

// With returns a child logger that always carries fields; the caller skip
// set in Init does not apply to it
func With(fields ...interface{}) *zap.SugaredLogger {
	return GetLogger().Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(fields...)
}
