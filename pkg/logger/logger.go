// Package logger holds the process-wide zap logger. Output meant for the user
// goes through fatih/color in cmd; this logger is for diagnostics.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log *zap.Logger
)

func init() {
	// Nop until Init so packages can log from tests and library use
	Log = zap.NewNop()
}

// Init builds the global logger. production selects the JSON encoder;
// otherwise a colored console encoder is used. verbose lowers the level to
// debug.
func Init(env string, verbose bool) error {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	config.OutputPaths = []string{"stderr"}

	l, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	Log = l
	zap.ReplaceGlobals(Log)
	return nil
}

// Sync flushes any buffered log entries
func Sync() {
	_ = Log.Sync()
}

func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
