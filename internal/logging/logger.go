// Package logging builds the diagnostic logger. Diagnostics always go to stderr
// so they never mix with exported data on stdout.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger. Only warnings are shown unless verbose is set.
func New(verbose bool) *zap.Logger {
	return NewWithWriter(verbose, zapcore.Lock(os.Stderr))
}

func NewWithWriter(verbose bool, w zapcore.WriteSyncer) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), w, level)
	return zap.New(core)
}
