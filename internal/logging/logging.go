// Package logging builds the shell's structured logger, grounded on
// diillson-chatcli's zap.NewProduction/NewDevelopment setup: a single
// *zap.Logger handed to cmd/den and internal/shell, which record config
// resolution and warnings, piped-stdin detection and history load failures
// without cluttering interactive output. Raw-mode transitions and job reaps
// are not logged.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger at zap.WarnLevel, raised to debug when
// DEN_DEBUG is set in the environment, matching spec §10's "interactive
// output stays clean by default" requirement.
func New() *zap.Logger {
	level := zap.WarnLevel
	if v := os.Getenv("DEN_DEBUG"); v != "" && v != "0" {
		level = zap.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "" // interactive shell output, timestamps add noise
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
