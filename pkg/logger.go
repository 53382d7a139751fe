package semverbump

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// NewLogger returns an info level logger writing to stderr, or a debug level
// one when verbose is set. Output is human readable on a terminal and JSON
// otherwise.
func NewLogger(verbose bool) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if verbose {
		lvl = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	if term.IsTerminal(int(os.Stderr.Fd())) {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableCaller = !verbose
	return cfg.Build()
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
