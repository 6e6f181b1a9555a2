// Package logger provides structured logging via the Uber zap library.
package logger

import "go.uber.org/zap"

// Log is the global SugaredLogger. It defaults to a no-op logger so packages
// can log before Init runs (and so tests need no setup).
var Log = zap.NewNop().Sugar()

// Init replaces Log with a real logger at the given level.
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = Log.Sync()
}
