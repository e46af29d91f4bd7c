package cmd

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// logger returns the CLI logger: a development console logger on stderr
// when verbose, a no-op logger otherwise.
func logger() *zap.SugaredLogger {
	once.Do(func() {
		base := zap.NewNop()
		if Verbose != nil && *Verbose {
			if l, err := zap.NewDevelopment(); err == nil {
				base = l
			}
		}
		sugar = base.Sugar()
	})
	return sugar
}

// SyncLogger flushes any buffered log entries. Call this before exiting.
func SyncLogger() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
