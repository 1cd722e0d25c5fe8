package segno

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// processLogger is used by facade operations and by any pipeline stage
// whose config carries no logger of its own.
var processLogger atomic.Pointer[slog.Logger]

func init() {
	processLogger.Store(silentLogger())
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger installs a process-wide logger. Extractors pick it up on
// their next terminal operation. Passing nil restores the silent
// default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silentLogger()
	}
	processLogger.Store(l)
}

// Logger returns the current process-wide logger.
func Logger() *slog.Logger {
	return processLogger.Load()
}
