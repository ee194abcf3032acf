package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "stmux.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	verbose      bool
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	withLogger(func(l *logrus.Logger) {
		l.WithError(err).Error("error")
	})
}

// Infof records an operational message when verbose logging is on.
func Infof(format string, args ...interface{}) {
	traceMu.Lock()
	enabled := verbose || traceEnabled
	traceMu.Unlock()
	if !enabled {
		return
	}
	withLogger(func(l *logrus.Logger) {
		l.Infof(format, args...)
	})
}

// Warnf records a non-fatal problem, e.g. a failed best-effort side effect.
func Warnf(format string, args ...interface{}) {
	withLogger(func(l *logrus.Logger) {
		l.Warnf(format, args...)
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// SetVerbose toggles Infof output.
func SetVerbose(enabled bool) {
	traceMu.Lock()
	verbose = enabled
	traceMu.Unlock()
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	traceMu.Lock()
	enabled := traceEnabled
	traceMu.Unlock()
	if !enabled {
		return
	}
	withLogger(func(l *logrus.Logger) {
		l.SetFormatter(&logrus.JSONFormatter{})
		entry := l.WithField("event", event)
		if payload != nil {
			entry = entry.WithField("payload", payload)
		}
		entry.Trace(event)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the current log destination.
func Path() string {
	traceMu.Lock()
	defer traceMu.Unlock()
	return logPath
}

// withLogger opens the log file for the duration of a single entry so
// concurrent stmux invocations append rather than clobber.
func withLogger(fn func(*logrus.Logger)) {
	path := Path()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()

	l := logrus.New()
	l.SetOutput(f)
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	fn(l)
}
