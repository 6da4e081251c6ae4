// Package logging implements the daemon's event log: one fixed-format text
// record per event, filtered by a severity threshold resolved at startup.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Option keys the logger reads from its Config.
const (
	FilenameKey = "logging.filename"
	LevelKey    = "logging.level"
)

// Stdout is the filename value (besides the empty string) that selects the
// process's standard output as the log destination.
const Stdout = "-"

var (
	// ErrSinkUnavailable is returned by New when the configured log file
	// cannot be opened.
	ErrSinkUnavailable = errors.New("log destination unavailable")

	// ErrSinkWrite is returned by Log when writing a record fails.
	ErrSinkWrite = errors.New("log write failed")

	// ErrClosed is returned by Log after Close.
	ErrClosed = errors.New("logger is closed")
)

// Config supplies the options a Logger is constructed from. It is satisfied
// by conf.Config; tests can substitute a map-backed implementation.
type Config interface {
	// Get returns the value for key, or an error if the option is not set.
	Get(key string) (string, error)
}

// Logger writes one timestamped record per event at or below its severity
// threshold. The threshold and destination are fixed at construction. Log
// may be called from multiple goroutines; a mutex keeps each record whole.
type Logger struct {
	mu        sync.Mutex
	threshold Level
	sink      io.Writer
	file      *os.File // non-nil when the logger opened the sink itself and must close it
	closed    bool
}

// New builds a Logger from cfg. An empty or "-" filename borrows the
// process's stdout, which the Logger will never close. Any other value names
// a file opened for appending, which the Logger owns. A file that cannot be
// opened fails construction rather than silently falling back to stdout, so
// the operator's destination choice is never lost. Errors from cfg itself
// are propagated.
func New(cfg Config) (*Logger, error) {
	filename, err := cfg.Get(FilenameKey)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", FilenameKey, err)
	}
	level, err := cfg.Get(LevelKey)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", LevelKey, err)
	}

	l := &Logger{threshold: ParseLevel(level)}
	if filename == "" || filename == Stdout {
		l.sink = os.Stdout
		return l, nil
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	l.sink = f
	l.file = f
	return l, nil
}

// NewWithSink returns a Logger writing to a borrowed sink. Close never
// closes the sink.
func NewWithSink(threshold Level, sink io.Writer) *Logger {
	return &Logger{threshold: threshold, sink: sink}
}

// Threshold returns the severity threshold resolved at construction.
func (l *Logger) Threshold() Level {
	return l.threshold
}

// Log writes one record for msg if level is at or below the threshold:
//
//	<unix-timestamp>: (<tag>): <msg>\n
//
// The tag is the single character for level, not for the threshold. msg is
// written as-is; a message containing newlines breaks the one-record-per-line
// layout for downstream parsers. A suppressed call has no effect and returns
// nil. Write failures are returned without retrying or buffering.
func (l *Logger) Log(level Level, msg string) error {
	if level > l.threshold {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if _, err := fmt.Fprintf(l.sink, "%d: (%c): %s\n", time.Now().Unix(), level.Tag(), msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return nil
}

// Errorf logs a formatted message at LevelError.
func (l *Logger) Errorf(format string, args ...any) error {
	return l.Log(LevelError, fmt.Sprintf(format, args...))
}

// Warningf logs a formatted message at LevelWarning.
func (l *Logger) Warningf(format string, args ...any) error {
	return l.Log(LevelWarning, fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at LevelInfo.
func (l *Logger) Infof(format string, args ...any) error {
	return l.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message at LevelDebug.
func (l *Logger) Debugf(format string, args ...any) error {
	return l.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Close retires the logger. An owned log file is closed; a borrowed stdout
// sink is left untouched. Close is idempotent, and Log calls made afterwards
// return ErrClosed.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
