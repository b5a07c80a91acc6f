// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ErrSinkOpen is the sentinel wrapped by SinkOpenError.
var ErrSinkOpen = errors.New("unable to open log sink")

type (
	// Logger is the process logger. It starts with the console sink only, at
	// INFO, with CompactPattern. Not safe for concurrent reconfiguration.
	Logger struct {
		backend *log.Logger
		console io.Writer
		file    *os.File
		quiet   bool
		level   Level
		pattern Pattern
	}

	// SinkOpenError is returned when the log file cannot be opened.
	SinkOpenError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *SinkOpenError) Error() string {
	return fmt.Sprintf("unable to re-route log output to %s: %v", e.Path, e.Err)
}

// Unwrap returns the sentinel and the underlying open failure.
func (e *SinkOpenError) Unwrap() []error { return []error{ErrSinkOpen, e.Err} }

// New creates a Logger writing to console.
func New(console io.Writer) *Logger {
	l := &Logger{
		backend: log.NewWithOptions(console, log.Options{
			ReportTimestamp: true,
			ReportCaller:    true,
		}),
		console: console,
		level:   LevelInfo,
	}
	l.SetPattern(CompactPattern)
	l.SetLevel(LevelInfo)
	return l
}

// Log returns the backend logger for emitting records.
func (l *Logger) Log() *log.Logger { return l.backend }

// Level returns the current threshold.
func (l *Logger) Level() Level { return l.level }

// Pattern returns the current record pattern.
func (l *Logger) Pattern() Pattern { return l.pattern }

// Quiet reports whether the console sink is detached.
func (l *Logger) Quiet() bool { return l.quiet }

// FilePath returns the path of the file sink, or "" when there is none.
func (l *Logger) FilePath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// SetLevel sets the threshold.
func (l *Logger) SetLevel(level Level) {
	l.level = level
	l.backend.SetLevel(level.backend())
}

// SetPattern sets the record pattern.
func (l *Logger) SetPattern(p Pattern) {
	l.pattern = p
	l.backend.SetTimeFormat(p.TimeFormat)
	l.backend.SetCallerFormatter(p.CallerFormatter)
	l.backend.SetFormatter(p.Formatter)
	l.backend.SetPrefix(p.Prefix)
}

// AddFileSink opens path, truncating it, and copies every record there in
// addition to the console. A second call replaces the previous file sink.
func (l *Logger) AddFileSink(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return &SinkOpenError{Path: path, Err: err}
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.rewire()
	return nil
}

// SetQuiet detaches (or reattaches) the console sink. The file sink is
// unaffected.
func (l *Logger) SetQuiet(quiet bool) {
	l.quiet = quiet
	l.rewire()
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.rewire()
	return err
}

func (l *Logger) rewire() {
	var sinks []io.Writer
	if !l.quiet {
		sinks = append(sinks, l.console)
	}
	if l.file != nil {
		sinks = append(sinks, l.file)
	}
	switch len(sinks) {
	case 0:
		l.backend.SetOutput(io.Discard)
	case 1:
		l.backend.SetOutput(sinks[0])
	default:
		l.backend.SetOutput(io.MultiWriter(sinks...))
	}
}
