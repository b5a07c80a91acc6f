// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// LevelDebug logs everything.
	LevelDebug Level = iota
	// LevelInfo is the default.
	LevelInfo
	// LevelWarn logs warnings and worse.
	LevelWarn
	// LevelError logs errors and worse.
	LevelError
	// LevelFatal logs only fatal records.
	LevelFatal
	// LevelOff disables logging.
	LevelOff
)

// ErrUnknownLevel is the sentinel wrapped by UnknownLevelError.
var ErrUnknownLevel = errors.New("unknown logging level")

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL", "OFF"}

type (
	// Level is a logging threshold.
	Level int

	// UnknownLevelError is returned by ParseLevel for a name outside the vocabulary.
	UnknownLevelError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("unable to match: %s to a logging level, make sure it's a valid level (%s)", e.Value, strings.Join(LevelNames(), ", "))
}

// Unwrap returns ErrUnknownLevel for errors.Is compatibility.
func (e *UnknownLevelError) Unwrap() error { return ErrUnknownLevel }

// LevelNames returns the accepted level names, most verbose first.
func LevelNames() []string { return levelNames[:] }

// ParseLevel matches s case-insensitively against LevelNames.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return Level(i), nil
		}
	}
	return 0, &UnknownLevelError{Value: s}
}

// String returns the upper-case level name.
func (l Level) String() string {
	if l < LevelDebug || l > LevelOff {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

func (l Level) backend() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	case LevelFatal:
		return log.FatalLevel
	case LevelOff:
		return log.Level(math.MaxInt32)
	default:
		return log.InfoLevel
	}
}
