// SPDX-License-Identifier: MPL-2.0

package startup

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/stingkit/stingkit/internal/logging"
)

// Locale is the single locale used for every number a tool prints.
var Locale = language.AmericanEnglish

// Environment is the process-wide state of one run. It is created once
// before parsing and passed explicitly to everything that needs it.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	// Logger starts as a console-only logger at INFO and is reconfigured
	// from the universal arguments once they are loaded.
	Logger *logging.Logger
	// Printer formats numbers in Locale.
	Printer *message.Printer
	Clock   Clock
}

// NewEnvironment returns the baseline environment: canonical locale and a
// console logger on stderr.
func NewEnvironment(stdout, stderr io.Writer) *Environment {
	return &Environment{
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logging.New(stderr),
		Printer: message.NewPrinter(Locale),
		Clock:   RealClock{},
	}
}
