// SPDX-License-Identifier: MPL-2.0

package logging

import "github.com/charmbracelet/log"

// Pattern is the shape of every emitted record.
type Pattern struct {
	Name            string
	TimeFormat      string
	CallerFormatter log.CallerFormatter
	Formatter       log.Formatter
	Prefix          string
}

var (
	// CompactPattern is one short line per record.
	CompactPattern = Pattern{
		Name:            "compact",
		TimeFormat:      "15:04:05.000",
		CallerFormatter: log.ShortCallerFormatter,
		Formatter:       log.TextFormatter,
	}

	// VerbosePattern carries the full date, the full caller path and every
	// field as key=value, for debugging runs.
	VerbosePattern = Pattern{
		Name:            "verbose",
		TimeFormat:      "02 Jan 2006 15:04:05.000",
		CallerFormatter: log.LongCallerFormatter,
		Formatter:       log.LogfmtFormatter,
		Prefix:          "debug",
	}
)
