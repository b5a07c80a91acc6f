// SPDX-License-Identifier: MPL-2.0

package startup

import (
	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/logging"
	"github.com/stingkit/stingkit/internal/protocol"
)

// CommonSource is the name the universal arguments are registered under.
const CommonSource = "common"

// Common holds the arguments every tool accepts.
type Common struct {
	LoggingLevel string
	LogToFile    string
	Quiet        bool
	Debug        bool
	Help         bool
}

// NewCommon returns the universal arguments with their defaults.
func NewCommon() *Common {
	return &Common{LoggingLevel: logging.LevelInfo.String()}
}

// Arguments implements args.Source.
func (c *Common) Arguments() []*args.Declaration {
	return []*args.Declaration{
		args.String(&c.LoggingLevel, args.Spec{
			FullName:  "logging_level",
			ShortName: "l",
			Doc:       "Set the minimum level of logging, i.e. setting INFO gets you INFO up to FATAL, setting ERROR gets you ERROR and FATAL level logging.",
		}),
		args.String(&c.LogToFile, args.Spec{
			FullName:  "log_to_file",
			ShortName: "log",
			Doc:       "Set the logging location",
		}),
		args.Bool(&c.Quiet, args.Spec{
			FullName:  "quiet_output_mode",
			ShortName: "quiet",
			Doc:       "Set the logging to quiet mode, no output to stdout",
		}),
		args.Bool(&c.Debug, args.Spec{
			FullName:  "debug_mode",
			ShortName: "debug",
			Doc:       "Set the logging file string to include a lot of debugging information (SLOW!)",
		}),
		args.Bool(&c.Help, args.Spec{
			FullName:  protocol.HelpArgument,
			ShortName: "h",
			Doc:       "Generate this help message",
		}),
	}
}

// ApplyLogging sets the logger's level and pattern from the loaded values.
// An unknown level is an argument error naming the value.
func (c *Common) ApplyLogging(l *logging.Logger) error {
	level, err := logging.ParseLevel(c.LoggingLevel)
	if err != nil {
		return args.NewArgumentError("%v", err)
	}
	l.SetLevel(level)
	if c.Debug || level == logging.LevelDebug {
		l.SetPattern(logging.VerbosePattern)
	} else {
		l.SetPattern(logging.CompactPattern)
	}
	return nil
}
