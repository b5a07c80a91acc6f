// SPDX-License-Identifier: MPL-2.0

// Package config loads toolkit-wide argument defaults using Viper with CUE
// (or TOML) as the file format.
//
// Configuration is loaded from $STINGKIT_CONFIG when set, else from
// config.cue or config.toml in ~/.config/stingkit (XDG equivalent on Linux,
// ~/Library/Application Support/stingkit on macOS, %APPDATA%\stingkit on
// Windows). Files are validated against an embedded CUE schema.
//
// Values in the arguments table apply to every tool; values in
// tools.<name> apply to one tool and win over the shared table. Environment
// variables such as STINGKIT_ARGUMENTS_LOGGING_LEVEL override file values.
package config
