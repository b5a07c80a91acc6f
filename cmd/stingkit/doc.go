// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the stingkit command tree. Every tool is a cobra
// subcommand that hands its raw arguments to the startup sequencer; the
// config subcommands inspect the toolkit configuration.
package cmd
