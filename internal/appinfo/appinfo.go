// SPDX-License-Identifier: MPL-2.0

// Package appinfo describes a tool for help text and fault banners. Nothing
// in here changes how arguments are resolved.
package appinfo

import (
	"fmt"
	"strings"
)

const (
	// Toolkit is the name of the toolkit binary that hosts every tool.
	Toolkit = "stingkit"

	// DefaultIssueTracker is where internal faults are reported.
	DefaultIssueTracker = "https://github.com/stingkit/stingkit/issues"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// DefaultDocLinks are printed in every fault banner.
	DefaultDocLinks = []string{
		"https://github.com/stingkit/stingkit/tree/main/docs",
	}
)

type (
	// Details describes one tool.
	Details struct {
		// Name is the tool name, also used as the name of its argument source.
		Name string
		// Version is shown in banners; defaults to VersionString().
		Version string
		// Header lines open the help text.
		Header []string
		// Description is markdown rendered under the header.
		Description string
		// RunningInstructions is the usage line.
		RunningInstructions string
		// AdditionalHelp lines close the help text.
		AdditionalHelp []string
		// DocLinks are printed in fault banners.
		DocLinks []string
		// IssueTracker is where internal faults should be reported.
		IssueTracker string
	}

	// Provider supplies the details of a tool.
	Provider interface {
		ApplicationDetails() Details
	}
)

// VersionString returns a formatted version string for display.
func VersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// New returns Details for name with the default header, usage line, links
// and version filled in.
func New(name, summary string) Details {
	return Details{
		Name:                name,
		Version:             VersionString(),
		Header:              DefaultHeader(name, summary),
		RunningInstructions: DefaultRunningInstructions(name),
		DocLinks:            append([]string(nil), DefaultDocLinks...),
		IssueTracker:        DefaultIssueTracker,
	}
}

// DefaultHeader returns the standard two-line help header.
func DefaultHeader(name, summary string) []string {
	header := []string{fmt.Sprintf("%s %s, version %s", Toolkit, name, VersionString())}
	if summary = strings.TrimSpace(summary); summary != "" {
		header = append(header, summary)
	}
	return header
}

// DefaultRunningInstructions returns the standard usage line for name.
func DefaultRunningInstructions(name string) string {
	return fmt.Sprintf("%s %s [arguments]", Toolkit, name)
}

// WithDefaults fills empty fields of d from New(d.Name, "").
func (d Details) WithDefaults() Details {
	def := New(d.Name, "")
	if d.Version == "" {
		d.Version = def.Version
	}
	if len(d.Header) == 0 {
		d.Header = def.Header
	}
	if d.RunningInstructions == "" {
		d.RunningInstructions = def.RunningInstructions
	}
	if len(d.DocLinks) == 0 {
		d.DocLinks = def.DocLinks
	}
	if d.IssueTracker == "" {
		d.IssueTracker = def.IssueTracker
	}
	return d
}
