// SPDX-License-Identifier: MPL-2.0

package help

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorHighlight = lipgloss.Color("#3B82F6")
	colorWarning   = lipgloss.Color("#F59E0B")
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	section  lipgloss.Style
	flag     lipgloss.Style
	required lipgloss.Style
	doc      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(colorPrimary),
		subtitle: r.NewStyle().Foreground(colorMuted),
		section:  r.NewStyle().Bold(true),
		flag:     r.NewStyle().Foreground(colorHighlight),
		required: r.NewStyle().Foreground(colorWarning),
		doc:      r.NewStyle(),
	}
}
