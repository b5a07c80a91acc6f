// SPDX-License-Identifier: MPL-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/args"
)

const (
	defaultWidth = 80
	maxFlagWidth = 36
	headerBar    = "--------------------------------------------------------------------------------"
)

// Renderer renders help text. Colors follow the terminal capabilities of
// the writer it was created for.
type Renderer struct {
	width  int
	styles styles
}

// NewRenderer creates a Renderer for text that will be written to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		width:  defaultWidth,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

// RenderHelp lays out the header, description, usage line and one section
// per argument source, required arguments first.
func (r *Renderer) RenderHelp(details appinfo.Details, sources []args.SourceInfo) string {
	var sb strings.Builder

	for i, line := range details.Header {
		if i == 0 {
			sb.WriteString(r.styles.title.Render(line))
		} else {
			sb.WriteString(r.styles.subtitle.Render(line))
		}
		sb.WriteString("\n")
	}

	if desc := strings.TrimSpace(details.Description); desc != "" {
		sb.WriteString("\n")
		sb.WriteString(renderMarkdown(desc))
		sb.WriteString("\n")
	}

	if details.RunningInstructions != "" {
		sb.WriteString("\n")
		sb.WriteString(r.styles.section.Render("Usage:"))
		sb.WriteString(" ")
		sb.WriteString(details.RunningInstructions)
		sb.WriteString("\n")
	}

	for _, src := range sources {
		if len(src.Declarations) == 0 {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(r.styles.section.Render(fmt.Sprintf("Arguments for %s:", src.Name)))
		sb.WriteString("\n")
		sb.WriteString(r.renderSource(src.Declarations))
	}

	if len(details.AdditionalHelp) > 0 {
		sb.WriteString("\n")
		for _, line := range details.AdditionalHelp {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (r *Renderer) renderSource(decls []*args.Declaration) string {
	ordered := make([]*args.Declaration, 0, len(decls))
	for _, d := range decls {
		if d.Required {
			ordered = append(ordered, d)
		}
	}
	for _, d := range decls {
		if !d.Required {
			ordered = append(ordered, d)
		}
	}

	flagWidth := 0
	for _, d := range ordered {
		flagWidth = max(flagWidth, lipgloss.Width(flagSpec(d)))
	}
	flagWidth = min(flagWidth+2, maxFlagWidth)
	docWidth := max(r.width-flagWidth-2, 20)

	var sb strings.Builder
	for _, d := range ordered {
		left := r.styles.flag.Width(flagWidth).Render(flagSpec(d))
		right := r.styles.doc.Width(docWidth).Render(r.docText(d))
		row := lipgloss.JoinHorizontal(lipgloss.Top, "  ", left, right)
		for _, line := range strings.Split(row, "\n") {
			sb.WriteString(strings.TrimRight(line, " "))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (r *Renderer) docText(d *args.Declaration) string {
	doc := d.Doc
	if d.Required {
		return doc + " " + r.styles.required.Render("(required)")
	}
	if def := d.DefaultText(); def != "" {
		doc += fmt.Sprintf(" [default: %s]", def)
	}
	return doc
}

// flagSpec renders "-s,--full_name <value>".
func flagSpec(d *args.Declaration) string {
	var sb strings.Builder
	if d.ShortName != "" {
		sb.WriteString("-")
		sb.WriteString(d.ShortName)
		sb.WriteString(",")
	}
	sb.WriteString("--")
	sb.WriteString(d.FullName)
	switch {
	case !d.TakesValue():
	case d.Kind() == args.KindEnum:
		sb.WriteString(" <" + strings.Join(d.Choices(), "|") + ">")
	case d.Multi():
		sb.WriteString(" <" + d.FullName + "> ...")
	default:
		sb.WriteString(" <" + d.FullName + ">")
	}
	return sb.String()
}

func renderMarkdown(md string) string {
	out, err := glamour.Render(md, "notty")
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// HeaderLines returns the block logged right before a tool runs.
func HeaderLines(details appinfo.Details, raw []string, now time.Time) []string {
	return []string{
		headerBar,
		fmt.Sprintf("Program Name: %s %s", appinfo.Toolkit, details.Name),
		"Program Args: " + strings.Join(raw, " "),
		"Version: " + details.Version,
		"Date/Time: " + now.Format("2006/01/02 15:04:05"),
		headerBar,
	}
}
