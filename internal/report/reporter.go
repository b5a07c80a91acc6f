// SPDX-License-Identifier: MPL-2.0

package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/issue"
	"github.com/stingkit/stingkit/pkg/types"
)

const (
	linePrefix = "##### ERROR"
	separator  = "------------------------------------------------------------------------------------------"

	codeExceptionMessage = "Code exception (see stack trace for error itself)"
)

// Reporter writes fault banners for one tool.
type Reporter struct {
	w       io.Writer
	details appinfo.Details
	verbose bool
	prefix  lipgloss.Style
}

// NewReporter creates a Reporter writing to w. When verbose is set,
// actionable errors include their full error chain.
func NewReporter(w io.Writer, details appinfo.Details, verbose bool) *Reporter {
	return &Reporter{
		w:       w,
		details: details.WithDefaults(),
		verbose: verbose,
		prefix:  lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
	}
}

// Report writes the banner for err and returns the exit code the process
// should terminate with. usage, when non-empty, is printed before a user
// fault banner.
func (r *Reporter) Report(err error, usage string) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}

	if Classify(err) == KindUser {
		if usage != "" {
			fmt.Fprint(r.w, usage)
			if !strings.HasSuffix(usage, "\n") {
				fmt.Fprintln(r.w)
			}
		}
		r.userBanner(err)
		return types.ExitFailure
	}

	var uf UserFaulter
	if errors.As(err, &uf) && uf.UserFault() {
		err = fmt.Errorf("%w (%T)", ErrMissingMessage, err)
	}
	r.internalBanner(WithStack(err))
	return types.ExitFailure
}

func (r *Reporter) userBanner(err error) {
	r.printf("%s", separator)
	r.printf("A USER ERROR has occurred (version %s): ", r.details.Version)
	r.printf("The invalid arguments or inputs must be corrected before %s %s can proceed", appinfo.Toolkit, r.details.Name)
	r.printf("Please do not report this error to the %s issue tracker", appinfo.Toolkit)
	r.printf("")
	r.printf("See the documentation (rerun with -h) for this tool to view allowable command-line arguments.")
	r.docReferences()
	r.printf("")
	r.printf("MESSAGE: %s", r.message(err))
	r.printf("%s", separator)
}

func (r *Reporter) internalBanner(err error) {
	r.printf("%s", separator)
	r.printf("stack trace ")
	if trace := StackTrace(err); trace != "" {
		fmt.Fprintln(r.w, strings.TrimRight(trace, "\n"))
	}
	r.printf("%s", separator)
	r.printf("A %s RUNTIME ERROR has occurred (version %s):", strings.ToUpper(appinfo.Toolkit), r.details.Version)
	r.printf("")
	r.printf("Please check the documentation to see if this is a known problem")
	r.printf("If not, please report the error, with stack trace, at %s", r.details.IssueTracker)
	r.docReferences()
	r.printf("")
	msg := r.message(err)
	if msg == "" {
		msg = codeExceptionMessage
	}
	r.printf("MESSAGE: %s", msg)
	r.printf("%s", separator)
}

func (r *Reporter) docReferences() {
	for _, link := range r.details.DocLinks {
		r.printf("Visit %s for extensive documentation", link)
	}
}

func (r *Reporter) message(err error) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return strings.TrimSpace(ae.Format(r.verbose))
	}
	return strings.TrimSpace(err.Error())
}

// printf writes every line of the formatted text behind the error prefix.
func (r *Reporter) printf(format string, a ...any) {
	formatted := fmt.Sprintf(format, a...)
	prefix := r.prefix.Render(linePrefix)
	if strings.TrimSpace(formatted) == "" {
		fmt.Fprintln(r.w, prefix)
		return
	}
	for _, part := range strings.Split(formatted, "\n") {
		fmt.Fprintln(r.w, prefix+" "+part)
	}
}
