// Package ui renders load results for people and for scripts.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/tenantload/pkg/tenantload"
)

// Printer writes summaries either as plain lines or styled with lipgloss.
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter creates a Printer. Use DetectMode() == ModeStyled for styled.
func NewPrinter(out io.Writer, styled bool) *Printer {
	return &Printer{out: out, styled: styled}
}

// Outcome prints the per-rule counts and the total. A non-nil err marks the
// load as failed; the counts are what completed before the failure.
func (p *Printer) Outcome(outcome tenantload.Outcome, err error) {
	var b strings.Builder
	for _, r := range outcome.Rules {
		line := fmt.Sprintf("%-16s %-40s %4d files", r.Key, r.SourceDir+" "+SymbolArrowRight+" "+r.URIPath, r.Files)
		if p.styled {
			line = KeyStyle.Render(fmt.Sprintf("%-16s", r.Key)) + " " +
				fmt.Sprintf("%-40s", r.SourceDir+" "+SymbolArrowRight+" "+r.URIPath) + " " +
				MutedStyle.Render(fmt.Sprintf("%4d files", r.Files))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	status := fmt.Sprintf("Loaded %d files", outcome.Loaded)
	if err != nil {
		status = fmt.Sprintf("Load failed after %d files: %v", outcome.Loaded, err)
	}

	if !p.styled {
		fmt.Fprint(p.out, b.String())
		fmt.Fprintln(p.out, status)
		return
	}

	if err != nil {
		status = ErrorStyle.Render(SymbolCross + " " + status)
	} else {
		status = SuccessStyle.Render(SymbolCheck + " " + status)
	}
	body := TitleStyle.Render("tenantload") + "\n" + b.String() + status
	fmt.Fprintln(p.out, BoxStyle.Render(body))
}

// Plan prints one line per planned request.
func (p *Printer) Plan(planned []tenantload.PlannedUpload) {
	for _, u := range planned {
		if p.styled {
			fmt.Fprintf(p.out, "%s %s %s\n", KeyStyle.Render(fmt.Sprintf("%-4s", u.Method)), u.URL, MutedStyle.Render("("+u.Resource.Path+")"))
			continue
		}
		fmt.Fprintf(p.out, "%-4s %s (%s)\n", u.Method, u.URL, u.Resource.Path)
	}

	total := fmt.Sprintf("%d files would be loaded", len(planned))
	if p.styled {
		total = TitleStyle.Render(total)
	}
	fmt.Fprintln(p.out, total)
}
