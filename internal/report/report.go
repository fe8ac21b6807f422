// Package report renders the per-root console summary and record preview.
// All report output goes to stdout; diagnostics belong to the logger.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/vvka-141/fgaudit/pkg/fgaudit"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Printer writes scan summaries and previews.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer for out. When out is a terminal the preview
// table is capped to the terminal width.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{out: out}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			p.width = w
		}
	}
	return p
}

// RootSummary prints the per-root summary lines and a preview of up to
// fgaudit.PreviewLimit records.
func (p *Printer) RootSummary(result fgaudit.ScanResult) {
	fmt.Fprintf(p.out, "scanned: %s\n", result.Root)
	fmt.Fprintf(p.out, "files found: %d\n", len(result.Records))
	if len(result.Records) == 0 {
		return
	}

	limit := len(result.Records)
	if limit > fgaudit.PreviewLimit {
		limit = fgaudit.PreviewLimit
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("PARENT", "NAME", "SIZE", "LINES", "COMMENTS", "GIT")

	if p.width > 0 {
		t = t.Width(p.width)
	}

	for _, r := range result.Records[:limit] {
		t = t.Row(
			r.Parent,
			r.Name,
			strconv.FormatInt(r.SizeBytes, 10),
			strconv.Itoa(r.Content.TotalLines),
			strconv.Itoa(r.Content.CommentLines),
			gitFlags(r.Repo),
		)
	}
	fmt.Fprintln(p.out, t)

	if len(result.Records) > limit {
		fmt.Fprintf(p.out, "... and %d more\n", len(result.Records)-limit)
	}
}

// Total prints the cross-module file count footer.
func (p *Printer) Total(total int) {
	fmt.Fprintf(p.out, "total files across modules: %d\n", total)
}

// Wrote reports the export destination actually written.
func (p *Printer) Wrote(path string) {
	fmt.Fprintf(p.out, "wrote: %s\n", path)
}

// gitFlags renders the repository status as a compact flag string:
// T tracked, M modified, S staged, "-" for none.
func gitFlags(s fgaudit.RepoStatus) string {
	flags := ""
	if s.Tracked {
		flags += "T"
	}
	if s.Modified {
		flags += "M"
	}
	if s.Staged {
		flags += "S"
	}
	if flags == "" {
		return "-"
	}
	return flags
}
