// Package diagfmt renders diagnostics and debug dumps for the CLI.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"graft/internal/diag"
	"graft/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <url>:<line>:<col>: <SEV>[<CODE>]: <Message>
// затем строку контекста с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, set *source.ResourceSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		lc := set.LineCol(d.Primary.Resource, d.Primary.Start)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			displayURL(set, d.Primary.Resource), lc.Line, lc.Col,
			p.severity(d.Severity, fmt.Sprintf("%s[%s]", d.Severity, d.Code)),
			d.Message)

		if opts.ShowContext {
			writeContext(w, set, d.Primary, p)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				nlc := set.LineCol(n.Span.Resource, n.Span.Start)
				fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
					displayURL(set, n.Span.Resource), nlc.Line, nlc.Col, n.Msg)
			}
		}
	}
}

type palette struct {
	err  *color.Color
	warn *color.Color
	info *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
		info: color.New(color.FgCyan),
	}
	if enabled {
		p.err.EnableColor()
		p.warn.EnableColor()
		p.info.EnableColor()
	} else {
		p.err.DisableColor()
		p.warn.DisableColor()
		p.info.DisableColor()
	}
	return p
}

func (p palette) severity(sev diag.Severity, s string) string {
	switch sev {
	case diag.SevError:
		return p.err.Sprint(s)
	case diag.SevWarning:
		return p.warn.Sprint(s)
	default:
		return p.info.Sprint(s)
	}
}

func displayURL(set *source.ResourceSet, id source.ResourceID) string {
	if res := set.Get(id); res != nil && res.URL != "" {
		return res.URL
	}
	if id == "" {
		return "<unknown>"
	}
	return string(id)
}

// writeContext prints the offending line and a ^~~~ underline covering the
// span's extent within that line.
func writeContext(w io.Writer, set *source.ResourceSet, sp source.Span, p palette) {
	res := set.Get(sp.Resource)
	if res == nil || sp.Start > uint32(len(res.Content)) {
		return
	}
	lineStart := sp.Start
	for lineStart > 0 && res.Content[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := sp.Start
	for lineEnd < uint32(len(res.Content)) && res.Content[lineEnd] != '\n' {
		lineEnd++
	}
	line := string(res.Content[lineStart:lineEnd])
	fmt.Fprintf(w, "  %s\n", line)

	col := int(sp.Start - lineStart)
	width := 1
	if sp.End > sp.Start {
		width = int(sp.End - sp.Start)
	}
	if rest := len(line) - col; width > rest && rest > 0 {
		width = rest
	}
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", col), p.err.Sprint(underline))
}
