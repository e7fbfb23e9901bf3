package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cystub/internal/diag"
	"cystub/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	loc    *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		loc:    mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		path := formatPath(f.Path, opts.PathMode, opts.BaseDir)
		fmt.Fprintf(w, "%s %s %s: %s\n",
			pal.loc.Sprintf("%s:%d:%d:", path, start.Line, start.Col),
			pal.sev[d.Severity].Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message)
		writeSnippet(w, f, d.Primary, opts.Context, pal)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			pos := nf.Position(n.Span.Start)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
				formatPath(nf.Path, opts.PathMode, opts.BaseDir), pos.Line, pos.Col, n.Msg)
		}
	}
}

// writeSnippet prints the primary line (and context lines above it) with a
// caret underline measured in display columns.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, context int8, pal palette) {
	start := f.Position(sp.Start)
	end := f.Position(sp.End)
	first := uint32(1)
	if c := uint32(max(context, 0)); start.Line > c {
		first = start.Line - c
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		text := strings.ReplaceAll(f.GetLine(ln), "\t", "    ")
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, ln), text)
	}

	line := f.GetLine(start.Line)
	prefix := line[:min(int(start.Col-1), len(line))]
	var under string
	if end.Line == start.Line && end.Col > start.Col {
		under = line[min(int(start.Col-1), len(line)):min(int(end.Col-1), len(line))]
	} else {
		under = line[len(prefix):]
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(prefix, "\t", "    "))
	n := max(runewidth.StringWidth(strings.ReplaceAll(under, "\t", "    ")), 1)
	marks := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marks))
}
