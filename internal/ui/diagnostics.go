package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"strata/internal/diag"
	"strata/internal/source"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan, color.Bold)
	caretMark    = color.New(color.FgRed, color.Bold)
)

// PrintDiagnostics writes each diagnostic as a location header followed
// by the offending source line with a caret underline.
func PrintDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, useColor bool) {
	prev := color.NoColor
	color.NoColor = !useColor
	defer func() { color.NoColor = prev }()

	for _, d := range bag.Items() {
		printOne(w, d, fs)
	}
}

func printOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s:%d:%d: %s[%04d]: %s\n",
		file.Path, start.Line, start.Col,
		severityLabel(d.Severity), d.Code, d.Message)
	printContext(w, file, d.Primary, start)

	for _, note := range d.Notes {
		noteStart, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			file.Path, noteStart.Line, noteStart.Col,
			infoLabel.Sprint("note"), note.Msg)
	}
}

func printContext(w io.Writer, file *source.File, span source.Span, start source.LineCol) {
	text, lineStart := lineAt(file, start.Line)
	if text == "" && span.Start >= uint32(len(file.Content)) {
		return
	}
	fmt.Fprintf(w, "  %s\n", text)

	// The caret column accounts for wide runes before the span.
	prefix := text
	if off := int(span.Start) - int(lineStart); off >= 0 && off <= len(text) {
		prefix = text[:off]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	width := 1
	if end := int(span.End) - int(lineStart); end > len(prefix) {
		if end > len(text) {
			end = len(text)
		}
		if end > len(prefix) {
			width = runewidth.StringWidth(text[len(prefix):end])
		}
	}
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(w, "  %s%s\n", pad, caretMark.Sprint(strings.Repeat("^", width)))
}

// lineAt returns the 1-based line's text without its newline, plus the
// byte offset the line starts at. LineIdx records newline positions:
// line 1 starts at 0, line n at LineIdx[n-2]+1.
func lineAt(file *source.File, line uint32) (string, uint32) {
	if line == 0 {
		return "", 0
	}
	start := uint32(0)
	if line > 1 {
		if int(line-2) >= len(file.LineIdx) {
			return "", 0
		}
		start = file.LineIdx[line-2] + 1
	}
	end := uint32(len(file.Content))
	if int(line-1) < len(file.LineIdx) {
		end = file.LineIdx[line-1]
	}
	return string(file.Content[start:end]), start
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return errorLabel.Sprint("error")
	case diag.SevWarning:
		return warningLabel.Sprint("warning")
	default:
		return infoLabel.Sprint("info")
	}
}
