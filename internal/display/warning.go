// Package display formats user-facing warnings for the deadfiles CLI.
//
// Warnings are written in yellow when the destination is a terminal and as
// plain text otherwise, so redirected output never carries ANSI codes.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	yellow = "\x1b[33m"
	reset  = "\x1b[0m"
)

// DefaultMaxFiles caps the file list of a warning built by WarnUsedNotFound.
const DefaultMaxFiles = 20

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	MaxFiles   int      // Files listed before "... and N more" (0 = all)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning to out, in yellow if out is a terminal.
func (w Warning) Display(out io.Writer) {
	fmt.Fprint(out, w.Format(IsTerminal(out)))
}

// Format renders the warning, with ANSI color codes when color is true.
func (w Warning) Format(color bool) string {
	var b strings.Builder

	if color {
		b.WriteString(yellow)
	}
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		shown := w.Files
		if w.MaxFiles > 0 && len(shown) > w.MaxFiles {
			shown = shown[:w.MaxFiles]
		}
		for _, file := range shown {
			b.WriteString("      - ")
			b.WriteString(file)
			b.WriteString("\n")
		}
		if hidden := len(w.Files) - len(shown); hidden > 0 {
			fmt.Fprintf(&b, "      ... and %d more\n", hidden)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if color {
		b.WriteString(reset)
	}
	return b.String()
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WarnUsedNotFound creates the warning shown when used-file entries were not
// among the scanned candidates.
func WarnUsedNotFound(root string, files []string) Warning {
	noun := "files"
	if len(files) == 1 {
		noun = "file"
	}
	return Warning{
		Title:      fmt.Sprintf("%d used %s not found under %s", len(files), noun, root),
		Message:    "These entries are outside the inspected root, excluded, or missing on disk.",
		Files:      files,
		MaxFiles:   DefaultMaxFiles,
		Suggestion: "Check --root and --exclude, or use --canonicalize-used if the list contains symlinked paths.",
	}
}

// WarnEmptyResult creates the warning shown when nothing was scanned, which
// usually points at a wrong root or extension list.
func WarnEmptyResult(root string, extensions []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("no files with extensions %s found under %s", strings.Join(extensions, ", "), root),
		Suggestion: "Check --root and --ext.",
	}
}
