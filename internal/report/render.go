package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harrison/deadfiles/internal/models"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Unused files</title>
</head>
<body>
`

const htmlFooter = `</body>
</html>
`

// Render writes rep to w in the given format.
//
// The text format prints one unused path per line and nothing else, so it
// can be piped into other tools. The other formats include the run details.
func Render(w io.Writer, rep *models.Report, format Format) error {
	var err error
	switch format {
	case FormatText:
		err = renderText(w, rep)
	case FormatJSON:
		err = renderJSON(w, rep)
	case FormatYAML:
		err = renderYAML(w, rep)
	case FormatMarkdown:
		_, err = io.WriteString(w, Markdown(rep))
	case FormatHTML:
		err = renderHTML(w, rep)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s report: %w", format, err)
	}
	return nil
}

// Bytes renders rep into memory.
func Bytes(rep *models.Report, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, rep, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderText(w io.Writer, rep *models.Report) error {
	for _, path := range rep.Unused {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
	}
	return nil
}

func renderJSON(w io.Writer, rep *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func renderYAML(w io.Writer, rep *models.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}

// Markdown formats rep as a Markdown document. Unused files are listed
// relative to the root.
func Markdown(rep *models.Report) string {
	var sb strings.Builder

	sb.WriteString("# Unused files\n\n")

	root := codeSpan(rep.Root)
	if rep.RootInferred {
		root += " (inferred)"
	}
	fmt.Fprintf(&sb, "- Run: %s\n", rep.RunID)
	fmt.Fprintf(&sb, "- Generated: %s\n", rep.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "- Root: %s\n", root)
	if len(rep.Extensions) > 0 {
		exts := make([]string, len(rep.Extensions))
		for i, ext := range rep.Extensions {
			exts[i] = codeSpan(ext)
		}
		fmt.Fprintf(&sb, "- Extensions: %s\n", strings.Join(exts, ", "))
	}
	for _, ex := range rep.Exclusions {
		fmt.Fprintf(&sb, "- Excluding: %s\n", codeSpan(ex))
	}
	fmt.Fprintf(&sb, "- Used files: %d, scanned: %d, excluded: %d, candidates: %d\n",
		rep.UsedFiles, rep.Scanned, rep.Excluded, rep.Candidates)

	fmt.Fprintf(&sb, "\n## Unused (%d)\n\n", len(rep.Unused))
	if len(rep.Unused) == 0 {
		sb.WriteString("_No unused files found._\n")
	}
	for _, path := range rep.RelativeUnused() {
		fmt.Fprintf(&sb, "- %s\n", codeSpan(path))
	}

	if len(rep.UsedNotFound) > 0 {
		fmt.Fprintf(&sb, "\n## Used files not found (%d)\n\n", len(rep.UsedNotFound))
		for _, path := range rep.UsedNotFound {
			fmt.Fprintf(&sb, "- %s\n", codeSpan(path))
		}
	}

	return sb.String()
}

func renderHTML(w io.Writer, rep *models.Report) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(rep)), &body); err != nil {
		return err
	}

	if _, err := io.WriteString(w, htmlHeader); err != nil {
		return err
	}
	if _, err := body.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFooter)
	return err
}

// codeSpan wraps s in backticks, using a longer fence when s contains one.
func codeSpan(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}
