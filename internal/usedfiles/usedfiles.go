// Package usedfiles loads the list of files known to be used, for example
// files reported by a coverage run or an autoloader trace.
//
// Lists can be plain text (one path per line), JSON, YAML or Markdown. Every
// entry is trimmed, made absolute and cleaned; order and duplicates are kept.
package usedfiles

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents the format of a used-files list
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota
	// FormatText is one path per line, "#" starts a comment line
	FormatText
	// FormatJSON is an array of strings or {"used_files": [...]}
	FormatJSON
	// FormatYAML is a sequence of strings or a mapping with used_files
	FormatYAML
	// FormatMarkdown takes paths from list items and code blocks
	FormatMarkdown
)

// Stdin is the path that makes Load read standard input.
const Stdin = "-"

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "markdown"
	default:
		return "auto"
	}
}

// ParseFormat converts a format name to a Format. The empty string and
// "auto" yield FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return FormatAuto, fmt.Errorf("unsupported used files format: %q", name)
	}
}

// DetectFormat detects the list format based on file extension
// Supported extensions:
//   - .json -> FormatJSON
//   - .yaml, .yml -> FormatYAML
//   - .md, .markdown -> FormatMarkdown
//   - all others -> FormatText
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// LoadOptions controls how entries are normalized.
type LoadOptions struct {
	// Format overrides extension based detection
	Format Format

	// BaseDir resolves relative entries. Empty means the working directory.
	BaseDir string

	// Canonicalize resolves symlinks in every entry. Entries that cannot be
	// resolved (missing files) keep their cleaned absolute path.
	Canonicalize bool
}

// Load reads a used-files list from path, or from standard input when path
// is "-". Standard input defaults to the text format.
func Load(path string, opts LoadOptions) ([]string, error) {
	format := opts.Format

	if path == Stdin {
		if format == FormatAuto {
			format = FormatText
		}
		return Parse(os.Stdin, format, opts)
	}

	if format == FormatAuto {
		format = DetectFormat(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open used files list: %w", err)
	}
	defer file.Close()

	paths, err := Parse(file, format, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return paths, nil
}

// Parse reads entries in the given format and normalizes them. FormatAuto is
// treated as FormatText.
func Parse(r io.Reader, format Format, opts LoadOptions) ([]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var raw []string
	switch format {
	case FormatAuto, FormatText:
		raw = parseText(content)
	case FormatJSON:
		raw, err = parseJSON(content)
	case FormatYAML:
		raw, err = parseYAML(content)
	case FormatMarkdown:
		raw, err = parseMarkdown(content)
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
	if err != nil {
		return nil, err
	}

	return normalize(raw, opts)
}

// normalize trims, absolutizes and cleans entries, dropping empty ones.
func normalize(raw []string, opts LoadOptions) ([]string, error) {
	paths := make([]string, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !filepath.IsAbs(entry) && opts.BaseDir != "" {
			entry = filepath.Join(opts.BaseDir, entry)
		}
		abs, err := filepath.Abs(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", entry, err)
		}

		if opts.Canonicalize {
			if resolved, err := filepath.EvalSymlinks(abs); err == nil {
				abs = resolved
			}
		}
		paths = append(paths, abs)
	}
	return paths, nil
}
