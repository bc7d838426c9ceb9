// Package report turns finder results into reports and renders them as
// text, JSON, YAML, Markdown or HTML.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/deadfiles/internal/finder"
	"github.com/harrison/deadfiles/internal/models"
)

// Format names a report rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format in documentation order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// ParseFormat converts a format name to a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported report format %q", name)
}

// Meta carries run parameters that are not part of finder.Result.
type Meta struct {
	UsedFiles  int
	Extensions []string
	Exclusions []string
}

// New builds a report for result.
func New(result *finder.Result, meta Meta) *models.Report {
	rep := &models.Report{
		RunID:        uuid.New().String(),
		GeneratedAt:  time.Now().UTC(),
		Root:         result.Root,
		RootInferred: result.RootInferred,
		Extensions:   meta.Extensions,
		Exclusions:   meta.Exclusions,
		UsedFiles:    meta.UsedFiles,
		Scanned:      result.Scanned,
		Excluded:     result.Excluded,
		Candidates:   result.Candidates,
		Unused:       result.Unused,
		UsedNotFound: result.UsedNotFound,
	}
	if rep.Unused == nil {
		rep.Unused = []string{}
	}
	return rep
}
