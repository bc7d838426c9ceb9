package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/deadfiles/internal/models"
)

// colorScheme defines consistent colors for summary counts.
// Green: nothing to report
// Red: unused files found
// Yellow: excluded files and used files not found
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats "label: value" with a cyan label.
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatCounts formats the report counts without color.
// Format: "scanned: N, excluded: N, candidates: N, unused: N[, used not found: N]"
func formatCounts(rep *models.Report) string {
	parts := []string{
		fmt.Sprintf("scanned: %d", rep.Scanned),
		fmt.Sprintf("excluded: %d", rep.Excluded),
		fmt.Sprintf("candidates: %d", rep.Candidates),
		fmt.Sprintf("unused: %d", len(rep.Unused)),
	}
	if len(rep.UsedNotFound) > 0 {
		parts = append(parts, fmt.Sprintf("used not found: %d", len(rep.UsedNotFound)))
	}
	return strings.Join(parts, ", ")
}

// formatColorizedCounts formats the same counts as formatCounts. The unused
// count is red when non-zero and green otherwise.
func formatColorizedCounts(rep *models.Report, scheme *colorScheme) string {
	parts := []string{
		formatColorizedMetric("scanned", rep.Scanned, scheme),
	}

	if rep.Excluded > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.warn.Sprint("excluded"), scheme.value.Sprintf("%d", rep.Excluded)))
	} else {
		parts = append(parts, formatColorizedMetric("excluded", rep.Excluded, scheme))
	}

	parts = append(parts, formatColorizedMetric("candidates", rep.Candidates, scheme))

	unused := len(rep.Unused)
	if unused > 0 {
		parts = append(parts, scheme.fail.Sprintf("unused: %d", unused))
	} else {
		parts = append(parts, scheme.success.Sprintf("unused: %d", unused))
	}

	if n := len(rep.UsedNotFound); n > 0 {
		parts = append(parts, scheme.warn.Sprintf("used not found: %d", n))
	}

	return strings.Join(parts, ", ")
}
