package models

import (
	"path/filepath"
	"time"
)

// Report is the outcome of one deadfiles run, as rendered by internal/report.
type Report struct {
	RunID        string    `json:"run_id" yaml:"run_id"`               // Unique identifier of the run (uuid)
	GeneratedAt  time.Time `json:"generated_at" yaml:"generated_at"`   // When the report was built
	Root         string    `json:"root" yaml:"root"`                   // Directory that was scanned
	RootInferred bool      `json:"root_inferred" yaml:"root_inferred"` // Root derived from the used files
	Extensions   []string  `json:"extensions" yaml:"extensions"`       // Designated source extensions
	Exclusions   []string  `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`

	UsedFiles  int `json:"used_files" yaml:"used_files"` // Entries in the used-files list
	Scanned    int `json:"scanned" yaml:"scanned"`       // Files found before exclusion
	Excluded   int `json:"excluded" yaml:"excluded"`     // Files dropped by exclusion rules
	Candidates int `json:"candidates" yaml:"candidates"` // Files left after exclusion

	Unused       []string `json:"unused" yaml:"unused"`
	UsedNotFound []string `json:"used_not_found,omitempty" yaml:"used_not_found,omitempty"`
}

// HasUnused returns true if at least one unused file was found
func (r *Report) HasUnused() bool {
	return len(r.Unused) > 0
}

// RelativeUnused returns the unused files relative to Root. Paths that cannot
// be made relative are returned unchanged.
func (r *Report) RelativeUnused() []string {
	out := make([]string, len(r.Unused))
	for i, path := range r.Unused {
		rel, err := filepath.Rel(r.Root, path)
		if err != nil {
			rel = path
		}
		out[i] = rel
	}
	return out
}
