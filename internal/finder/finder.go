// Package finder reports source files that exist on disk but are missing from
// a list of files known to be used.
//
// The finder enumerates every file with a designated extension below a root
// directory, drops files matching exclusion patterns, subtracts the used
// files and returns the remainder sorted. It never modifies the filesystem
// and keeps no state between calls.
package finder

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/harrison/deadfiles/internal/commonpath"
	"github.com/harrison/deadfiles/internal/fileutil"
)

// DefaultExtensions is used when Options.Extensions is empty.
var DefaultExtensions = []string{".php"}

// Logger receives progress messages. Errors are returned, never logged.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
}

// Options configures a Finder.
type Options struct {
	// Extensions designates source files (default DefaultExtensions)
	Extensions []string

	// CaseInsensitiveExt matches ".PHP" against ".php"
	CaseInsensitiveExt bool

	// ExcludeGlobs are doublestar globs ("vendor/**", "**/*Test.php") matched
	// against the path relative to the scanned root, after the regex templates
	ExcludeGlobs []string

	// IncludeDotFiles scans files and directories starting with "."
	IncludeDotFiles bool

	// IncludeVCS scans version control directories such as .git and .svn
	IncludeVCS bool

	// Logger receives trace and debug messages (optional)
	Logger Logger
}

// Request describes one comparison.
type Request struct {
	// UsedFiles are canonical absolute paths known to be used. Required.
	UsedFiles []string

	// PathToInspect is the directory to scan. Empty means the common
	// directory of UsedFiles.
	PathToInspect string

	// BlacklistedPathTemplates are exclusion regexps, bare or PCRE delimited.
	BlacklistedPathTemplates []string
}

// Result is the outcome of Find.
type Result struct {
	// Root is the absolute directory that was scanned
	Root string

	// RootInferred is true when Root was derived from the used files
	RootInferred bool

	// Scanned counts files with a designated extension before exclusion
	Scanned int

	// Excluded counts scanned files dropped by an exclusion rule
	Excluded int

	// Candidates counts files left after exclusion
	Candidates int

	// Unused lists candidates absent from the used files, sorted
	Unused []string

	// UsedNotFound lists used files that were not among the candidates
	// (outside the root, excluded, or missing), sorted and de-duplicated
	UsedNotFound []string
}

// Finder compares the files on disk against a used-files list.
type Finder struct {
	opts Options
}

// New creates a Finder.
func New(opts Options) *Finder {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	return &Finder{opts: opts}
}

// GetUnusedFiles returns the files under pathToInspect that carry a
// designated extension, match none of blacklistedPathTemplates and are not
// in usedFiles, sorted by byte order.
//
// An empty pathToInspect is replaced by the common directory of usedFiles.
// Returned errors wrap ErrInvalidInput, ErrPatternCompilation or ErrIOFailure.
func (f *Finder) GetUnusedFiles(usedFiles []string, pathToInspect string, blacklistedPathTemplates []string) ([]string, error) {
	result, err := f.Find(Request{
		UsedFiles:                usedFiles,
		PathToInspect:            pathToInspect,
		BlacklistedPathTemplates: blacklistedPathTemplates,
	})
	if err != nil {
		return nil, err
	}
	return result.Unused, nil
}

// Find runs the comparison and reports details alongside the unused files.
func (f *Finder) Find(req Request) (*Result, error) {
	if len(req.UsedFiles) == 0 {
		return nil, fmt.Errorf("%w: empty list of used files", ErrInvalidInput)
	}

	rules, err := compileExclusions(req.BlacklistedPathTemplates, f.opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	result := &Result{Root: req.PathToInspect}
	if result.Root == "" {
		result.Root = commonpath.DetermineCommonPath(req.UsedFiles)
		result.RootInferred = true
		f.debugf("inferred path to inspect %q from %d used files", result.Root, len(req.UsedFiles))
	}
	if result.Root == "" {
		return nil, fmt.Errorf("%w: used files share no common directory", ErrIOFailure)
	}

	if abs, err := filepath.Abs(result.Root); err == nil {
		result.Root = abs
	}

	scan, err := fileutil.ScanDirectory(result.Root, f.scanOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	result.Scanned = len(scan.Files)
	f.debugf("scanned %s: %d files with extensions %v", scan.Root, len(scan.Files), f.opts.Extensions)

	used := make(map[string]bool, len(req.UsedFiles))
	for _, path := range req.UsedFiles {
		used[path] = true
	}

	candidates := make(map[string]bool, len(scan.Files))
	result.Unused = make([]string, 0)
	for _, path := range scan.Files {
		if rule := firstMatch(rules, scan.Root, path); rule != nil {
			result.Excluded++
			f.tracef("excluded %s (matches %q)", path, rule.source)
			continue
		}
		candidates[path] = true
		if !used[path] {
			result.Unused = append(result.Unused, path)
		}
	}
	result.Candidates = len(candidates)

	for path := range used {
		if !candidates[path] {
			result.UsedNotFound = append(result.UsedNotFound, path)
		}
	}

	// Scan output is already sorted; sort again so the contract does not
	// depend on the scanner.
	sort.Strings(result.Unused)
	sort.Strings(result.UsedNotFound)

	f.debugf("%d candidates, %d excluded, %d unused", result.Candidates, result.Excluded, len(result.Unused))

	return result, nil
}

func (f *Finder) scanOptions() fileutil.ScanOptions {
	opts := fileutil.ScanOptions{
		Extensions:         f.opts.Extensions,
		CaseInsensitiveExt: f.opts.CaseInsensitiveExt,
		IgnoreDotFiles:     !f.opts.IncludeDotFiles,
		Canonicalize:       true,
	}
	if !f.opts.IncludeVCS {
		opts.ExcludeDirs = fileutil.VCSDirs
	}
	return opts
}

func (f *Finder) debugf(format string, args ...interface{}) {
	if f.opts.Logger != nil {
		f.opts.Logger.LogDebug(fmt.Sprintf(format, args...))
	}
}

func (f *Finder) tracef(format string, args ...interface{}) {
	if f.opts.Logger != nil {
		f.opts.Logger.LogTrace(fmt.Sprintf(format, args...))
	}
}
