package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// VCSDirs lists version control metadata directories skipped when
// ScanOptions.ExcludeDirs is seeded from it.
var VCSDirs = []string{".svn", "_svn", "CVS", "_darcs", ".arch-params", ".monotone", ".bzr", ".git", ".hg"}

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".php", ".inc").
	// Empty means every regular file.
	Extensions []string
	// CaseInsensitiveExt matches extensions regardless of case (".PHP" == ".php")
	CaseInsensitiveExt bool
	// ExcludeDirs is a list of directory names to skip at any depth (e.g., ".git")
	ExcludeDirs []string
	// IgnoreDotFiles skips files and directories whose name starts with "."
	IgnoreDotFiles bool
	// Canonicalize resolves every matched file to its symlink-free absolute path
	Canonicalize bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Root is the absolute directory that was walked
	Root string
	// Files contains the absolute (or canonical) paths of all matched files, sorted
	Files []string
	// Skipped counts entries with a matching name that were not regular files
	// (broken symlinks, sockets, symlinks to directories)
	Skipped int
}

// ScanDirectory walks dir recursively and returns every regular file matching opts.
//
// The scan is all-or-nothing: the first error (missing root, unreadable
// subdirectory, unresolvable path) aborts the walk and no partial result is
// returned.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	// WalkDir does not descend into a symlinked root, so walk its target.
	if opts.Canonicalize {
		root, err = filepath.EvalSymlinks(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
		}
	}

	extMap := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if opts.CaseInsensitiveExt {
			ext = strings.ToLower(ext)
		}
		extMap[ext] = true
	}

	excludeMap := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	result := &ScanResult{
		Root:  root,
		Files: make([]string, 0),
	}
	seen := make(map[string]bool)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing %s: %w", path, walkErr)
		}

		if path == root {
			return nil
		}

		name := d.Name()
		hidden := opts.IgnoreDotFiles && strings.HasPrefix(name, ".")

		if d.IsDir() {
			if hidden || excludeMap[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden || !matchesExtension(name, extMap, opts.CaseInsensitiveExt) {
			return nil
		}

		regular, err := isRegularFile(path, d)
		if err != nil {
			return err
		}
		if !regular {
			result.Skipped++
			return nil
		}

		resolved := path
		if opts.Canonicalize {
			resolved, err = filepath.EvalSymlinks(path)
			if err != nil {
				return fmt.Errorf("failed to resolve path %s: %w", path, err)
			}
		}

		if !seen[resolved] {
			seen[resolved] = true
			result.Files = append(result.Files, resolved)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)

	return result, nil
}

func matchesExtension(name string, extMap map[string]bool, caseInsensitive bool) bool {
	if len(extMap) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	if caseInsensitive {
		ext = strings.ToLower(ext)
	}
	return extMap[ext]
}

// isRegularFile reports whether the entry is a regular file, following a
// symlink one hop to its target. Broken symlinks are not regular files.
func isRegularFile(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}
