// Package fileutil provides the directory scanner used to enumerate candidate
// source files.
//
// ScanDirectory walks a directory tree and returns the absolute paths of all
// regular files that carry one of the requested extensions. Output is sorted
// and free of duplicates, so the same tree always produces the same slice.
//
// # Filtering
//
//   - Extensions: ".php" and "php" are equivalent; matching is case-sensitive
//     unless CaseInsensitiveExt is set
//   - ExcludeDirs: directory names pruned at any depth (see VCSDirs)
//   - IgnoreDotFiles: prunes ".cache/" and skips ".php_cs.php" alike
//
// Symlinks to regular files are reported; broken symlinks and symlinks to
// directories are counted in ScanResult.Skipped and otherwise ignored. The
// walker never descends through a symlinked directory.
//
// # Canonical paths
//
// With Canonicalize set every reported path is passed through
// filepath.EvalSymlinks, so two links to one file collapse to a single entry
// and results can be compared by string equality against other canonical
// paths.
//
//	result, err := fileutil.ScanDirectory("/srv/app/src", fileutil.ScanOptions{
//	    Extensions:     []string{".php"},
//	    ExcludeDirs:    fileutil.VCSDirs,
//	    IgnoreDotFiles: true,
//	    Canonicalize:   true,
//	})
//
// # Errors
//
// Unlike a best-effort walk, any error aborts the scan: a missing root, a root
// that is a file, or a subdirectory that cannot be read all return an error
// and no files.
package fileutil
