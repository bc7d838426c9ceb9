// Package commonpath computes the deepest directory shared by a set of file paths.
package commonpath

import (
	"path/filepath"
	"strings"
)

// DetermineCommonPath returns the longest directory prefix shared by all paths.
//
// Comparison is lexical and segment based: "/app/src" and "/app/srcx" share
// "/app", not "/app/src". A single path yields its parent directory. When the
// only shared segment is the filesystem root the separator itself is returned,
// and when nothing is shared (or a path has no directory part) the result is
// the empty string.
func DetermineCommonPath(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	sep := string(filepath.Separator)
	common := directorySegments(paths[0], sep)

	for _, p := range paths[1:] {
		segments := directorySegments(p, sep)
		n := 0
		for n < len(common) && n < len(segments) && common[n] == segments[n] {
			n++
		}
		common = common[:n]
		if len(common) == 0 {
			break
		}
	}

	if len(common) == 0 {
		return ""
	}

	joined := strings.Join(common, sep)
	if joined == "" {
		// Only the leading empty segment of an absolute path survived.
		return sep
	}
	return joined
}

// directorySegments splits path on sep and drops the trailing file name.
func directorySegments(path, sep string) []string {
	segments := strings.Split(path, sep)
	return segments[:len(segments)-1]
}
