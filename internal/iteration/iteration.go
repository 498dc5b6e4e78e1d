// Package iteration picks the statistics artifact belonging to one pass of
// the outer optimization loop out of a list of candidate paths.
package iteration

import (
	"fmt"
	"strings"

	"resultscope/internal/errs"
	"resultscope/internal/logging"
)

// Descriptor identifies one iteration's statistics artifact. It is derived
// per query and never persisted.
type Descriptor struct {
	Iteration int
	Path      string // matched statistics artifact
	Dir       string // Path without its final segment
}

// Marker returns the directory marker for iteration n, "iteration_<n>".
func Marker(n int) string { return fmt.Sprintf("iteration_%d", n) }

// SelectArtifact returns the first candidate, in input order, that contains
// Marker(n) not followed by another digit. Later matches are ignored;
// callers that need a unique match must pre-filter the candidates.
// No match fails with errs.ErrNotFound.
func SelectArtifact(n int, candidates []string) (Descriptor, error) {
	marker := Marker(n)
	matched := -1
	for i, c := range candidates {
		if !containsMarker(c, marker) {
			continue
		}
		if matched < 0 {
			matched = i
			continue
		}
		logging.New("iteration").Debug("ignoring additional iteration artifact",
			"iteration", n, "selected", candidates[matched], "ignored", c)
	}
	if matched < 0 {
		return Descriptor{}, errs.NotFound("no artifact for iteration %d among %d candidates", n, len(candidates))
	}
	p := candidates[matched]
	return Descriptor{Iteration: n, Path: p, Dir: ContainingDir(p)}, nil
}

// containsMarker reports whether s contains marker at a position where the
// next byte, if any, is not a digit.
func containsMarker(s, marker string) bool {
	for off := 0; off <= len(s)-len(marker); {
		i := strings.Index(s[off:], marker)
		if i < 0 {
			return false
		}
		end := off + i + len(marker)
		if end == len(s) || !isDigit(s[end]) {
			return true
		}
		off += i + 1
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ContainingDir drops the final "/"-separated segment of p. It is a pure
// string operation; a path without "/" has an empty directory.
func ContainingDir(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}
