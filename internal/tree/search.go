package tree

import (
	"iter"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"resultscope/internal/errs"
)

// iterationMarker is the key substring that identifies an iteration directory.
const iterationMarker = "iteration"

var digitRun = regexp.MustCompile(`[0-9]+`)

// FindPaths yields every path at which target occurs, depth-first in key
// insertion order. A Leaf equal to target yields path+(key, target); a
// LeafList containing target yields path+(key, target); a Node is searched
// recursively. The sequence is exhaustive and may be stopped early.
func FindPaths(n Node, target string) iter.Seq[Path] {
	return func(yield func(Path) bool) {
		findPaths(n, target, nil, yield)
	}
}

func findPaths(n Node, target string, prefix Path, yield func(Path) bool) bool {
	for _, e := range n.entries {
		switch e.Value.kind {
		case KindLeaf:
			if e.Value.leaf == target && !yield(extend(prefix, e.Key, target)) {
				return false
			}
		case KindLeafList:
			if slices.Contains(e.Value.list, target) && !yield(extend(prefix, e.Key, target)) {
				return false
			}
		case KindNode:
			if !findPaths(e.Value.node, target, extend(prefix, e.Key), yield) {
				return false
			}
		}
	}
	return true
}

// FindIterations yields, depth-first in key insertion order, the first run of
// digits of every key containing "iteration". Traversal descends into every
// Node whether or not its key matched. A matching key without digits yields
// a single errs.ErrParse error and ends the sequence.
func FindIterations(n Node) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		findIterations(n, yield)
	}
}

func findIterations(n Node, yield func(int, error) bool) bool {
	for _, e := range n.entries {
		if strings.Contains(e.Key, iterationMarker) {
			num, err := iterationNumber(e.Key)
			if err != nil {
				yield(0, err)
				return false
			}
			if !yield(num, nil) {
				return false
			}
		}
		if child, ok := e.Value.AsNode(); ok {
			if !findIterations(child, yield) {
				return false
			}
		}
	}
	return true
}

func iterationNumber(key string) (int, error) {
	m := digitRun.FindString(key)
	if m == "" {
		return 0, errs.Parse("iteration key %q has no number", key)
	}
	num, err := strconv.Atoi(m)
	if err != nil {
		return 0, errs.Parse("iteration key %q: %v", key, err)
	}
	return num, nil
}

// Iterations collects FindIterations into a slice.
func Iterations(n Node) ([]int, error) {
	var out []int
	for num, err := range FindIterations(n) {
		if err != nil {
			return nil, err
		}
		out = append(out, num)
	}
	return out, nil
}

// Paths collects FindPaths into a slice of joined path strings.
func Paths(n Node, target string) []string {
	var out []string
	for p := range FindPaths(n, target) {
		out = append(out, p.String())
	}
	return out
}
