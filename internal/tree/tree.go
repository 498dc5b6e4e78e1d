// Package tree models the logical layout of a simulation output directory as
// an ordered, immutable DirectoryTree and searches it for named artifacts and
// iteration markers.
//
// A tree is data, typically loaded from a manifest produced by a previous
// crawl. Every value is exactly one of Leaf (a filename), LeafList (an
// ordered sequence of filenames) or a nested Node.
package tree

import (
	"iter"
	"slices"
	"strings"

	"resultscope/internal/errs"
)

// Kind tags a Value.
type Kind int

const (
	KindLeaf Kind = iota
	KindLeafList
	KindNode
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindLeafList:
		return "leaf-list"
	case KindNode:
		return "node"
	default:
		return "unknown"
	}
}

// Value is the tagged variant stored at a key.
type Value struct {
	kind Kind
	leaf string
	list []string
	node Node
}

// Leaf returns a single-filename value.
func Leaf(name string) Value { return Value{kind: KindLeaf, leaf: name} }

// LeafList returns an ordered filename-sequence value.
func LeafList(names ...string) Value {
	return Value{kind: KindLeafList, list: slices.Clone(names)}
}

// Branch returns a nested-node value.
func Branch(n Node) Value { return Value{kind: KindNode, node: n} }

func (v Value) Kind() Kind { return v.kind }

// AsLeaf returns the filename of a Leaf.
func (v Value) AsLeaf() (string, bool) { return v.leaf, v.kind == KindLeaf }

// AsLeafList returns a copy of the filenames of a LeafList.
func (v Value) AsLeafList() ([]string, bool) {
	if v.kind != KindLeafList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// AsNode returns the nested node of a Branch.
func (v Value) AsNode() (Node, bool) { return v.node, v.kind == KindNode }

// Entry is one key/value pair of a Node.
type Entry struct {
	Key   string
	Value Value
}

// Node is an insertion-ordered mapping. The zero Node is empty.
type Node struct {
	entries []Entry
	index   map[string]int
}

// NewNode builds a node from entries in order. Duplicate keys fail with
// errs.ErrParse.
func NewNode(entries ...Entry) (Node, error) {
	n := Node{
		entries: slices.Clone(entries),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if _, dup := n.index[e.Key]; dup {
			return Node{}, errs.Parse("duplicate key %q", e.Key)
		}
		n.index[e.Key] = i
	}
	return n, nil
}

// MustNode is NewNode for literal trees; it panics on duplicate keys.
func MustNode(entries ...Entry) Node {
	n, err := NewNode(entries...)
	if err != nil {
		panic(err)
	}
	return n
}

// Len returns the number of keys.
func (n Node) Len() int { return len(n.entries) }

// Get returns the value at key.
func (n Node) Get(key string) (Value, bool) {
	i, ok := n.index[key]
	if !ok {
		return Value{}, false
	}
	return n.entries[i].Value, true
}

// All iterates the node's pairs in insertion order.
func (n Node) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, e := range n.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Lookup walks keys from n and returns the value reached.
func Lookup(n Node, keys ...string) (Value, bool) {
	cur := Branch(n)
	for _, k := range keys {
		node, ok := cur.AsNode()
		if !ok {
			return Value{}, false
		}
		if cur, ok = node.Get(k); !ok {
			return Value{}, false
		}
	}
	return cur, true
}

// Path is a sequence of tree keys ending in the matched filename.
type Path []string

// String joins the segments with "/", skipping FilesKey segments. Segments
// are kept verbatim: "a/../b" stays as written.
func (p Path) String() string {
	segs := slices.DeleteFunc(slices.Clone(p), func(s string) bool { return s == FilesKey })
	return strings.Join(segs, "/")
}

func extend(p Path, segs ...string) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}
