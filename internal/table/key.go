package table

import "strings"

// keySep joins tuple parts inside a Key. It never appears in YAML scalar keys.
const keySep = "\x1f"

// Key identifies a column: either a plain name or an ordered tuple of names
// (a multi-level parameter such as ("ElastoDyn", "RotSpeed")).
// Keys are comparable and usable as map keys.
type Key struct {
	name  string
	tuple bool
	arity int
}

// Name returns a plain column key.
func Name(s string) Key { return Key{name: s} }

// Tuple returns a composite column key. Tuple("a") is distinct from Name("a").
func Tuple(parts ...string) Key {
	return Key{name: strings.Join(parts, keySep), tuple: true, arity: len(parts)}
}

// IsTuple reports whether k is a composite key.
func (k Key) IsTuple() bool { return k.tuple }

// Parts returns the tuple components, or a single-element slice for a plain name.
func (k Key) Parts() []string {
	if !k.tuple {
		return []string{k.name}
	}
	if k.arity == 0 {
		return []string{}
	}
	return strings.Split(k.name, keySep)
}

// String renders plain keys verbatim and tuples as "(a, b)".
func (k Key) String() string {
	if !k.tuple {
		return k.name
	}
	return "(" + strings.Join(k.Parts(), ", ") + ")"
}
