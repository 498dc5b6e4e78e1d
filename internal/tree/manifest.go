package tree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"resultscope/internal/errs"
)

// Decode parses a YAML (or JSON) manifest into a tree, keeping key order.
// Scalars become Leaf, sequences of scalars LeafList, mappings Node. Any
// other shape fails with errs.ErrParse. An empty document is an empty tree.
func Decode(data []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Node{}, errs.Parse("manifest: %v", err)
	}
	if doc.Kind == 0 {
		return Node{}, nil
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return Node{}, nil
		}
		root = doc.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Node{}, errs.Parse("manifest: top level must be a mapping (line %d)", root.Line)
	}
	return decodeMapping(root)
}

// Load reads and decodes a manifest file.
func Load(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Node{}, errs.Load(err, "read manifest")
	}
	n, err := Decode(data)
	if err != nil {
		return Node{}, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func decodeMapping(m *yaml.Node) (Node, error) {
	entries := make([]Entry, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return Node{}, errs.Parse("manifest: non-scalar key at line %d", k.Line)
		}
		val, err := decodeValue(v)
		if err != nil {
			return Node{}, fmt.Errorf("key %q: %w", k.Value, err)
		}
		entries = append(entries, Entry{Key: k.Value, Value: val})
	}
	return NewNode(entries...)
}

func decodeValue(v *yaml.Node) (Value, error) {
	switch v.Kind {
	case yaml.AliasNode:
		return decodeValue(v.Alias)
	case yaml.ScalarNode:
		if v.Tag == "!!null" {
			return Value{}, errs.Parse("manifest: null value at line %d", v.Line)
		}
		return Leaf(v.Value), nil
	case yaml.SequenceNode:
		names := make([]string, 0, len(v.Content))
		for _, item := range v.Content {
			if item.Kind == yaml.AliasNode {
				item = item.Alias
			}
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				return Value{}, errs.Parse("manifest: sequence item at line %d is not a filename", item.Line)
			}
			names = append(names, item.Value)
		}
		return LeafList(names...), nil
	case yaml.MappingNode:
		n, err := decodeMapping(v)
		if err != nil {
			return Value{}, err
		}
		return Branch(n), nil
	default:
		return Value{}, errs.Parse("manifest: unsupported node at line %d", v.Line)
	}
}

// Encode renders a tree as a YAML manifest in key order.
func Encode(n Node) ([]byte, error) {
	out, err := yaml.Marshal(encodeNode(n))
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return out, nil
}

// Save writes the YAML manifest of n to path.
func Save(path string, n Node) error {
	data, err := Encode(n)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func encodeNode(n Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range n.entries {
		m.Content = append(m.Content, str(e.Key), encodeValue(e.Value))
	}
	return m
}

func encodeValue(v Value) *yaml.Node {
	switch v.kind {
	case KindLeafList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, name := range v.list {
			seq.Content = append(seq.Content, str(name))
		}
		return seq
	case KindNode:
		return encodeNode(v.node)
	default:
		return str(v.leaf)
	}
}
