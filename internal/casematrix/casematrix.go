// Package casematrix loads a sweep's case matrix (one column per case
// parameter, one row per simulation run) into a table.
package casematrix

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"resultscope/internal/errs"
	"resultscope/internal/table"
)

// Decoder turns raw artifact bytes into ordered columns. It is the single
// injected deserialization capability; Load never picks a library itself.
type Decoder interface {
	Decode(data []byte) ([]table.Column, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(data []byte) ([]table.Column, error)

func (f DecoderFunc) Decode(data []byte) ([]table.Column, error) { return f(data) }

// Load reads the case matrix at path with dec (YAMLDecoder when nil).
// A missing file or a matrix with zero columns fails with errs.ErrLoad;
// columns of different lengths fail with errs.ErrShape.
func Load(path string, dec Decoder) (*table.Table, error) {
	if dec == nil {
		dec = YAMLDecoder{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Load(err, "read case matrix")
	}
	cols, err := dec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("case matrix %s: %w", path, err)
	}
	if len(cols) == 0 {
		return nil, errs.Load(nil, "case matrix %s has no columns", path)
	}
	t, err := table.New(cols)
	if err != nil {
		return nil, fmt.Errorf("case matrix %s: %w", path, err)
	}
	return t, nil
}

// YAMLDecoder reads a mapping of column name to value sequence. Scalar keys
// become plain names; sequence keys (YAML complex keys, e.g. "? [ElastoDyn,
// RotSpeed]", tagged or not) become tuple keys.
type YAMLDecoder struct{}

func (YAMLDecoder) Decode(data []byte) ([]table.Column, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Parse("yaml: %v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errs.Parse("top level must be a mapping (line %d)", root.Line)
	}

	cols := make([]table.Column, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, err := columnKey(root.Content[i])
		if err != nil {
			return nil, err
		}
		vals, err := columnValues(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", key, err)
		}
		cols = append(cols, table.Column{Key: key, Values: vals})
	}
	return cols, nil
}

func columnKey(n *yaml.Node) (table.Key, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return table.Name(n.Value), nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, p := range n.Content {
			if p.Kind != yaml.ScalarNode {
				return table.Key{}, errs.Parse("tuple key at line %d has a non-scalar part", n.Line)
			}
			parts = append(parts, p.Value)
		}
		return table.Tuple(parts...), nil
	default:
		return table.Key{}, errs.Parse("unsupported column key at line %d", n.Line)
	}
}

func columnValues(n *yaml.Node) ([]any, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errs.Parse("values at line %d are not a sequence", n.Line)
	}
	vals := make([]any, 0, len(n.Content))
	for _, item := range n.Content {
		var v any
		if err := item.Decode(&v); err != nil {
			return nil, errs.Parse("value at line %d: %v", item.Line, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
