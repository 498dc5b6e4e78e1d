package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"resultscope/internal/errs"
)

// Format is an on-disk table encoding.
type Format int

const (
	CBOR Format = iota // binary artifacts (.p, .cbor)
	JSON
	YAML
)

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".p", ".cbor":
		return CBOR, nil
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("unsupported table format %q", filepath.Ext(path))
	}
}

// wireColumn is the serialized column form. Name has one element for plain
// keys; Tuple marks composite keys (including one-element tuples).
type wireColumn struct {
	Name   []string `cbor:"name" json:"name" yaml:"name"`
	Tuple  bool     `cbor:"tuple,omitempty" json:"tuple,omitempty" yaml:"tuple,omitempty"`
	Values []any    `cbor:"values" json:"values" yaml:"values"`
}

type wireTable struct {
	Columns []wireColumn `cbor:"columns" json:"columns" yaml:"columns"`
}

var cborDec cbor.DecMode

func init() {
	var err error
	cborDec, err = cbor.DecOptions{
		IntDec:         cbor.IntDecConvertSigned,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

func toWire(t *Table) wireTable {
	w := wireTable{Columns: make([]wireColumn, 0, t.Width())}
	for _, c := range t.Columns() {
		w.Columns = append(w.Columns, wireColumn{
			Name:   c.Key.Parts(),
			Tuple:  c.Key.IsTuple(),
			Values: c.Values,
		})
	}
	return w
}

func fromWire(w wireTable) (*Table, error) {
	cols := make([]Column, 0, len(w.Columns))
	for i, c := range w.Columns {
		var k Key
		switch {
		case c.Tuple:
			k = Tuple(c.Name...)
		case len(c.Name) == 1:
			k = Name(c.Name[0])
		default:
			return nil, errs.Parse("column %d: plain key with %d name parts", i, len(c.Name))
		}
		cols = append(cols, Column{Key: k, Values: c.Values})
	}
	return New(cols)
}

// Encode writes t to w in format f.
func Encode(w io.Writer, t *Table, f Format) error {
	wt := toWire(t)
	switch f {
	case CBOR:
		return cbor.NewEncoder(w).Encode(wt)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(wt)
	case YAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(wt); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown table format %d", f)
	}
}

// Decode parses a table in format f.
func Decode(data []byte, f Format) (*Table, error) {
	var wt wireTable
	var err error
	switch f {
	case CBOR:
		err = cborDec.Unmarshal(data, &wt)
	case JSON:
		err = json.Unmarshal(data, &wt)
	case YAML:
		err = yaml.Unmarshal(data, &wt)
	default:
		return nil, fmt.Errorf("unknown table format %d", f)
	}
	if err != nil {
		return nil, errs.Parse("decode table: %v", err)
	}
	return fromWire(wt)
}

// Save writes t to path, choosing the format from the extension.
func Save(path string, t *Table) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, t, f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Loader materializes a table from an artifact path.
type Loader interface {
	Load(path string) (*Table, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*Table, error)

func (f LoaderFunc) Load(path string) (*Table, error) { return f(path) }

// FileLoader reads table artifacts from disk, dispatching on extension.
type FileLoader struct{}

// Load implements Loader. Missing, unreadable, undecodable or ragged
// artifacts all fail with errs.ErrLoad alone.
func (FileLoader) Load(path string) (*Table, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, errs.Load(err, "table %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Load(err, "read table")
	}
	t, err := Decode(data, f)
	if err != nil {
		return nil, errs.Load(err, "table %s", path)
	}
	return t, nil
}
