package format

import (
	"github.com/jedib0t/go-pretty/v6/list"

	"resultscope/internal/table"
	"resultscope/internal/tree"
)

// MaxCellWidth caps a rendered cell in ASCII and Markdown output.
const MaxCellWidth = 48

// Table renders t with its column keys as headers. Numeric columns are right
// aligned. When maxRows is positive and t is longer, the remaining rows are
// summarized in a footer. CSV output is never truncated.
func Table(t *table.Table, m Mode, maxRows int) string {
	tb := NewTable(m)
	keys := t.Keys()
	header := make([]string, len(keys))
	for i, k := range keys {
		header[i] = k.String()
	}
	tb.Header(header...)

	n := t.Len()
	if m != CSV && maxRows > 0 && n > maxRows {
		n = maxRows
	}
	for i := 0; i < n; i++ {
		row := t.Row(i)
		cells := make([]any, len(row))
		for j, v := range row {
			c := Cell(v)
			if m != CSV {
				c = Truncate(c, MaxCellWidth)
			}
			cells[j] = c
		}
		tb.Row(cells...)
	}
	if rest := t.Len() - n; rest > 0 && len(keys) > 0 {
		tb.Footer("… " + Plural(rest, "more row"))
	}

	var cfgs []ColumnConfig
	for i, c := range t.Columns() {
		if numeric(c.Values) {
			cfgs = append(cfgs, ColumnConfig{Number: i + 1, Align: AlignRight})
		}
	}
	tb.Columns(cfgs...)
	return tb.String()
}

// numeric reports whether a column holds only numbers (and at least one).
func numeric(vals []any) bool {
	for _, v := range vals {
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		default:
			return false
		}
	}
	return len(vals) > 0
}

// Tree renders a directory tree as an indented list in document order.
func Tree(n tree.Node) string {
	w := list.NewWriter()
	w.SetStyle(list.StyleConnectedLight)
	appendNode(w, n)
	return w.Render()
}

func appendNode(w list.Writer, n tree.Node) {
	for key, v := range n.All() {
		switch v.Kind() {
		case tree.KindLeaf:
			leaf, _ := v.AsLeaf()
			w.AppendItem(key + ": " + leaf)
		case tree.KindLeafList:
			names, _ := v.AsLeafList()
			w.AppendItem(key)
			w.Indent()
			for _, name := range names {
				w.AppendItem(name)
			}
			w.UnIndent()
		case tree.KindNode:
			child, _ := v.AsNode()
			w.AppendItem(key + "/")
			w.Indent()
			appendNode(w, child)
			w.UnIndent()
		}
	}
}
