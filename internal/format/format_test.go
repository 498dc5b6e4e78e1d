package format_test

import (
	"strings"
	"testing"

	"resultscope/internal/format"
	"resultscope/internal/table"
	"resultscope/internal/tree"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("index", "GenPwr")
	tb.Row("IEA_22_Semi_00", 0.95)
	tb.Row("IEA_22_Semi_01", 0.88)
	out := tb.String()

	if !strings.Contains(out, "index") {
		t.Errorf("expected header 'index' in output:\n%s", out)
	}
	if !strings.Contains(out, "IEA_22_Semi_01") {
		t.Errorf("expected 'IEA_22_Semi_01' in output:\n%s", out)
	}
	// ASCII uses box-drawing characters from StyleLight
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_WithFooter(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Iteration", "Runs")
	tb.Row(0, 100)
	tb.Row(1, 200)
	tb.Footer("TOTAL", 300)
	out := tb.String()

	if !strings.Contains(out, "| Iteration") {
		t.Errorf("expected markdown header with '| Iteration':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
	if !strings.Contains(out, "TOTAL") || !strings.Contains(out, "300") {
		t.Errorf("expected footer in output:\n%s", out)
	}
}

func TestCSV_BasicTable(t *testing.T) {
	tb := format.NewTable(format.CSV)
	tb.Header("A", "B")
	tb.Row("x", 1)
	out := tb.String()
	if !strings.Contains(out, "A,B") || !strings.Contains(out, "x,1") {
		t.Errorf("unexpected csv:\n%s", out)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    format.Mode
		wantErr bool
	}{
		{"", format.ASCII, false},
		{"ascii", format.ASCII, false},
		{"Markdown", format.Markdown, false},
		{"md", format.Markdown, false},
		{" csv ", format.CSV, false},
		{"html", format.ASCII, true},
	}
	for _, tc := range tests {
		got, err := format.ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTable_KeysAndTruncation(t *testing.T) {
	tb := table.MustNew([]table.Column{
		{Key: table.Name("index"), Values: []any{"a", "b", "c"}},
		{Key: table.Tuple("GenPwr", "mean"), Values: []any{1.5, 2.0, []any{1.0, 2.0}}},
	})

	out := format.Table(tb, format.Markdown, 2)
	if !strings.Contains(out, "(GenPwr, mean)") {
		t.Errorf("expected tuple header:\n%s", out)
	}
	if strings.Contains(out, "[1 2]") {
		t.Errorf("third row should be truncated:\n%s", out)
	}
	if !strings.Contains(out, "1 more row") {
		t.Errorf("expected truncation footer:\n%s", out)
	}

	csv := format.Table(tb, format.CSV, 2)
	if !strings.Contains(csv, "[1 2]") {
		t.Errorf("csv must not truncate:\n%s", csv)
	}
}

func TestTree(t *testing.T) {
	n := tree.MustNode(tree.Entry{Key: "vizdemo", Value: tree.Branch(tree.MustNode(
		tree.Entry{Key: "iteration_0", Value: tree.LeafList("summary_stats.p", "DELs.p")},
		tree.Entry{Key: "case_matrix", Value: tree.Leaf("case_matrix.yaml")},
	))})
	out := format.Tree(n)
	for _, want := range []string{"vizdemo/", "iteration_0", "summary_stats.p", "case_matrix: case_matrix.yaml"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "summary_stats.p") > strings.Index(out, "DELs.p") {
		t.Errorf("document order lost:\n%s", out)
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{0.1, "0.1"},
		{7.0, "7"},
		{int64(3), "3"},
		{[]any{1.5, "x"}, "[1.5 x]"},
	}
	for _, tc := range tests {
		if got := format.Cell(tc.in); got != tc.want {
			t.Errorf("Cell(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abcdef", 3, "abc"},
	}
	for _, tc := range tests {
		if got := format.Truncate(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := format.Plural(1, "run"); got != "1 run" {
		t.Errorf("got %q", got)
	}
	if got := format.Plural(3, "run"); got != "3 runs" {
		t.Errorf("got %q", got)
	}
}

func TestTable_NumericColumnsRightAligned(t *testing.T) {
	tb := table.MustNew([]table.Column{
		{Key: table.Name("index"), Values: []any{"a", "bb"}},
		{Key: table.Name("value"), Values: []any{1.0, 12345.0}},
	})
	out := format.Table(tb, format.ASCII, 0)
	if !strings.Contains(out, "│     1 │") {
		t.Errorf("expected numeric column right aligned:\n%s", out)
	}
	if !strings.Contains(out, "│ a     │") {
		t.Errorf("expected text column left aligned:\n%s", out)
	}
}

func TestTable_LongCellsTruncated(t *testing.T) {
	long := make([]any, 40)
	for i := range long {
		long[i] = float64(i)
	}
	tb := table.MustNew([]table.Column{
		{Key: table.Name("DEL"), Values: []any{long}},
	})
	md := format.Table(tb, format.Markdown, 0)
	if strings.Contains(md, "39]") || !strings.Contains(md, "...") {
		t.Errorf("expected truncated cell:\n%s", md)
	}
	csv := format.Table(tb, format.CSV, 0)
	if !strings.Contains(csv, "39]") {
		t.Errorf("csv must keep the full cell:\n%s", csv)
	}
}
