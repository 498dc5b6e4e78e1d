package table

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"resultscope/internal/errs"
)

// OutfileSkipRows is the OpenFAST text-output layout: six preamble lines,
// the channel-name header on line 6, and a units line on line 7.
var OutfileSkipRows = []int{0, 1, 2, 3, 4, 5, 7}

// ReadFields parses whitespace-separated text. Lines whose zero-based number
// is in skip are ignored; the first remaining non-blank line is the header.
// Numeric cells become float64, everything else stays a string.
func ReadFields(r io.Reader, skip []int) (*Table, error) {
	skipped := make(map[int]bool, len(skip))
	for _, n := range skip {
		skipped[n] = true
	}

	var header []string
	var cols [][]any
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for line := 0; sc.Scan(); line++ {
		if skipped[line] {
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if header == nil {
			header = fields
			cols = make([][]any, len(header))
			continue
		}
		if len(fields) != len(header) {
			return nil, errs.Shape("line %d has %d fields, header has %d", line, len(fields), len(header))
		}
		for i, f := range fields {
			cols[i] = append(cols[i], parseCell(f))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Load(err, "scan fields")
	}

	out := make([]Column, len(header))
	for i, h := range header {
		vals := cols[i]
		if vals == nil {
			vals = []any{}
		}
		out[i] = Column{Key: Name(h), Values: vals}
	}
	return New(out)
}

// LoadFields opens path and parses it with ReadFields. The literal path
// "None" denotes an absent variable file and yields an empty table.
func LoadFields(path string, skip []int) (*Table, error) {
	if path == "None" {
		return New(nil)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Load(err, "open fields file")
	}
	defer f.Close()
	return ReadFields(f, skip)
}

func parseCell(s string) any {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
