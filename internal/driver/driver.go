// Package driver reshapes optimizer-driver case records into tables.
package driver

import (
	"reflect"

	"resultscope/internal/table"
)

// Series is every recorded value of one driver output, one per case.
type Series struct {
	Name   string
	Values []any
}

// Records is the driver output of one optimization run, in first-seen
// output order.
type Records []Series

// Add appends v to the series called name, creating it at the end if new.
func (r Records) Add(name string, v any) Records {
	for i := range r {
		if r[i].Name == name {
			r[i].Values = append(r[i].Values, v)
			return r
		}
	}
	return append(r, Series{Name: name, Values: []any{v}})
}

// Normalize unwraps single-element sequences to their element and passes
// scalars and longer sequences through unchanged. It never fails.
func Normalize(r Records) Records {
	out := make(Records, len(r))
	for i, s := range r {
		vals := make([]any, len(s.Values))
		for j, v := range s.Values {
			vals[j] = unwrap(v)
		}
		out[i] = Series{Name: s.Name, Values: vals}
	}
	return out
}

func unwrap(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 1 {
			return rv.Index(0).Interface()
		}
	}
	return v
}

// Table normalizes r and builds a table with one column per output. Outputs
// recorded for a different number of cases fail with errs.ErrShape.
func Table(r Records) (*table.Table, error) {
	n := Normalize(r)
	cols := make([]table.Column, len(n))
	for i, s := range n {
		cols[i] = table.Column{Key: table.Name(s.Name), Values: s.Values}
	}
	return table.New(cols)
}
