package driver

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"resultscope/internal/errs"
	"resultscope/internal/table"
)

func TestNormalize(t *testing.T) {
	in := Records{{Name: "x", Values: []any{5, []any{3}, []any{1, 2}}}}
	got := Normalize(in)
	want := Records{{Name: "x", Values: []any{5, 3, []any{1, 2}}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{5, []any{3}, []any{1, 2}}, in[0].Values); diff != "" {
		t.Errorf("input mutated:\n%s", diff)
	}
}

func TestNormalize_TypedSlicesAndNil(t *testing.T) {
	in := Records{{Name: "y", Values: []any{[]float64{2.5}, [1]int{4}, []float64{}, nil, "s"}}}
	want := []any{2.5, 4, []float64{}, nil, "s"}
	if diff := cmp.Diff(want, Normalize(in)[0].Values); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRecords_AddKeepsFirstSeenOrder(t *testing.T) {
	var r Records
	r = r.Add("b", 1)
	r = r.Add("a", 2)
	r = r.Add("b", 3)
	want := Records{{Name: "b", Values: []any{1, 3}}, {Name: "a", Values: []any{2}}}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestTable(t *testing.T) {
	tb, err := Table(Records{
		{Name: "floating.x", Values: []any{[]any{1.0}, []any{2.0}}},
		{Name: "tcc.turbine_cost", Values: []any{10.0, 11.0}},
	})
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	got, _ := tb.Column(table.Name("floating.x"))
	if diff := cmp.Diff([]any{1.0, 2.0}, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}

	_, err = Table(Records{{Name: "a", Values: []any{1}}, {Name: "b", Values: []any{1, 2}}})
	if !errors.Is(err, errs.ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}

func writeRecorder(t *testing.T, rows map[int]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log_opt.sql")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE driver_iterations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		counter INT,
		iteration_coordinate TEXT,
		timestamp REAL,
		success INT,
		msg TEXT,
		inputs TEXT,
		outputs TEXT)`)
	if err != nil {
		t.Fatal(err)
	}
	for counter, outputs := range rows {
		var payload any
		if outputs != "" {
			payload = outputs
		}
		_, err := db.Exec(`INSERT INTO driver_iterations (counter, iteration_coordinate, timestamp, success, msg, inputs, outputs)
			VALUES (?, ?, 0, 1, '', '{}', ?)`, counter, "rank0:root._solve_nonlinear|0", payload)
		if err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestReadRecorder(t *testing.T) {
	path := writeRecorder(t, map[int]string{
		2: `{"floating.x": [2.0], "tcc.turbine_cost": 11.0, "aeroelastic.DEL_TwrBsMyt": [1.0, 2.0]}`,
		1: `{"floating.x": [1.0], "tcc.turbine_cost": 10.0, "aeroelastic.DEL_TwrBsMyt": [3.0, 4.0]}`,
		3: ``,
	})
	rec, err := ReadRecorder(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadRecorder: %v", err)
	}
	want := Records{
		{Name: "floating.x", Values: []any{[]any{1.0}, []any{2.0}}},
		{Name: "tcc.turbine_cost", Values: []any{10.0, 11.0}},
		{Name: "aeroelastic.DEL_TwrBsMyt", Values: []any{[]any{3.0, 4.0}, []any{1.0, 2.0}}},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("ReadRecorder mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRecorder_Errors(t *testing.T) {
	if _, err := ReadRecorder(context.Background(), filepath.Join(t.TempDir(), "missing.sql")); !errors.Is(err, errs.ErrLoad) {
		t.Errorf("missing file: expected ErrLoad, got %v", err)
	}
	bad := writeRecorder(t, map[int]string{1: `[1, 2]`})
	if _, err := ReadRecorder(context.Background(), bad); !errors.Is(err, errs.ErrParse) {
		t.Errorf("non-object outputs: expected ErrParse, got %v", err)
	}
}
