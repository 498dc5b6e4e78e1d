package errs

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestKinds_AreDistinct(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind error
	}{
		{"not found", NotFound("no artifact for iteration %d", 3), ErrNotFound},
		{"shape", Shape("column %q has %d rows", "x", 2), ErrShape},
		{"parse", Parse("key %q", "iteration_"), ErrParse},
		{"reconciliation", Reconciliation("run %d", 9), ErrReconciliation},
		{"load", Load(nil, "empty"), ErrLoad},
	}
	all := []error{ErrNotFound, ErrShape, ErrParse, ErrReconciliation, ErrLoad}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range all {
				got := errors.Is(tc.err, k)
				if got != (k == tc.kind) {
					t.Errorf("errors.Is(%v, %v) = %v", tc.err, k, got)
				}
			}
		})
	}
}

func TestLoad_KeepsCause(t *testing.T) {
	err := Load(fs.ErrNotExist, "read %s", "cm.yaml")
	if !errors.Is(err, ErrLoad) {
		t.Errorf("expected ErrLoad in chain: %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain: %v", err)
	}
	if !strings.Contains(err.Error(), "cm.yaml") {
		t.Errorf("message lost path: %v", err)
	}
}

func TestLoad_FlattensKindedCause(t *testing.T) {
	cases := map[string]error{
		"shape": Shape("column %q has %d rows", "x", 2),
		"parse": Parse("decode table: %s", "unexpected EOF"),
		"load":  Load(fs.ErrNotExist, "read"),
	}
	for name, cause := range cases {
		t.Run(name, func(t *testing.T) {
			err := Load(cause, "table %s", "stats.p")
			if !errors.Is(err, ErrLoad) {
				t.Fatalf("expected ErrLoad: %v", err)
			}
			for _, k := range []error{ErrNotFound, ErrShape, ErrParse, ErrReconciliation} {
				if errors.Is(err, k) {
					t.Errorf("%v must carry only ErrLoad, also has %v", err, k)
				}
			}
			if !strings.Contains(err.Error(), cause.Error()) {
				t.Errorf("cause text lost: %v", err)
			}
		})
	}
}
