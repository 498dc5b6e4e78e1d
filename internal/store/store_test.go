package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestStores_Agree(t *testing.T) {
	sq, err := Open(filepath.Join(t.TempDir(), "nested", "memo.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sq.Close()

	for name, s := range map[string]Store{"sqlite": sq, "memory": NewMemStore()} {
		t.Run(name, func(t *testing.T) {
			const (
				stats  = "vizdemo/rank_0/iteration_0/summary_stats.p"
				scheme = "0|.p|timeseries|index"
			)
			got, err := s.GetResolution(stats, scheme, 0)
			if err != nil || got != nil {
				t.Fatalf("empty store: got %+v, %v", got, err)
			}

			for _, r := range []*Resolution{
				{StatsPath: stats, Scheme: scheme, Run: 83, Filename: "IEA_22_Semi_0_83.p", Path: "vizdemo/rank_0/iteration_0/timeseries/IEA_22_Semi_0_83.p"},
				{StatsPath: stats, Scheme: scheme, Run: 0, Filename: "stale.p", Path: "stale"},
				{StatsPath: stats, Scheme: scheme, Run: 0, Filename: "IEA_22_Semi_0_0.p", Path: "vizdemo/rank_0/iteration_0/timeseries/IEA_22_Semi_0_0.p"},
				{StatsPath: stats, Scheme: "1|.cbor|ts|index", Run: 0, Filename: "IEA_22_Semi_1_0.cbor", Path: "vizdemo/rank_0/iteration_0/ts/IEA_22_Semi_1_0.cbor"},
				{StatsPath: "other/summary_stats.p", Scheme: scheme, Run: 1, Filename: "X_0_1.p", Path: "other/timeseries/X_0_1.p"},
			} {
				if err := s.SaveResolution(r); err != nil {
					t.Fatalf("SaveResolution: %v", err)
				}
			}

			got, err = s.GetResolution(stats, scheme, 0)
			if err != nil || got == nil {
				t.Fatalf("GetResolution: %+v, %v", got, err)
			}
			if got.Filename != "IEA_22_Semi_0_0.p" {
				t.Errorf("replace failed: %+v", got)
			}
			if got.CreatedAt == "" {
				t.Error("CreatedAt not set")
			}

			other, err := s.GetResolution(stats, "1|.cbor|ts|index", 0)
			if err != nil || other == nil || other.Filename != "IEA_22_Semi_1_0.cbor" {
				t.Errorf("schemes must not share entries: %+v, %v", other, err)
			}

			list, err := s.ListResolutions(stats, scheme)
			if err != nil {
				t.Fatalf("ListResolutions: %v", err)
			}
			want := []*Resolution{
				{StatsPath: stats, Scheme: scheme, Run: 0, Filename: "IEA_22_Semi_0_0.p", Path: "vizdemo/rank_0/iteration_0/timeseries/IEA_22_Semi_0_0.p"},
				{StatsPath: stats, Scheme: scheme, Run: 83, Filename: "IEA_22_Semi_0_83.p", Path: "vizdemo/rank_0/iteration_0/timeseries/IEA_22_Semi_0_83.p"},
			}
			if diff := cmp.Diff(want, list, cmpopts.IgnoreFields(Resolution{}, "CreatedAt")); diff != "" {
				t.Errorf("ListResolutions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveResolution(&Resolution{StatsPath: "a", Scheme: "s", Run: 1, Filename: "f", Path: "p"}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.GetResolution("a", "s", 1)
	if err != nil || got == nil || got.Path != "p" {
		t.Errorf("after reopen: %+v, %v", got, err)
	}
}

func TestSaveResolution_Nil(t *testing.T) {
	if err := NewMemStore().SaveResolution(nil); err == nil {
		t.Error("expected error for nil resolution")
	}
}

func TestOpen_DropsV1Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range []string{
		"CREATE TABLE schema_version (version INTEGER NOT NULL)",
		"INSERT INTO schema_version(version) VALUES(1)",
		"CREATE TABLE resolutions (stats_path TEXT, run INTEGER, filename TEXT, path TEXT, created_at TEXT, PRIMARY KEY (stats_path, run))",
		"INSERT INTO resolutions VALUES('a', 0, 'old.p', 'old', '')",
	} {
		if _, err := db.Exec(q); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open over v1: %v", err)
	}
	defer s.Close()
	if err := s.SaveResolution(&Resolution{StatsPath: "a", Scheme: "s", Run: 0, Filename: "f", Path: "p"}); err != nil {
		t.Fatalf("save after upgrade: %v", err)
	}
	list, err := s.ListResolutions("a", "s")
	if err != nil || len(list) != 1 || list[0].Filename != "f" {
		t.Errorf("after upgrade: %+v, %v", list, err)
	}
}
