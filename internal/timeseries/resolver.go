// Package timeseries reconciles a statistics-table row with the
// differently named per-timestep artifact of the same run, and loads it.
package timeseries

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"resultscope/internal/errs"
	"resultscope/internal/logging"
	"resultscope/internal/table"
)

const (
	// DefaultIDColumn holds each statistics row's case name.
	DefaultIDColumn = "index"
	// DefaultSubDir is where an iteration keeps its time-series artifacts.
	DefaultSubDir = "timeseries"
)

// Resolver turns (run, statistics table, iteration directory) into a loaded
// time series. Zero-valued fields take the defaults.
type Resolver struct {
	Scheme   NamingScheme // DefaultScheme
	Loader   table.Loader // table.FileLoader
	IDColumn table.Key    // table.Name(DefaultIDColumn)
	SubDir   string       // DefaultSubDir
}

func (r *Resolver) scheme() NamingScheme {
	if r.Scheme == nil {
		return DefaultScheme
	}
	return r.Scheme
}

func (r *Resolver) loader() table.Loader {
	if r.Loader == nil {
		return table.FileLoader{}
	}
	return r.Loader
}

func (r *Resolver) idColumn() table.Key {
	if r.IDColumn == (table.Key{}) {
		return table.Name(DefaultIDColumn)
	}
	return r.IDColumn
}

func (r *Resolver) subDir() string {
	if r.SubDir == "" {
		return DefaultSubDir
	}
	return r.SubDir
}

// Resolve returns the companion filename and full path for row run of stats.
// An out-of-range run, a missing id column or a companion file that does not
// exist under dir/<SubDir>/ fails with errs.ErrReconciliation.
func (r *Resolver) Resolve(run int, stats *table.Table, dir string) (name, path string, err error) {
	if stats == nil {
		return "", "", errs.Reconciliation("no statistics table")
	}
	if run < 0 || run >= stats.Len() {
		return "", "", errs.Reconciliation("run %d out of range [0, %d)", run, stats.Len())
	}
	col := r.idColumn()
	v, ok := stats.Value(run, col)
	if !ok {
		return "", "", errs.Reconciliation("statistics table has no %s column", col)
	}
	rowID, isStr := v.(string)
	if !isStr {
		rowID = fmt.Sprint(v)
	}

	name, err = r.scheme().CompanionName(rowID)
	if err != nil {
		return "", "", err
	}
	path = filepath.Join(dir, r.subDir(), name)
	if _, err := os.Stat(path); err != nil {
		return "", "", errs.Reconciliation("run %d (%s): companion %s: %v", run, rowID, path, err)
	}
	logging.New("timeseries").Debug("resolved time series", "run", run, "row_id", rowID, "file", name)
	return name, path, nil
}

// ResolveAndLoad resolves run and loads its time series. Load failures are
// returned at once as errs.ErrLoad; nothing is retried and no partial result
// is returned.
func (r *Resolver) ResolveAndLoad(run int, stats *table.Table, dir string) (string, *table.Table, error) {
	name, path, err := r.Resolve(run, stats, dir)
	if err != nil {
		return "", nil, err
	}
	t, err := r.loader().Load(path)
	if err != nil {
		if !errors.Is(err, errs.ErrLoad) {
			err = errs.Load(err, "time series %s", path)
		}
		return "", nil, err
	}
	return name, t, nil
}
