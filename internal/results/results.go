// Package results is the composition root: it chains tree search, iteration
// selection and time-series reconciliation to answer "the time series of run
// R in iteration I", and assembles case-matrix and driver tables.
package results

import (
	"errors"
	"fmt"

	"resultscope/internal/casematrix"
	"resultscope/internal/driver"
	"resultscope/internal/errs"
	"resultscope/internal/iteration"
	"resultscope/internal/logging"
	"resultscope/internal/table"
	"resultscope/internal/timeseries"
	"resultscope/internal/tree"
)

// DefaultStatsArtifact is the per-iteration statistics artifact name.
const DefaultStatsArtifact = "summary_stats.p"

// Aggregator holds the collaborators of a query. The zero value reads CBOR
// artifacts from disk with the default naming scheme.
type Aggregator struct {
	Stats    table.Loader        // statistics loader; table.FileLoader when nil
	Resolver timeseries.Resolver // time-series reconciliation and loading
	Matrix   casematrix.Decoder  // case-matrix decoder; YAML when nil
}

// Timeseries is the answer to one (iteration, run) query.
type Timeseries struct {
	Iteration iteration.Descriptor
	Run       int
	Filename  string
	Path      string
	Table     *table.Table
}

func (a *Aggregator) stats() table.Loader {
	if a.Stats == nil {
		return table.FileLoader{}
	}
	return a.Stats
}

// Candidates lists every path of artifact in root, in tree order.
func (a *Aggregator) Candidates(root tree.Node, artifact string) []string {
	return tree.Paths(root, artifact)
}

// Locate finds the statistics artifact of iteration n.
func (a *Aggregator) Locate(root tree.Node, artifact string, n int) (iteration.Descriptor, error) {
	d, err := iteration.SelectArtifact(n, a.Candidates(root, artifact))
	if err != nil {
		return iteration.Descriptor{}, fmt.Errorf("locate %s: %w", artifact, err)
	}
	logging.New("results").Debug("iteration artifact selected", "iteration", n, "path", d.Path)
	return d, nil
}

// Statistics loads the statistics table a descriptor points at.
func (a *Aggregator) Statistics(d iteration.Descriptor) (*table.Table, error) {
	t, err := a.stats().Load(d.Path)
	if err != nil {
		if !errors.Is(err, errs.ErrLoad) {
			err = errs.Load(err, "statistics %s", d.Path)
		}
		return nil, err
	}
	return t, nil
}

// Timeseries answers "the time series of run in iteration n": locate the
// iteration's statistics artifact, load it, reconcile the run's identifier
// and load the companion file.
func (a *Aggregator) Timeseries(root tree.Node, artifact string, n, run int) (*Timeseries, error) {
	d, err := a.Locate(root, artifact, n)
	if err != nil {
		return nil, err
	}
	stats, err := a.Statistics(d)
	if err != nil {
		return nil, err
	}
	return a.TimeseriesAt(d, stats, run)
}

// TimeseriesAt resolves and loads run against an already loaded statistics table.
func (a *Aggregator) TimeseriesAt(d iteration.Descriptor, stats *table.Table, run int) (*Timeseries, error) {
	name, path, err := a.Resolver.Resolve(run, stats, d.Dir)
	if err != nil {
		return nil, fmt.Errorf("iteration %d: %w", d.Iteration, err)
	}
	t, err := a.Load(path)
	if err != nil {
		return nil, err
	}
	return &Timeseries{Iteration: d, Run: run, Filename: name, Path: path, Table: t}, nil
}

// Load reads a time-series artifact at an already resolved path.
func (a *Aggregator) Load(path string) (*table.Table, error) {
	l := a.Resolver.Loader
	if l == nil {
		l = table.FileLoader{}
	}
	t, err := l.Load(path)
	if err != nil {
		if !errors.Is(err, errs.ErrLoad) {
			err = errs.Load(err, "time series %s", path)
		}
		return nil, err
	}
	return t, nil
}

// Iterations lists the iteration numbers in root, in tree order.
func (a *Aggregator) Iterations(root tree.Node) ([]int, error) {
	return tree.Iterations(root)
}

// CaseMatrix loads the case matrix at path.
func (a *Aggregator) CaseMatrix(path string) (*table.Table, error) {
	return casematrix.Load(path, a.Matrix)
}

// DriverTable normalizes driver records into a table.
func (a *Aggregator) DriverTable(rec driver.Records) (*table.Table, error) {
	return driver.Table(rec)
}

// Compose places driver columns to the right of case-matrix columns, one row
// per run. Row counts must agree (errs.ErrShape otherwise); on a key clash
// the case-matrix column is kept.
func Compose(caseMatrix, drv *table.Table) (*table.Table, error) {
	t, err := table.Concat(caseMatrix, drv)
	if err != nil {
		return nil, fmt.Errorf("compose case matrix with driver output: %w", err)
	}
	return t, nil
}
