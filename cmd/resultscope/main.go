// resultscope locates and reconciles the artifacts of a design-optimization
// run: per-iteration statistics, per-run time series, case matrices and
// driver outputs.
//
// Usage:
//
//	resultscope crawl <dir> [-o manifest.yaml]
//	resultscope find <artifact> [--tree=<manifest|dir>]
//	resultscope iterations [--tree=<manifest|dir>]
//	resultscope timeseries --iteration=<n> --run=<r>[,<r>...] [--memo]
//	resultscope casematrix <case_matrix.yaml>
//	resultscope driver <recorder.sql> [--case-matrix=<path>]
//	resultscope outfile <file.out>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
