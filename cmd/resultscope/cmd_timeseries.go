package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resultscope/internal/iteration"
	"resultscope/internal/logging"
	"resultscope/internal/results"
	"resultscope/internal/store"
	"resultscope/internal/table"
)

type timeseriesOpts struct {
	artifact  string
	iteration int
	runs      []int
	memo      bool
	db        string
	resolve   bool
	list      bool
}

func newTimeseriesCmd(a *app) *cobra.Command {
	var opts timeseriesOpts
	cmd := &cobra.Command{
		Use:   "timeseries",
		Short: "Load the time series of runs in one iteration",
		Long: "Locate the statistics artifact of --iteration, map each --run row to its\n" +
			"time-series file and print it. Runs are loaded in parallel; with --memo\n" +
			"resolved filenames are remembered in a SQLite store, and --memo --list\n" +
			"prints what the store holds for the iteration.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimeseries(cmd, a, &opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.artifact, "artifact", "", "statistics artifact name (default from config)")
	f.IntVar(&opts.iteration, "iteration", 0, "iteration number (required)")
	f.IntSliceVar(&opts.runs, "run", nil, "run (row) indices, repeatable or comma-separated")
	f.BoolVar(&opts.memo, "memo", false, "remember resolutions in the SQLite store")
	f.StringVar(&opts.db, "db", "", "resolution store path (default from config)")
	f.BoolVar(&opts.resolve, "resolve-only", false, "print resolved paths without loading tables")
	f.BoolVar(&opts.list, "list", false, "list memoized resolutions of the iteration (needs --memo)")

	_ = cmd.MarkFlagRequired("iteration")
	cmd.MarkFlagsOneRequired("run", "list")
	cmd.MarkFlagsMutuallyExclusive("run", "list")
	return cmd
}

func runTimeseries(cmd *cobra.Command, a *app, opts *timeseriesOpts) error {
	if opts.list && !opts.memo {
		return errors.New("--list reads the resolution store: pass --memo")
	}
	logger := logging.New("cli")
	artifact := opts.artifact
	if artifact == "" {
		artifact = a.cfg.StatsArtifact
	}
	n, err := loadTree(a.cfg.Tree)
	if err != nil {
		return err
	}
	agg := a.cfg.Aggregator()
	d, err := agg.Locate(n, artifact, opts.iteration)
	if err != nil {
		return err
	}

	var memo store.Store
	if opts.memo {
		path := opts.db
		if path == "" {
			path = a.cfg.DB
		}
		sq, err := store.Open(path)
		if err != nil {
			return fmt.Errorf("open resolution store: %w", err)
		}
		defer sq.Close()
		memo = sq
	}

	scheme := a.cfg.Naming.Key()
	out := cmd.OutOrStdout()
	if opts.list {
		return a.listResolutions(out, memo, d, scheme)
	}

	loaded, err := loadRuns(cmd.Context(), agg, memo, scheme, cmd.ErrOrStderr(), d, opts.runs, a.cfg.Parallel, !opts.resolve)
	if err != nil {
		return err
	}

	for i, ts := range loaded {
		if ts.Table == nil {
			fmt.Fprintf(out, "%d\t%s\t%s\n", ts.Run, ts.Filename, ts.Path)
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		a.printTable(out, fmt.Sprintf("iteration %d run %d: %s", d.Iteration, ts.Run, ts.Filename), ts.Table)
	}
	logger.Debug("time series loaded", "iteration", d.Iteration, "runs", len(loaded))
	return nil
}

func (a *app) listResolutions(w io.Writer, memo store.Store, d iteration.Descriptor, scheme string) error {
	list, err := memo.ListResolutions(d.Path, scheme)
	if err != nil {
		return err
	}
	runs := make([]any, len(list))
	names := make([]any, len(list))
	paths := make([]any, len(list))
	for i, r := range list {
		runs[i], names[i], paths[i] = r.Run, r.Filename, r.Path
	}
	t, err := table.New([]table.Column{
		{Key: table.Name("run"), Values: runs},
		{Key: table.Name("filename"), Values: names},
		{Key: table.Name("path"), Values: paths},
	})
	if err != nil {
		return err
	}
	a.printTable(w, fmt.Sprintf("iteration %d: memoized resolutions", d.Iteration), t)
	return nil
}

// loadRuns resolves every run against the iteration's statistics, in
// parallel up to limit. Memoized resolutions under the same naming scheme
// skip the statistics load unless their file has gone missing, which is
// reported on warn and resolved again. Results keep the order of runs.
func loadRuns(ctx context.Context, agg *results.Aggregator, memo store.Store, scheme string, warn io.Writer, d iteration.Descriptor, runs []int, limit int, load bool) ([]results.Timeseries, error) {
	out := make([]results.Timeseries, len(runs))
	var pending []int
	for i, run := range runs {
		if memo != nil {
			r, err := memo.GetResolution(d.Path, scheme, run)
			if err != nil {
				return nil, err
			}
			if r != nil {
				if _, err := os.Stat(r.Path); err == nil {
					out[i] = results.Timeseries{Iteration: d, Run: run, Filename: r.Filename, Path: r.Path}
					continue
				}
				fmt.Fprintln(warn, warnColor.Sprintf("run %d: memoized %s is gone, resolving again", run, r.Path))
			}
		}
		pending = append(pending, i)
	}

	var stats *table.Table
	if len(pending) > 0 {
		var err error
		if stats, err = agg.Statistics(d); err != nil {
			return nil, err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range out {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if out[i].Path == "" {
				name, path, err := agg.Resolver.Resolve(runs[i], stats, d.Dir)
				if err != nil {
					return fmt.Errorf("iteration %d: %w", d.Iteration, err)
				}
				out[i] = results.Timeseries{Iteration: d, Run: runs[i], Filename: name, Path: path}
			}
			if !load {
				return nil
			}
			t, err := agg.Load(out[i].Path)
			if err != nil {
				return err
			}
			out[i].Table = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if memo != nil {
		for _, i := range pending {
			ts := out[i]
			if err := memo.SaveResolution(&store.Resolution{StatsPath: d.Path, Scheme: scheme, Run: ts.Run, Filename: ts.Filename, Path: ts.Path}); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
