package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"resultscope/internal/config"
	"resultscope/internal/format"
	"resultscope/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries the resolved settings of one invocation.
type app struct {
	cfg  config.Config
	mode format.Mode
}

type rootFlags struct {
	config    string
	tree      string
	logLevel  string
	logFormat string
	format    string
	maxRows   int
	noColor   bool
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     app
	)
	root := &cobra.Command{
		Use:   "resultscope",
		Short: "Locate and reconcile simulation result artifacts",
		Long: "resultscope finds per-iteration statistics artifacts in an optimization\n" +
			"output tree, maps statistics rows to their time-series files and\n" +
			"assembles case-matrix and driver tables.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, &flags)
		},
	}
	root.Version = version

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file (YAML or JSON)")
	pf.StringVar(&flags.tree, "tree", "", "tree manifest or output directory (overrides config and $"+config.EnvTree+")")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&flags.format, "format", "", "output format: ascii, markdown or csv")
	pf.IntVar(&flags.maxRows, "max-rows", -1, "rows to print per table (0 = all)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored status lines")

	root.AddCommand(
		newCrawlCmd(&a),
		newFindCmd(&a),
		newIterationsCmd(&a),
		newCaseMatrixCmd(&a),
		newTimeseriesCmd(&a),
		newDriverCmd(&a),
		newOutfileCmd(&a),
	)
	return root
}

// setup merges config file, environment and flags, in increasing precedence.
func (a *app) setup(cmd *cobra.Command, f *rootFlags) error {
	cfg, err := config.LoadFromPath(f.config)
	if err != nil {
		return err
	}
	pf := cmd.Flags()
	if pf.Changed("tree") {
		cfg.Tree = f.tree
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if pf.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if pf.Changed("format") {
		cfg.Format = f.format
	}
	if pf.Changed("max-rows") {
		if f.maxRows < 0 {
			return fmt.Errorf("--max-rows must not be negative")
		}
		cfg.MaxRows = f.maxRows
	}
	if f.noColor {
		color.NoColor = true
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}
	mode, err := format.ParseMode(cfg.Format)
	if err != nil {
		return err
	}
	a.cfg, a.mode = cfg, mode
	return nil
}
