package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"resultscope/internal/config"
	"resultscope/internal/format"
	"resultscope/internal/table"
	"resultscope/internal/tree"
)

var (
	okColor   = color.New(color.FgHiGreen)
	infoColor = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow)
)

// loadTree reads a manifest, or crawls the path when it is a directory.
func loadTree(path string) (tree.Node, error) {
	if path == "" {
		return tree.Node{}, fmt.Errorf("no tree: pass --tree, set tree in the config or $%s", config.EnvTree)
	}
	info, err := os.Stat(path)
	if err != nil {
		return tree.Node{}, fmt.Errorf("open tree: %w", err)
	}
	if info.IsDir() {
		return tree.Crawl(path)
	}
	return tree.Load(path)
}

// printTable writes t in the configured mode. CSV output carries no status
// decoration so it stays machine readable.
func (a *app) printTable(w io.Writer, title string, t *table.Table) {
	if a.mode != format.CSV && title != "" {
		fmt.Fprintf(w, "%s  %s\n", infoColor.Sprint(title),
			format.Plural(t.Len(), "row")+" x "+format.Plural(t.Width(), "column"))
	}
	fmt.Fprintln(w, format.Table(t, a.mode, a.cfg.MaxRows))
}
