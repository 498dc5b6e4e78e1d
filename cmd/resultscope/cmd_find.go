package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resultscope/internal/errs"
)

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <artifact>",
		Short: "List every path of an artifact in the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := loadTree(a.cfg.Tree)
			if err != nil {
				return err
			}
			paths := a.cfg.Aggregator().Candidates(n, args[0])
			if len(paths) == 0 {
				return errs.NotFound("artifact %q not in tree", args[0])
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
