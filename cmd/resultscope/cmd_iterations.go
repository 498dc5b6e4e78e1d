package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resultscope/internal/format"
)

func newIterationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "iterations",
		Short: "List iteration numbers in tree order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := loadTree(a.cfg.Tree)
			if err != nil {
				return err
			}
			its, err := a.cfg.Aggregator().Iterations(n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.mode == format.ASCII {
				fmt.Fprintln(out, infoColor.Sprint(format.Plural(len(its), "iteration")))
			}
			for _, it := range its {
				fmt.Fprintln(out, it)
			}
			return nil
		},
	}
}
