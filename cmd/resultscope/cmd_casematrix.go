package main

import (
	"github.com/spf13/cobra"
)

func newCaseMatrixCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "casematrix [path]",
		Short: "Print a case matrix as a table",
		Long:  "Print a case matrix as a table. Without an argument the config's case_matrix is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.CaseMatrix
			if len(args) == 1 {
				path = args[0]
			}
			t, err := a.cfg.Aggregator().CaseMatrix(path)
			if err != nil {
				return err
			}
			a.printTable(cmd.OutOrStdout(), "case matrix", t)
			return nil
		},
	}
}
