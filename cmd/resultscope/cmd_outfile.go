package main

import (
	"github.com/spf13/cobra"

	"resultscope/internal/table"
)

func newOutfileCmd(a *app) *cobra.Command {
	var skip []int
	cmd := &cobra.Command{
		Use:   "outfile <path>",
		Short: "Print a whitespace-separated OpenFAST output file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := table.LoadFields(args[0], skip)
			if err != nil {
				return err
			}
			a.printTable(cmd.OutOrStdout(), args[0], t)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&skip, "skip", table.OutfileSkipRows, "0-based line numbers to skip before the header")
	return cmd
}
