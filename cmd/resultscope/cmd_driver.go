package main

import (
	"github.com/spf13/cobra"

	"resultscope/internal/driver"
	"resultscope/internal/results"
)

func newDriverCmd(a *app) *cobra.Command {
	var caseMatrix string
	cmd := &cobra.Command{
		Use:   "driver [recorder]",
		Short: "Print driver outputs from an OpenMDAO recorder",
		Long: "Print the design variables and responses of every driver iteration.\n" +
			"With --case-matrix the case-matrix columns are placed to the left.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Recorder
			if len(args) == 1 {
				path = args[0]
			}
			rec, err := driver.ReadRecorder(cmd.Context(), path)
			if err != nil {
				return err
			}
			agg := a.cfg.Aggregator()
			t, err := agg.DriverTable(rec)
			if err != nil {
				return err
			}
			title := "driver outputs"
			if caseMatrix != "" {
				cm, err := agg.CaseMatrix(caseMatrix)
				if err != nil {
					return err
				}
				if t, err = results.Compose(cm, t); err != nil {
					return err
				}
				title = "case matrix + driver outputs"
			}
			a.printTable(cmd.OutOrStdout(), title, t)
			return nil
		},
	}
	cmd.Flags().StringVar(&caseMatrix, "case-matrix", "", "case matrix to compose with the driver outputs")
	return cmd
}
