package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resultscope/internal/format"
	"resultscope/internal/tree"
)

func newCrawlCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "crawl <dir>",
		Short: "Build a directory tree manifest from an output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := tree.Crawl(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if output == "" {
				fmt.Fprint(out, format.Tree(n))
				fmt.Fprintln(out)
				return nil
			}
			if err := tree.Save(output, n); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s manifest written to %s\n", okColor.Sprint("ok"), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the manifest to this YAML file instead of printing the tree")
	return cmd
}
