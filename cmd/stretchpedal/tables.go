package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stretch/dsp/window"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the analysis window and synthesis correction tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := window.StretchTables()
		w := t.Analysis()
		c := t.Correction()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "i\twindow\tcorrection\n")
		for i := range w {
			if i < len(c) {
				fmt.Fprintf(tw, "%d\t%.8f\t%.8f\n", i, w[i], c[i])
			} else {
				fmt.Fprintf(tw, "%d\t%.8f\t\n", i, w[i])
			}
		}
		return tw.Flush()
	},
}
