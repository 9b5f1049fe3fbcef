package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/data"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file.csv>",
		Short: "Print the schema and size of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := data.ReadCSVFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rows: %d\ncolumns: %d\n", t.NumRows(), t.NumCols())
			for _, f := range t.Schema().Fields {
				c, _ := t.Column(f.Name)
				fmt.Fprintf(out, "  %-24s %-7s %d non-missing\n", f.Name, f.Kind, c.Count())
			}
			return nil
		},
	}
}
