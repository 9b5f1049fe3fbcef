package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/data"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/report"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/stats"
)

func newDiagnoseCmd(logger func() (*slog.Logger, error)) *cobra.Command {
	var (
		ranges  int
		plotDir string
		bins    int
	)
	cmd := &cobra.Command{
		Use:   "diagnose <file.csv>",
		Short: "Report normality and IQR outlier metrics of numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger()
			if err != nil {
				return err
			}
			t, err := data.ReadCSVFile(args[0])
			if err != nil {
				return err
			}
			normal, err := stats.NormalMetrics(t, ranges)
			if err != nil {
				return err
			}
			iqr, err := stats.IQRMetrics(t)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Share of values within k standard deviations of the mean:")
			fmt.Fprintln(out, normal)
			fmt.Fprintln(out, "IQR bounds:")
			fmt.Fprintln(out, iqr)

			if plotDir == "" {
				return nil
			}
			if err := os.MkdirAll(plotDir, 0o755); err != nil {
				return err
			}
			for _, name := range t.NumericNames() {
				c, _ := t.Column(name)
				b, err := stats.IQRBounds(c)
				if err != nil {
					return err
				}
				path := filepath.Join(plotDir, name+".png")
				if err := report.Histogram(c, &b, bins, path); err != nil {
					log.Warn("skipping histogram", "column", name, "error", err)
					continue
				}
				log.Info("wrote histogram", "column", name, "path", path)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ranges, "ranges", 3, "Number of standard deviation ranges to report")
	cmd.Flags().StringVar(&plotDir, "plot-dir", "", "Write a histogram per numeric column into this directory")
	cmd.Flags().IntVar(&bins, "bins", report.DefaultBins, "Histogram bin count")
	return cmd
}
