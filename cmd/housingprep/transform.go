package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/internal/metrics"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/data"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/pipeline"
)

func newTransformCmd(logger func() (*slog.Logger, error)) *cobra.Command {
	var (
		configPath  string
		stateIn     string
		stateOut    string
		outPath     string
		metricsPath string
	)
	cmd := &cobra.Command{
		Use:   "transform <file.csv>",
		Short: "Run a configured preprocessing pipeline over a table",
		Long: `Fits the pipeline described by --config on the input and writes the transformed table.
With --state-in the states saved by an earlier run are reused instead of fitting again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger()
			if err != nil {
				return err
			}
			cfg, err := readConfig(configPath)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			p, err := cfg.Build(
				pipeline.WithLogger(log),
				pipeline.WithMetrics(metrics.NewPrometheus(reg, "")),
			)
			if err != nil {
				return err
			}
			t, err := data.ReadCSVFile(args[0])
			if err != nil {
				return err
			}

			var (
				fitted *pipeline.Fitted
				res    *core.Table
			)
			if stateIn != "" {
				if fitted, err = loadState(p, stateIn); err != nil {
					return err
				}
				res, err = fitted.Transform(t)
			} else {
				fitted, res, err = p.FitTransform(t)
			}
			if err != nil {
				return err
			}
			log.Info("pipeline finished", "steps", len(p.Steps()), "rows", res.NumRows(), "columns", res.NumCols())

			if stateOut != "" {
				if err := saveState(fitted, stateOut); err != nil {
					return err
				}
			}
			if metricsPath != "" {
				if err := dumpMetrics(reg, metricsPath); err != nil {
					return err
				}
			}
			if outPath == "" || outPath == "-" {
				return data.WriteCSV(cmd.OutOrStdout(), res)
			}
			return data.WriteCSVFile(outPath, res)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Pipeline configuration (YAML)")
	cmd.Flags().StringVar(&stateIn, "state-in", "", "Reuse fitted states saved by --state-out")
	cmd.Flags().StringVar(&stateOut, "state-out", "", "Save fitted states to this file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Output CSV file")
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "Write stage metrics in Prometheus text format to this file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func readConfig(path string) (*pipeline.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pipeline.LoadConfig(f)
}

func loadState(p *pipeline.Pipeline, path string) (*pipeline.Fitted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Load(f)
}

func saveState(fitted *pipeline.Fitted, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fitted.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func dumpMetrics(g prometheus.Gatherer, path string) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
