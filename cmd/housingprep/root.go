package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/internal/logging"
)

func newRootCmd() *cobra.Command {
	var level string
	root := &cobra.Command{
		Use:           "housingprep",
		Short:         "Preprocess tabular housing data",
		Long:          `housingprep describes CSV tables, reports outlier diagnostics, runs configured preprocessing pipelines and splits rows into stable train/test sets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&level, "log-level", "warn", "Log level (debug, info, warn, error)")

	logger := func() (*slog.Logger, error) {
		lvl, err := logging.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		return logging.New(lvl), nil
	}

	root.AddCommand(
		newDescribeCmd(),
		newDiagnoseCmd(logger),
		newTransformCmd(logger),
		newSplitCmd(logger),
	)
	return root
}
