package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/data"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/loader"
)

func newSplitCmd(logger func() (*slog.Logger, error)) *cobra.Command {
	var (
		id       string
		fraction float64
		trainOut string
		testOut  string
	)
	cmd := &cobra.Command{
		Use:   "split <file.csv>",
		Short: "Split rows into train and test sets by hashing an identifier column",
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
			train, test, err := loader.Split(t, id, loader.WithTestFraction(fraction))
			if err != nil {
				return err
			}
			if err := data.WriteCSVFile(trainOut, train); err != nil {
				return err
			}
			if err := data.WriteCSVFile(testOut, test); err != nil {
				return err
			}
			log.Info("split written", "train_rows", train.NumRows(), "test_rows", test.NumRows())
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "id", "Identifier column")
	cmd.Flags().Float64Var(&fraction, "test-fraction", 0.2, "Expected share of rows in the test set")
	cmd.Flags().StringVar(&trainOut, "train-out", "train.csv", "Train set output")
	cmd.Flags().StringVar(&testOut, "test-out", "test.csv", "Test set output")
	return cmd
}
