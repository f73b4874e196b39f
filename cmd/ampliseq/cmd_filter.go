package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/qiime"
)

var (
	filterMinFrequency int
	filterMinSamples   int
	filterOutputDir    string
)

var filterCmd = &cobra.Command{
	Use:   "filter-table <table.qza>",
	Short: "Drop low-abundance features from a feature table",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilterTable,
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().IntVar(&filterMinFrequency, "min-frequency", 0, "Minimum total feature frequency")
	filterCmd.Flags().IntVar(&filterMinSamples, "min-samples", 0, "Minimum number of samples a feature must appear in")
	filterCmd.Flags().StringVar(&filterOutputDir, "output-dir", "results/filtered", "Directory the filtered table is written to")
}

func runFilterTable(cmd *cobra.Command, args []string) error {
	out, err := newQiime().FilterFeatures(cmd.Context(), qiime.NewRef(args[0]), filterOutputDir, qiime.FilterFeaturesOptions{
		MinFrequency: filterMinFrequency,
		MinSamples:   filterMinSamples,
	})
	if err != nil {
		return err
	}

	fmt.Println("Filtered table:", out.Path())
	return nil
}
