package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/qiime"
)

var (
	qcOutputDir  string
	qcMinQuality int
)

var qcCmd = &cobra.Command{
	Use:   "quality-control <demux.qza>",
	Short: "Summarize read quality and apply the q-score filter",
	Long: `Renders the demultiplexed-read quality report and then filters the
sequences by quality score, writing the report, the filtered sequences,
and the filter statistics into the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runQualityControl,
}

func init() {
	rootCmd.AddCommand(qcCmd)
	qcCmd.Flags().StringVar(&qcOutputDir, "output-dir", "results/quality_control", "Directory the outputs are written to")
	qcCmd.Flags().IntVar(&qcMinQuality, "min-quality", 20, "Minimum acceptable quality score")
}

func runQualityControl(cmd *cobra.Command, args []string) error {
	client := newQiime()
	demux := qiime.NewRef(args[0])

	viz, err := client.SummarizeDemux(cmd.Context(), demux, qcOutputDir)
	if err != nil {
		return err
	}
	fmt.Println("Quality report:", viz)

	opts := qiime.DefaultQualityFilterOptions()
	opts.MinQuality = qcMinQuality

	res, err := client.QualityFilter(cmd.Context(), demux, qcOutputDir, opts)
	if err != nil {
		return err
	}

	fmt.Println("Filtered sequences:", res.FilteredSeqs.Path())
	fmt.Println("Filter statistics: ", res.FilterStats.Path())
	return nil
}
