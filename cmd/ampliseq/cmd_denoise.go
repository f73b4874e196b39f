package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/qiime"
)

var denoiseOutputDir string

var denoiseCmd = &cobra.Command{
	Use:   "denoise",
	Short: "Error-correct reads into sequence variants",
}

var (
	deblurTrimLength  int
	deblurLeftTrimLen int
	deblurMinReads    int
	deblurMinSize     int
	deblurJobs        int
)

var deblurCmd = &cobra.Command{
	Use:   "deblur <demux.qza>",
	Short: "Denoise with deblur (denoise-16S)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeblur,
}

var (
	dada2TruncLenF  int
	dada2TruncLenR  int
	dada2TrimLeftF  int
	dada2TrimLeftR  int
	dada2MaxEEF     float64
	dada2MaxEER     float64
	dada2TruncQ     int
	dada2MinOverlap int
	dada2Threads    int
)

var dada2Cmd = &cobra.Command{
	Use:   "dada2 <demux.qza>",
	Short: "Denoise paired-end reads with DADA2 (denoise-paired)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDADA2,
}

func init() {
	rootCmd.AddCommand(denoiseCmd)
	denoiseCmd.PersistentFlags().StringVar(&denoiseOutputDir, "output-dir", "results/denoise", "Directory the artifacts are written to")

	denoiseCmd.AddCommand(deblurCmd)
	deblurCmd.Flags().IntVar(&deblurTrimLength, "trim-length", 250, "Sequence trim length")
	deblurCmd.Flags().IntVar(&deblurLeftTrimLen, "left-trim-len", 0, "Bases trimmed from the 5' end")
	deblurCmd.Flags().IntVar(&deblurMinReads, "min-reads", 10, "Minimum reads per feature across all samples")
	deblurCmd.Flags().IntVar(&deblurMinSize, "min-size", 2, "Minimum abundance within a sample")
	deblurCmd.Flags().IntVar(&deblurJobs, "jobs-to-start", 4, "Number of worker processes")

	denoiseCmd.AddCommand(dada2Cmd)
	dada2Cmd.Flags().IntVar(&dada2TruncLenF, "trunc-len-f", 240, "Forward read truncation length")
	dada2Cmd.Flags().IntVar(&dada2TruncLenR, "trunc-len-r", 200, "Reverse read truncation length")
	dada2Cmd.Flags().IntVar(&dada2TrimLeftF, "trim-left-f", 10, "Bases trimmed from forward reads")
	dada2Cmd.Flags().IntVar(&dada2TrimLeftR, "trim-left-r", 10, "Bases trimmed from reverse reads")
	dada2Cmd.Flags().Float64Var(&dada2MaxEEF, "max-ee-f", 2.0, "Maximum expected errors, forward")
	dada2Cmd.Flags().Float64Var(&dada2MaxEER, "max-ee-r", 2.0, "Maximum expected errors, reverse")
	dada2Cmd.Flags().IntVar(&dada2TruncQ, "trunc-q", 2, "Truncate reads at the first base at or below this quality")
	dada2Cmd.Flags().IntVar(&dada2MinOverlap, "min-overlap", 12, "Minimum forward/reverse overlap when merging")
	dada2Cmd.Flags().IntVar(&dada2Threads, "threads", 4, "Worker threads")
}

func runDeblur(cmd *cobra.Command, args []string) error {
	opts := qiime.DeblurOptionsFrom(cfg)
	flags := cmd.Flags()
	if flags.Changed("trim-length") {
		opts.TrimLength = deblurTrimLength
	}
	if flags.Changed("left-trim-len") {
		opts.LeftTrimLen = deblurLeftTrimLen
	}
	if flags.Changed("min-reads") {
		opts.MinReads = deblurMinReads
	}
	if flags.Changed("min-size") {
		opts.MinSize = deblurMinSize
	}
	if flags.Changed("jobs-to-start") {
		opts.JobsToStart = deblurJobs
	}

	res, err := newQiime().DenoiseDeblur(cmd.Context(), qiime.NewRef(args[0]), denoiseOutputDir, opts)
	if err != nil {
		return err
	}

	printDenoiseResult(res)
	return nil
}

func runDADA2(cmd *cobra.Command, args []string) error {
	opts := qiime.DADA2OptionsFrom(cfg)
	flags := cmd.Flags()
	if flags.Changed("trunc-len-f") {
		opts.TruncLenF = dada2TruncLenF
	}
	if flags.Changed("trunc-len-r") {
		opts.TruncLenR = dada2TruncLenR
	}
	if flags.Changed("trim-left-f") {
		opts.TrimLeftF = dada2TrimLeftF
	}
	if flags.Changed("trim-left-r") {
		opts.TrimLeftR = dada2TrimLeftR
	}
	if flags.Changed("max-ee-f") {
		opts.MaxEEF = dada2MaxEEF
	}
	if flags.Changed("max-ee-r") {
		opts.MaxEER = dada2MaxEER
	}
	if flags.Changed("trunc-q") {
		opts.TruncQ = dada2TruncQ
	}
	if flags.Changed("min-overlap") {
		opts.MinOverlap = dada2MinOverlap
	}
	if flags.Changed("threads") {
		opts.Threads = dada2Threads
	}

	res, err := newQiime().DenoiseDADA2(cmd.Context(), qiime.NewRef(args[0]), denoiseOutputDir, opts)
	if err != nil {
		return err
	}

	printDenoiseResult(res)
	return nil
}

func printDenoiseResult(res *qiime.DenoiseResult) {
	fmt.Println("Feature table:           ", res.Table.Path())
	fmt.Println("Representative sequences:", res.RepSeqs.Path())
	fmt.Println("Denoising statistics:    ", res.Stats.Path())
}
