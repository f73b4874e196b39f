package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
)

var statsDir string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize downloaded FASTQ files and leftover archives",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsDir, "output-dir", "data/raw", "Download directory to summarize")
}

func runStats(cmd *cobra.Command, args []string) error {
	var sizes []float64
	var fastqCount, sraCount int

	err := filepath.WalkDir(statsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case strings.HasSuffix(path, ".fastq"), strings.HasSuffix(path, ".fastq.gz"):
			fastqCount++
			if info, err := d.Info(); err == nil {
				sizes = append(sizes, float64(info.Size()))
			}
		case strings.HasSuffix(path, ".sra"):
			sraCount++
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Download statistics for %s:\n", statsDir)
	fmt.Printf("  FASTQ files:            %d\n", fastqCount)
	fmt.Printf("  Leftover .sra archives: %d\n", sraCount)

	if len(sizes) > 0 {
		total, _ := stats.Sum(sizes)
		mean, _ := stats.Mean(sizes)
		median, _ := stats.Median(sizes)
		fmt.Printf("  FASTQ disk usage:       %.2f GB (mean %.1f MB, median %.1f MB per file)\n",
			total/(1<<30), mean/(1<<20), median/(1<<20))
	}
	return nil
}
