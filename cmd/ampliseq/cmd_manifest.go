package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/manifest"
)

var (
	manifestInputDir   string
	manifestOutputFile string
)

var manifestCmd = &cobra.Command{
	Use:   "create-manifest",
	Short: "Build a FASTQ import manifest from downloaded sample directories",
	Long: `Scans the download directory for per-sample FASTQ files and writes the
CSV manifest the import command consumes. Forward and reverse reads of
paired samples are identified by filename tokens.`,
	RunE: runCreateManifest,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().StringVar(&manifestInputDir, "input-dir", "data/raw", "Directory holding per-sample FASTQ directories")
	manifestCmd.Flags().StringVar(&manifestOutputFile, "output-file", "fasta_manifest.csv", "Manifest file to write")
}

func runCreateManifest(cmd *cobra.Command, args []string) error {
	rows, err := manifest.Build(manifestInputDir, logger)
	if err != nil {
		return err
	}
	if err := manifest.Write(rows, manifestOutputFile); err != nil {
		return err
	}

	fmt.Printf("Manifest written: %s (%d sample(s), %d entries)\n",
		manifestOutputFile, len(manifest.Samples(rows)), len(rows))
	return nil
}
