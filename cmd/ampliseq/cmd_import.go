package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/manifest"
)

var importOutputDir string

var importCmd = &cobra.Command{
	Use:   "import <manifest>",
	Short: "Import a FASTQ manifest into a demultiplexed sequence artifact",
	Long: `Imports the FASTQ files listed in a manifest into the framework's
demultiplexed sequence artifact. Paired-end import is selected when any
manifest row carries a reverse read.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importOutputDir, "output-dir", "data/qiime2", "Directory the artifact is written to")
}

func runImport(cmd *cobra.Command, args []string) error {
	rows, err := manifest.Read(args[0])
	if err != nil {
		return err
	}

	paired := manifest.IsPaired(rows)
	layout := "single-end"
	if paired {
		layout = "paired-end"
	}
	fmt.Printf("Importing %d manifest entries (%s)\n", len(rows), layout)

	art, err := newQiime().ImportSequences(cmd.Context(), args[0], importOutputDir, paired)
	if err != nil {
		return err
	}

	fmt.Println("Artifact written:", art.Path())
	return nil
}
