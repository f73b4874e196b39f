package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/sra"
)

var (
	downloadOutputDir    string
	downloadAccessionCol string
	downloadSkipExisting bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <table>",
	Short: "Download sequencing runs listed in a sample table",
	Long: `Reads accessions from a CSV or TSV sample table and, for each one,
fetches the run archive, detects whether it is single- or paired-end,
converts it to FASTQ, and removes the archive and its cache files.

The accession column is found by name heuristic (a header containing
"accession", "sra", or "run") unless --accession-col names it explicitly.
One broken accession never aborts the batch: failures are reported in the
end-of-batch summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVar(&downloadOutputDir, "output-dir", "data/raw", "Directory the per-accession FASTQ directories are written under")
	downloadCmd.Flags().StringVar(&downloadAccessionCol, "accession-col", "", "Explicit name of the accession column (default: heuristic)")
	downloadCmd.Flags().BoolVar(&downloadSkipExisting, "skip-existing", false, "Skip accessions whose FASTQ output already exists (default is to always re-fetch)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	accessions, err := sra.ResolveAccessions(args[0], downloadAccessionCol)
	if err != nil {
		return err
	}
	if len(accessions) == 0 {
		fmt.Println("No accessions to download.")
		return nil
	}

	fmt.Printf("Downloading %d run(s) to %s\n", len(accessions), downloadOutputDir)

	driver := sra.NewDriver(cfg, newRunner(), downloadOutputDir, logger)
	driver.SkipExisting = downloadSkipExisting

	summary := driver.Run(cmd.Context(), accessions)
	fmt.Println("Batch summary:", summary.String())

	if summary.Cleaned == 0 && summary.Failed() > 0 {
		return fmt.Errorf("all %d accession(s) failed", summary.Failed())
	}
	return nil
}
