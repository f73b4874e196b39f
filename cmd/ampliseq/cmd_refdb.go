package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	refdbSequences string
	refdbTaxonomy  string
	refdbOutputDir string
)

var refdbCmd = &cobra.Command{
	Use:   "import-refdb",
	Short: "Import a reference database for taxonomy classification",
	Long: `Imports a reference database given as a FASTA sequence file and a
headerless two-column taxonomy TSV, producing the two artifacts the
taxonomy command expects.`,
	RunE: runImportRefDB,
}

func init() {
	rootCmd.AddCommand(refdbCmd)
	refdbCmd.Flags().StringVar(&refdbSequences, "sequences", "", "Reference sequences FASTA file")
	refdbCmd.Flags().StringVar(&refdbTaxonomy, "taxonomy", "", "Reference taxonomy TSV file")
	refdbCmd.Flags().StringVar(&refdbOutputDir, "output-dir", "data/refdb", "Directory the artifacts are written to")
	_ = refdbCmd.MarkFlagRequired("sequences")
	_ = refdbCmd.MarkFlagRequired("taxonomy")
}

func runImportRefDB(cmd *cobra.Command, args []string) error {
	ref, err := newQiime().ImportReferenceDB(cmd.Context(), refdbSequences, refdbTaxonomy, refdbOutputDir)
	if err != nil {
		return err
	}

	fmt.Println("Reference sequences:", ref.Sequences.Path())
	fmt.Println("Reference taxonomy: ", ref.Taxonomy.Path())
	return nil
}
