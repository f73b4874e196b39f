package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/qiime"
)

var (
	taxonomyRefSeqs   string
	taxonomyRefTaxa   string
	taxonomyMetadata  string
	taxonomyThreads   int
	taxonomyOutputDir string
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy <table.qza> <rep-seqs.qza>",
	Short: "Assign taxonomy and export per-rank composition tables",
	Long: `Classifies the representative sequences against a reference database,
renders the taxa barplot, and writes one normalized composition CSV per
taxonomic rank (phylum through species).`,
	Args: cobra.ExactArgs(2),
	RunE: runTaxonomy,
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
	taxonomyCmd.Flags().StringVar(&taxonomyRefSeqs, "ref-seqs", "", "Reference sequences artifact (.qza)")
	taxonomyCmd.Flags().StringVar(&taxonomyRefTaxa, "ref-taxa", "", "Reference taxonomy artifact (.qza)")
	taxonomyCmd.Flags().StringVar(&taxonomyMetadata, "metadata", "", "Sample metadata file")
	taxonomyCmd.Flags().IntVar(&taxonomyThreads, "threads", 1, "Classifier threads")
	taxonomyCmd.Flags().StringVar(&taxonomyOutputDir, "output-dir", "results/taxonomy", "Directory the outputs are written to")
	_ = taxonomyCmd.MarkFlagRequired("ref-seqs")
	_ = taxonomyCmd.MarkFlagRequired("ref-taxa")
	_ = taxonomyCmd.MarkFlagRequired("metadata")
}

func runTaxonomy(cmd *cobra.Command, args []string) error {
	ref := &qiime.ReferenceDB{
		Sequences: qiime.NewRef(taxonomyRefSeqs),
		Taxonomy:  qiime.NewRef(taxonomyRefTaxa),
	}

	res, err := newQiime().ClassifyTaxonomy(cmd.Context(),
		qiime.NewRef(args[0]), qiime.NewRef(args[1]),
		ref, taxonomyMetadata, taxonomyThreads, taxonomyOutputDir)
	if err != nil {
		return err
	}

	fmt.Println("Classification:", res.Classification.Path())
	fmt.Println("Taxa barplot:  ", res.Barplot)
	for _, csv := range res.LevelCSVs {
		fmt.Println("Level table:   ", csv)
	}
	return nil
}
