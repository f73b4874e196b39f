package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/qiime"
)

var (
	alphaMetrics   []string
	alphaTree      string
	alphaOutputDir string

	betaMetrics   []string
	betaTree      string
	betaOutputDir string
)

var alphaCmd = &cobra.Command{
	Use:   "alpha-diversity <table.qza>",
	Short: "Compute within-sample diversity metrics",
	Long: `Computes each requested alpha diversity metric over the feature table
and exports it as a CSV. faith_pd needs the rooted phylogenetic tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runAlphaDiversity,
}

var betaCmd = &cobra.Command{
	Use:   "beta-diversity <table.qza>",
	Short: "Compute between-sample distance matrices",
	Long: `Computes each requested beta diversity distance matrix, saving the
matrix artifact and a CSV export. The unifrac metrics need the rooted
phylogenetic tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runBetaDiversity,
}

func init() {
	rootCmd.AddCommand(alphaCmd)
	alphaCmd.Flags().StringSliceVar(&alphaMetrics, "metrics", []string{"shannon", "observed_features"}, "Alpha diversity metrics")
	alphaCmd.Flags().StringVar(&alphaTree, "rooted-tree", "", "Rooted tree artifact, required for faith_pd")
	alphaCmd.Flags().StringVar(&alphaOutputDir, "output-dir", "results/alpha_diversity", "Directory the CSVs are written to")

	rootCmd.AddCommand(betaCmd)
	betaCmd.Flags().StringSliceVar(&betaMetrics, "metrics", []string{"braycurtis", "jaccard"}, "Beta diversity metrics")
	betaCmd.Flags().StringVar(&betaTree, "rooted-tree", "", "Rooted tree artifact, required for unifrac metrics")
	betaCmd.Flags().StringVar(&betaOutputDir, "output-dir", "results/beta_diversity", "Directory the outputs are written to")
}

func runAlphaDiversity(cmd *cobra.Command, args []string) error {
	var tree *qiime.Ref
	if alphaTree != "" {
		tree = qiime.NewRef(alphaTree)
	}

	outputs, err := newQiime().AlphaDiversity(cmd.Context(), qiime.NewRef(args[0]), alphaMetrics, tree, alphaOutputDir)
	if err != nil {
		return err
	}

	for _, out := range outputs {
		fmt.Println("Alpha diversity:", out)
	}
	return nil
}

func runBetaDiversity(cmd *cobra.Command, args []string) error {
	var tree *qiime.Ref
	if betaTree != "" {
		tree = qiime.NewRef(betaTree)
	}

	outputs, err := newQiime().BetaDiversity(cmd.Context(), qiime.NewRef(args[0]), betaMetrics, tree, betaOutputDir)
	if err != nil {
		return err
	}

	for _, out := range outputs {
		fmt.Println("Distance matrix:", out)
	}
	return nil
}
