package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/qiime"
)

var (
	phylogenyOutputDir string
	phylogenyThreads   int
)

var phylogenyCmd = &cobra.Command{
	Use:   "phylogeny <rep-seqs.qza>",
	Short: "Build a phylogenetic tree from representative sequences",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhylogeny,
}

func init() {
	rootCmd.AddCommand(phylogenyCmd)
	phylogenyCmd.Flags().StringVar(&phylogenyOutputDir, "output-dir", "results/phylogeny", "Directory the trees are written to")
	phylogenyCmd.Flags().IntVar(&phylogenyThreads, "threads", 0, "Alignment threads (0 = auto)")
}

func runPhylogeny(cmd *cobra.Command, args []string) error {
	res, err := newQiime().BuildPhylogeny(cmd.Context(), qiime.NewRef(args[0]), phylogenyOutputDir, phylogenyThreads)
	if err != nil {
		return err
	}

	fmt.Println("Unrooted tree:", res.UnrootedTree.Path())
	fmt.Println("Rooted tree:  ", res.RootedTree.Path())
	return nil
}
