package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ampliseq/internal/errs"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the external tools are installed",
	Long: `Resolves every configured external tool on PATH and reports the ones
that are missing. Run this before a long batch.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	run := newRunner()

	tools := []struct{ name, bin string }{
		{"archive retrieval (prefetch)", cfg.Tools.Prefetch},
		{"archive conversion (fasterq-dump)", cfg.Tools.FasterqDump},
		{"archive metadata (sra-stat)", cfg.Tools.SraStat},
		{"analysis framework (qiime)", cfg.Tools.Qiime},
		{"biom converter (biom)", cfg.Tools.Biom},
		{"pathway inference (picrust2)", cfg.Tools.Picrust2},
	}

	var missing []string
	for _, tool := range tools {
		path, err := run.LookPath(tool.bin)
		if err != nil {
			fmt.Printf("  MISSING  %-35s %s\n", tool.name, tool.bin)
			missing = append(missing, tool.bin)
			continue
		}
		fmt.Printf("  ok       %-35s %s\n", tool.name, path)
	}

	if len(missing) > 0 {
		return errs.Configf("%d tool(s) not found on PATH: %v", len(missing), missing)
	}
	fmt.Println("All external tools found.")
	return nil
}
