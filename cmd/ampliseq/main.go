// Command ampliseq is a 16S amplicon analysis pipeline: it downloads raw
// sequencing runs from the public archive, prepares them for the wrapped
// analysis framework, and drives the framework's denoising, taxonomy,
// phylogeny, diversity, and pathway-inference operations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ampliseq/internal/config"
	"ampliseq/internal/qiime"
	"ampliseq/internal/shell"
)

const version = "1.0.0"

var (
	// Persistent flags
	cfgPath string
	verbose bool

	// Wired in PersistentPreRunE, shared by every subcommand
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ampliseq",
	Short: "16S microbiome amplicon analysis pipeline",
	Long: `ampliseq runs a complete 16S amplicon workflow, from downloading raw
sequencing runs out of the public archive to denoised sequence variants,
taxonomic composition, phylogeny, diversity metrics, and predicted
metabolic pathways.

All scientific computation happens in external tools (sra-tools, the
amplicon analysis framework, picrust2); ampliseq sequences their
invocations and keeps the on-disk layout tidy.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a YAML config file (tool locations, defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newRunner builds the production subprocess runner with the configured
// per-invocation deadline.
func newRunner() shell.Runner {
	return shell.ExecRunner{DefaultTimeout: cfg.Execute.Timeout}
}

// newQiime builds the framework client over the production runner.
func newQiime() *qiime.Client {
	return qiime.NewClient(cfg, newRunner(), logger)
}

func main() {
	// An interrupt cancels the command's context rather than killing the
	// process, so a running batch stops between samples with the archive
	// cleanup for the current sample still applied.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
