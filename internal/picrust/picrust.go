// Package picrust wraps the pathway-inference pipeline: it unpacks the
// feature table and representative sequences out of their artifacts, runs
// picrust2_pipeline.py over them, and brings the predicted pathway abundance
// table back into the framework's artifact format plus a flat TSV.
package picrust

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"ampliseq/internal/config"
	"ampliseq/internal/qiime"
	"ampliseq/internal/shell"
)

// Options parameterize one pathway-inference run.
type Options struct {
	Table     *qiime.Ref
	RepSeqs   *qiime.Ref
	OutputDir string
	Threads   int
}

// Outputs names the files a successful run leaves in OutputDir.
type Outputs struct {
	AbundanceBIOM string
	AbundanceQZA  string
	AbundanceTSV  string
}

// Pipeline runs the external pathway-inference tool.
type Pipeline struct {
	Run   shell.Runner
	Qiime *qiime.Client
	Tool  string
	Biom  string
	Log   *zap.Logger
}

// New wires the pipeline from configuration.
func New(cfg *config.Config, run shell.Runner, qc *qiime.Client, log *zap.Logger) *Pipeline {
	return &Pipeline{
		Run:   run,
		Qiime: qc,
		Tool:  cfg.Tools.Picrust2,
		Biom:  cfg.Tools.Biom,
		Log:   log,
	}
}

// Infer predicts pathway abundance from the feature table and representative
// sequences. The output directory is recreated from scratch: the external
// tool refuses to write into an existing one.
func (p *Pipeline) Infer(ctx context.Context, opts Options) (*Outputs, error) {
	if err := os.RemoveAll(opts.OutputDir); err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp("", "ampliseq-picrust-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	biomPath, err := p.exportOne(ctx, opts.Table, filepath.Join(tmp, "table"), "*.biom")
	if err != nil {
		return nil, fmt.Errorf("exporting feature table: %w", err)
	}
	fastaPath, err := p.exportOne(ctx, opts.RepSeqs, filepath.Join(tmp, "seqs"), "*.fasta", "*.fna")
	if err != nil {
		return nil, fmt.Errorf("exporting representative sequences: %w", err)
	}

	p.Log.Info("running pathway inference",
		zap.String("table", biomPath),
		zap.String("sequences", fastaPath),
		zap.Int("threads", opts.Threads))

	res, err := p.Run.Run(ctx, shell.Command{
		Name: p.Tool,
		Args: []string{
			"-s", fastaPath,
			"-i", biomPath,
			"-o", opts.OutputDir,
			"--processes", strconv.Itoa(opts.Threads),
			"--verbose",
		},
	})
	if err != nil {
		if out := res.Combined(); out != "" {
			return nil, fmt.Errorf("pathway inference failed: %w\n%s", err, out)
		}
		return nil, fmt.Errorf("pathway inference failed: %w", err)
	}

	abundanceBIOM, err := p.findAbundanceBIOM(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	abundanceQZA := filepath.Join(opts.OutputDir, "pathway_abundance.qza")
	if _, err := p.Qiime.ImportBIOMTable(ctx, abundanceBIOM, abundanceQZA); err != nil {
		return nil, err
	}

	abundanceTSV := filepath.Join(opts.OutputDir, "pathway_abundance.tsv")
	if res, err := p.Run.Run(ctx, shell.Command{
		Name: p.Biom,
		Args: []string{"convert", "-i", abundanceBIOM, "-o", abundanceTSV, "--to-tsv"},
	}); err != nil {
		// A missing TSV is survivable; the artifact is the durable output.
		p.Log.Warn("could not convert pathway table to TSV",
			zap.Error(err), zap.String("output", res.Combined()))
		abundanceTSV = ""
	}

	return &Outputs{
		AbundanceBIOM: abundanceBIOM,
		AbundanceQZA:  abundanceQZA,
		AbundanceTSV:  abundanceTSV,
	}, nil
}

// exportOne exports an artifact and returns the first payload file matching
// any of the glob patterns, tried in order.
func (p *Pipeline) exportOne(ctx context.Context, art *qiime.Ref, dir string, patterns ...string) (string, error) {
	if err := p.Qiime.Export(ctx, art, dir); err != nil {
		return "", err
	}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("no %v file in export of %s", patterns, art.Path())
}

// findAbundanceBIOM locates the predicted pathway table, tolerating layout
// differences between tool versions.
func (p *Pipeline) findAbundanceBIOM(outputDir string) (string, error) {
	want := filepath.Join(outputDir, "pathway_abundance.biom")
	if _, err := os.Stat(want); err == nil {
		return want, nil
	}

	var found string
	err := filepath.WalkDir(outputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if found == "" && !d.IsDir() && filepath.Ext(path) == ".biom" {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no pathway abundance table found under %s", outputDir)
	}
	return found, nil
}
