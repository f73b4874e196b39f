package qiime

import (
	"context"
	"path/filepath"
	"strconv"

	"ampliseq/internal/config"
)

// DenoiseResult names the three artifacts every denoising method produces.
type DenoiseResult struct {
	Table   *Ref
	RepSeqs *Ref
	Stats   *Ref
}

// DeblurOptions parameterize deblur denoise-16S. Build them with
// DeblurOptionsFrom so unset fields carry the canonical defaults.
type DeblurOptions struct {
	TrimLength       int
	LeftTrimLen      int
	MinReads         int
	MinSize          int
	JobsToStart      int
	HashedFeatureIDs bool
}

// DeblurOptionsFrom lifts the configured defaults into an options struct.
func DeblurOptionsFrom(cfg *config.Config) DeblurOptions {
	return DeblurOptions{
		TrimLength:       cfg.Deblur.TrimLength,
		LeftTrimLen:      cfg.Deblur.LeftTrimLen,
		MinReads:         cfg.Deblur.MinReads,
		MinSize:          cfg.Deblur.MinSize,
		JobsToStart:      cfg.Deblur.JobsToStart,
		HashedFeatureIDs: true,
	}
}

// DenoiseDeblur error-corrects demultiplexed reads into sequence variants
// with deblur, writing table.qza, rep-seqs.qza, and stats.qza.
func (c *Client) DenoiseDeblur(ctx context.Context, demux *Ref, outputDir string, opts DeblurOptions) (*DenoiseResult, error) {
	path, err := demux.Resolve()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	table := filepath.Join(outputDir, "table.qza")
	repSeqs := filepath.Join(outputDir, "rep-seqs.qza")
	stats := filepath.Join(outputDir, "stats.qza")

	args := []string{"deblur", "denoise-16S",
		"--i-demultiplexed-seqs", path,
		"--p-trim-length", strconv.Itoa(opts.TrimLength),
		"--p-left-trim-len", strconv.Itoa(opts.LeftTrimLen),
		"--p-min-reads", strconv.Itoa(opts.MinReads),
		"--p-min-size", strconv.Itoa(opts.MinSize),
		"--p-jobs-to-start", strconv.Itoa(opts.JobsToStart),
	}
	if opts.HashedFeatureIDs {
		args = append(args, "--p-hashed-feature-ids")
	} else {
		args = append(args, "--p-no-hashed-feature-ids")
	}
	args = append(args,
		"--o-table", table,
		"--o-representative-sequences", repSeqs,
		"--o-stats", stats,
	)

	if _, err := c.invoke(ctx, args...); err != nil {
		return nil, err
	}

	return &DenoiseResult{
		Table:   NewRef(table),
		RepSeqs: NewRef(repSeqs),
		Stats:   NewRef(stats),
	}, nil
}

// DADA2Options parameterize dada2 denoise-paired.
type DADA2Options struct {
	TruncLenF  int
	TruncLenR  int
	TrimLeftF  int
	TrimLeftR  int
	MaxEEF     float64
	MaxEER     float64
	TruncQ     int
	MinOverlap int
	Threads    int
}

// DADA2OptionsFrom lifts the configured defaults into an options struct.
func DADA2OptionsFrom(cfg *config.Config) DADA2Options {
	return DADA2Options{
		TruncLenF:  cfg.DADA2.TruncLenF,
		TruncLenR:  cfg.DADA2.TruncLenR,
		TrimLeftF:  cfg.DADA2.TrimLeftF,
		TrimLeftR:  cfg.DADA2.TrimLeftR,
		MaxEEF:     cfg.DADA2.MaxEEF,
		MaxEER:     cfg.DADA2.MaxEER,
		TruncQ:     cfg.DADA2.TruncQ,
		MinOverlap: cfg.DADA2.MinOverlap,
		Threads:    cfg.DADA2.Threads,
	}
}

// DenoiseDADA2 error-corrects paired-end demultiplexed reads with DADA2,
// writing the same artifact set as deblur.
func (c *Client) DenoiseDADA2(ctx context.Context, demux *Ref, outputDir string, opts DADA2Options) (*DenoiseResult, error) {
	path, err := demux.Resolve()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	table := filepath.Join(outputDir, "table.qza")
	repSeqs := filepath.Join(outputDir, "rep-seqs.qza")
	stats := filepath.Join(outputDir, "stats.qza")

	_, err = c.invoke(ctx, "dada2", "denoise-paired",
		"--i-demultiplexed-seqs", path,
		"--p-trunc-len-f", strconv.Itoa(opts.TruncLenF),
		"--p-trunc-len-r", strconv.Itoa(opts.TruncLenR),
		"--p-trim-left-f", strconv.Itoa(opts.TrimLeftF),
		"--p-trim-left-r", strconv.Itoa(opts.TrimLeftR),
		"--p-max-ee-f", strconv.FormatFloat(opts.MaxEEF, 'g', -1, 64),
		"--p-max-ee-r", strconv.FormatFloat(opts.MaxEER, 'g', -1, 64),
		"--p-trunc-q", strconv.Itoa(opts.TruncQ),
		"--p-min-overlap", strconv.Itoa(opts.MinOverlap),
		"--p-n-threads", strconv.Itoa(opts.Threads),
		"--o-table", table,
		"--o-representative-sequences", repSeqs,
		"--o-denoising-stats", stats,
	)
	if err != nil {
		return nil, err
	}

	return &DenoiseResult{
		Table:   NewRef(table),
		RepSeqs: NewRef(repSeqs),
		Stats:   NewRef(stats),
	}, nil
}
