package qiime

import (
	"context"
	"path/filepath"
	"strconv"
)

// SummarizeDemux renders the demultiplexed-read quality report
// (quality_viz.qzv) into outputDir and returns its path.
func (c *Client) SummarizeDemux(ctx context.Context, demux *Ref, outputDir string) (string, error) {
	path, err := demux.Resolve()
	if err != nil {
		return "", err
	}
	if err := ensureDir(outputDir); err != nil {
		return "", err
	}

	out := filepath.Join(outputDir, "quality_viz.qzv")
	_, err = c.invoke(ctx, "demux", "summarize",
		"--i-data", path,
		"--o-visualization", out,
	)
	if err != nil {
		return "", err
	}
	return out, nil
}

// QualityFilterOptions parameterize the q-score filter. Zero values are
// meaningful here, so use DefaultQualityFilterOptions and override fields
// rather than building the struct from scratch.
type QualityFilterOptions struct {
	MinQuality        int
	QualityWindow     int
	MinLengthFraction float64
	MaxAmbiguous      int
}

// DefaultQualityFilterOptions returns the canonical filter parameters.
func DefaultQualityFilterOptions() QualityFilterOptions {
	return QualityFilterOptions{
		MinQuality:        20,
		QualityWindow:     3,
		MinLengthFraction: 0.75,
		MaxAmbiguous:      0,
	}
}

// QualityFilterResult names the two artifacts the filter writes.
type QualityFilterResult struct {
	FilteredSeqs *Ref
	FilterStats  *Ref
}

// QualityFilter applies the q-score filter to demultiplexed sequences,
// writing filtered_seqs.qza and filter_stats.qza into outputDir.
func (c *Client) QualityFilter(ctx context.Context, demux *Ref, outputDir string, opts QualityFilterOptions) (*QualityFilterResult, error) {
	path, err := demux.Resolve()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	filtered := filepath.Join(outputDir, "filtered_seqs.qza")
	stats := filepath.Join(outputDir, "filter_stats.qza")

	_, err = c.invoke(ctx, "quality-filter", "q-score",
		"--i-demux", path,
		"--p-min-quality", strconv.Itoa(opts.MinQuality),
		"--p-quality-window", strconv.Itoa(opts.QualityWindow),
		"--p-min-length-fraction", strconv.FormatFloat(opts.MinLengthFraction, 'g', -1, 64),
		"--p-max-ambiguous", strconv.Itoa(opts.MaxAmbiguous),
		"--o-filtered-sequences", filtered,
		"--o-filter-stats", stats,
	)
	if err != nil {
		return nil, err
	}

	return &QualityFilterResult{
		FilteredSeqs: NewRef(filtered),
		FilterStats:  NewRef(stats),
	}, nil
}
