package qiime

import (
	"context"
	"path/filepath"
	"strconv"
)

// FilterFeaturesOptions set the floors below which features are dropped from
// a frequency table. Zero means no floor for that dimension.
type FilterFeaturesOptions struct {
	MinFrequency int
	MinSamples   int
}

// FilterFeatures drops low-abundance features from a table, writing
// filtered_table.qza into outputDir.
func (c *Client) FilterFeatures(ctx context.Context, table *Ref, outputDir string, opts FilterFeaturesOptions) (*Ref, error) {
	tablePath, err := table.Resolve()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	out := filepath.Join(outputDir, "filtered_table.qza")
	_, err = c.invoke(ctx, "feature-table", "filter-features",
		"--i-table", tablePath,
		"--p-min-frequency", strconv.Itoa(opts.MinFrequency),
		"--p-min-samples", strconv.Itoa(opts.MinSamples),
		"--o-filtered-table", out,
	)
	if err != nil {
		return nil, err
	}
	return NewRef(out), nil
}
