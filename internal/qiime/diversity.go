package qiime

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"ampliseq/internal/errs"
)

// treeDependentMetric reports whether a diversity metric needs the rooted
// phylogeny. Requesting one without a tree is a configuration error, not a
// per-metric skip: the user asked for something the invocation cannot do.
func treeDependentMetric(metric string) bool {
	return metric == "faith_pd" || strings.Contains(metric, "unifrac")
}

// AlphaDiversity computes each requested within-sample diversity metric and
// exports it as {outputDir}/{metric}.csv. rootedTree may be nil unless a
// tree-dependent metric (faith_pd) is requested.
func (c *Client) AlphaDiversity(ctx context.Context, table *Ref, metrics []string, rootedTree *Ref, outputDir string) ([]string, error) {
	tablePath, err := table.Resolve()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	var outputs []string
	for _, metric := range metrics {
		tmp, err := os.MkdirTemp("", "ampliseq-alpha-")
		if err != nil {
			return nil, err
		}

		art, err := c.alphaOne(ctx, tablePath, metric, rootedTree, filepath.Join(tmp, metric+".qza"))
		if err != nil {
			os.RemoveAll(tmp)
			return nil, err
		}

		csvPath := filepath.Join(outputDir, metric+".csv")
		err = c.exportTabular(ctx, art, csvPath)
		os.RemoveAll(tmp)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, csvPath)
	}
	return outputs, nil
}

func (c *Client) alphaOne(ctx context.Context, tablePath, metric string, rootedTree *Ref, out string) (*Ref, error) {
	if treeDependentMetric(metric) {
		if rootedTree == nil {
			return nil, errs.Configf("metric %q requires a rooted phylogenetic tree (--rooted-tree)", metric)
		}
		treePath, err := rootedTree.Resolve()
		if err != nil {
			return nil, err
		}
		if _, err := c.invoke(ctx, "diversity", "alpha-phylogenetic",
			"--i-table", tablePath,
			"--i-phylogeny", treePath,
			"--p-metric", metric,
			"--o-alpha-diversity", out,
		); err != nil {
			return nil, err
		}
		return NewRef(out), nil
	}

	if _, err := c.invoke(ctx, "diversity", "alpha",
		"--i-table", tablePath,
		"--p-metric", metric,
		"--o-alpha-diversity", out,
	); err != nil {
		return nil, err
	}
	return NewRef(out), nil
}

// BetaDiversity computes each requested between-sample distance matrix,
// saving {metric}_distance_matrix.qza and exporting
// {metric}_distance_matrix.csv. Phylogenetic metrics (the unifrac family)
// need rootedTree.
func (c *Client) BetaDiversity(ctx context.Context, table *Ref, metrics []string, rootedTree *Ref, outputDir string) ([]string, error) {
	tablePath, err := table.Resolve()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	var outputs []string
	for _, metric := range metrics {
		matrix := filepath.Join(outputDir, metric+"_distance_matrix.qza")

		if treeDependentMetric(metric) {
			if rootedTree == nil {
				return nil, errs.Configf("metric %q requires a rooted phylogenetic tree (--rooted-tree)", metric)
			}
			treePath, err := rootedTree.Resolve()
			if err != nil {
				return nil, err
			}
			if _, err := c.invoke(ctx, "diversity", "beta-phylogenetic",
				"--i-table", tablePath,
				"--i-phylogeny", treePath,
				"--p-metric", metric,
				"--o-distance-matrix", matrix,
			); err != nil {
				return nil, err
			}
		} else {
			if _, err := c.invoke(ctx, "diversity", "beta",
				"--i-table", tablePath,
				"--p-metric", metric,
				"--o-distance-matrix", matrix,
			); err != nil {
				return nil, err
			}
		}

		csvPath := filepath.Join(outputDir, metric+"_distance_matrix.csv")
		if err := c.exportTabular(ctx, NewRef(matrix), csvPath); err != nil {
			return nil, err
		}
		outputs = append(outputs, csvPath)
	}
	return outputs, nil
}
