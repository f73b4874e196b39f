package qiime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// taxonomicLevels maps positions in the sorted per-level export files to the
// rank names the summary CSVs are written under. Position -1 means the last
// (deepest) level present.
var taxonomicLevels = []struct {
	index int
	name  string
}{
	{1, "phylum"},
	{2, "class"},
	{3, "order"},
	{4, "family"},
	{5, "genus"},
	{-1, "species"},
}

// TaxonomyResult names everything the classification workflow writes.
type TaxonomyResult struct {
	Classification *Ref
	Barplot        string
	LevelCSVs      []string
}

// ClassifyTaxonomy assigns taxonomy to the representative sequences with the
// consensus vsearch classifier, renders the taxa barplot against the sample
// metadata, and writes one normalized (percent-per-sample) CSV per
// taxonomic rank into outputDir.
func (c *Client) ClassifyTaxonomy(ctx context.Context, table, repSeqs *Ref, ref *ReferenceDB, metadataPath string, threads int, outputDir string) (*TaxonomyResult, error) {
	tablePath, err := table.Resolve()
	if err != nil {
		return nil, err
	}
	seqsPath, err := repSeqs.Resolve()
	if err != nil {
		return nil, err
	}
	refSeqsPath, err := ref.Sequences.Resolve()
	if err != nil {
		return nil, err
	}
	refTaxaPath, err := ref.Taxonomy.Resolve()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	classification := filepath.Join(outputDir, "taxonomy.qza")
	if _, err := c.invoke(ctx, "feature-classifier", "classify-consensus-vsearch",
		"--i-query", seqsPath,
		"--i-reference-reads", refSeqsPath,
		"--i-reference-taxonomy", refTaxaPath,
		"--p-threads", strconv.Itoa(threads),
		"--o-classification", classification,
	); err != nil {
		return nil, err
	}

	barplot := filepath.Join(outputDir, "taxa_barplot.qzv")
	if _, err := c.invoke(ctx, "taxa", "barplot",
		"--i-table", tablePath,
		"--i-taxonomy", classification,
		"--m-metadata-file", metadataPath,
		"--o-visualization", barplot,
	); err != nil {
		return nil, err
	}

	levelCSVs, err := c.exportLevelCSVs(ctx, barplot, outputDir)
	if err != nil {
		return nil, err
	}

	return &TaxonomyResult{
		Classification: NewRef(classification),
		Barplot:        barplot,
		LevelCSVs:      levelCSVs,
	}, nil
}

// exportLevelCSVs unpacks the barplot's per-level abundance tables and
// rewrites the standard ranks as normalized CSVs named after the rank.
func (c *Client) exportLevelCSVs(ctx context.Context, barplot, outputDir string) ([]string, error) {
	tmp, err := os.MkdirTemp("", "ampliseq-taxa-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	if err := c.Export(ctx, NewRef(barplot), tmp); err != nil {
		return nil, err
	}

	levelFiles, err := filepath.Glob(filepath.Join(tmp, "level-*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(levelFiles)
	if len(levelFiles) == 0 {
		return nil, fmt.Errorf("barplot export produced no per-level tables")
	}

	var outputs []string
	for _, level := range taxonomicLevels {
		idx := level.index
		if idx == -1 {
			idx = len(levelFiles) - 1
		}
		if idx >= len(levelFiles) {
			continue
		}

		records, err := readDelimited(levelFiles[idx], ',')
		if err != nil {
			return nil, err
		}

		out := filepath.Join(outputDir, level.name+".csv")
		if err := writeCSV(out, normalizeLevel(records)); err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// normalizeLevel reshapes a per-level abundance table (rows are samples,
// columns are taxa plus trailing metadata) into taxa-by-sample percentages:
// transpose, drop the trailing non-abundance row, then scale each sample
// column to sum to 100.
func normalizeLevel(records [][]string) [][]string {
	if len(records) < 2 || len(records[0]) < 2 {
		return records
	}

	t := transpose(records)
	if len(t) > 2 {
		t = t[:len(t)-1]
	}

	cols := len(t[0])
	sums := make([]float64, cols)
	for _, row := range t[1:] {
		for j := 1; j < cols && j < len(row); j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				continue
			}
			sums[j] += v
		}
	}

	for _, row := range t[1:] {
		for j := 1; j < cols && j < len(row); j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil || sums[j] == 0 {
				continue
			}
			row[j] = strconv.FormatFloat(v/sums[j]*100, 'g', -1, 64)
		}
	}
	return t
}

func transpose(records [][]string) [][]string {
	rows, cols := len(records), len(records[0])
	out := make([][]string, cols)
	for j := range out {
		out[j] = make([]string, rows)
		for i := 0; i < rows; i++ {
			if j < len(records[i]) {
				out[j][i] = records[i][j]
			}
		}
	}
	return out
}
