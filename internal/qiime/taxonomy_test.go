package qiime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ampliseq/internal/shell"
)

func TestNormalizeLevel(t *testing.T) {
	// Rows are samples; the last column is metadata and must be dropped
	// after transposition. Each sample column is scaled to percentages.
	in := [][]string{
		{"index", "taxA", "taxB", "condition"},
		{"s1", "2", "2", "control"},
		{"s2", "1", "3", "treated"},
	}

	out := normalizeLevel(in)

	assert.Equal(t, [][]string{
		{"index", "s1", "s2"},
		{"taxA", "50", "25"},
		{"taxB", "50", "75"},
	}, out)
}

func TestNormalizeLevelZeroSumColumnLeftAlone(t *testing.T) {
	in := [][]string{
		{"index", "taxA", "condition"},
		{"s1", "0", "control"},
	}

	out := normalizeLevel(in)
	assert.Equal(t, "0", out[1][1])
}

func TestNormalizeLevelTooSmallPassesThrough(t *testing.T) {
	in := [][]string{{"index"}}
	assert.Equal(t, in, normalizeLevel(in))
}

func TestClassifyTaxonomy(t *testing.T) {
	levelCSV := "index,taxA,taxB,condition\ns1,2,2,control\ns2,1,3,treated\n"

	run := &fakeRunner{handle: func(cmd shell.Command) (shell.Result, error) {
		switch cmd.Args[1] {
		case "classify-consensus-vsearch":
			touchFlag(t, cmd.Args, "--o-classification")
		case "barplot":
			touchFlag(t, cmd.Args, "--o-visualization")
		case "export":
			dir := argValue(cmd.Args, "--output-path")
			for i := 1; i <= 7; i++ {
				name := filepath.Join(dir, fmt.Sprintf("level-%d.csv", i))
				require.NoError(t, os.WriteFile(name, []byte(levelCSV), 0o644))
			}
		}
		return shell.Result{}, nil
	}}
	c := newTestClient(run)

	table := touchRef(t, "table.qza")
	repSeqs := touchRef(t, "rep-seqs.qza")
	db := &ReferenceDB{
		Sequences: touchRef(t, "reference_sequences.qza"),
		Taxonomy:  touchRef(t, "reference_taxonomy.qza"),
	}
	outDir := filepath.Join(t.TempDir(), "taxonomy")

	res, err := c.ClassifyTaxonomy(context.Background(), table, repSeqs, db, "metadata.tsv", 2, outDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "taxonomy.qza"), res.Classification.Path())
	assert.Equal(t, filepath.Join(outDir, "taxa_barplot.qzv"), res.Barplot)

	wantLevels := []string{"phylum", "class", "order", "family", "genus", "species"}
	require.Len(t, res.LevelCSVs, len(wantLevels))
	for i, name := range wantLevels {
		assert.Equal(t, filepath.Join(outDir, name+".csv"), res.LevelCSVs[i])
		assert.FileExists(t, res.LevelCSVs[i])
	}

	// The classifier call carries the requested thread count and the barplot
	// gets the metadata file.
	classify := run.calls[0].Args
	assert.Equal(t, "2", argValue(classify, "--p-threads"))
	barplot := run.calls[1].Args
	assert.Equal(t, "metadata.tsv", argValue(barplot, "--m-metadata-file"))
}
