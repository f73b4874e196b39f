package qiime

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDemux(t *testing.T) {
	run := &fakeRunner{}
	c := newTestClient(run)
	demux := touchRef(t, "demux.qza")
	outDir := filepath.Join(t.TempDir(), "qc")

	viz, err := c.SummarizeDemux(context.Background(), demux, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "quality_viz.qzv"), viz)

	args := run.calls[0].Args
	assert.Equal(t, []string{"demux", "summarize"}, args[:2])
}

func TestQualityFilterDefaults(t *testing.T) {
	run := &fakeRunner{}
	c := newTestClient(run)
	demux := touchRef(t, "demux.qza")
	outDir := filepath.Join(t.TempDir(), "qc")

	res, err := c.QualityFilter(context.Background(), demux, outDir, DefaultQualityFilterOptions())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "filtered_seqs.qza"), res.FilteredSeqs.Path())
	assert.Equal(t, filepath.Join(outDir, "filter_stats.qza"), res.FilterStats.Path())

	args := run.calls[0].Args
	assert.Equal(t, []string{"quality-filter", "q-score"}, args[:2])
	assert.Equal(t, "20", argValue(args, "--p-min-quality"))
	assert.Equal(t, "3", argValue(args, "--p-quality-window"))
	assert.Equal(t, "0.75", argValue(args, "--p-min-length-fraction"))
	assert.Equal(t, "0", argValue(args, "--p-max-ambiguous"))
}

func TestFilterFeatures(t *testing.T) {
	run := &fakeRunner{}
	c := newTestClient(run)
	table := touchRef(t, "table.qza")
	outDir := filepath.Join(t.TempDir(), "filtered")

	ref, err := c.FilterFeatures(context.Background(), table, outDir, FilterFeaturesOptions{MinFrequency: 10, MinSamples: 2})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "filtered_table.qza"), ref.Path())

	args := run.calls[0].Args
	assert.Equal(t, "10", argValue(args, "--p-min-frequency"))
	assert.Equal(t, "2", argValue(args, "--p-min-samples"))
}

func TestBuildPhylogenyAutoThreads(t *testing.T) {
	run := &fakeRunner{}
	c := newTestClient(run)
	repSeqs := touchRef(t, "rep-seqs.qza")
	outDir := filepath.Join(t.TempDir(), "phylogeny")

	res, err := c.BuildPhylogeny(context.Background(), repSeqs, outDir, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "unrooted_tree.qza"), res.UnrootedTree.Path())
	assert.Equal(t, filepath.Join(outDir, "rooted_tree.qza"), res.RootedTree.Path())

	args := run.calls[0].Args
	assert.Equal(t, "auto", argValue(args, "--p-n-threads"))
}

func TestBuildPhylogenyExplicitThreads(t *testing.T) {
	run := &fakeRunner{}
	c := newTestClient(run)
	repSeqs := touchRef(t, "rep-seqs.qza")

	_, err := c.BuildPhylogeny(context.Background(), repSeqs, t.TempDir(), 8)
	require.NoError(t, err)
	assert.Equal(t, "8", argValue(run.calls[0].Args, "--p-n-threads"))
}
