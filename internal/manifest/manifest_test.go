package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSample(t *testing.T, root, sample string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, sample)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("@read\n"), 0o644))
	}
}

func TestBuildSingleEnd(t *testing.T) {
	root := t.TempDir()
	writeSample(t, root, "SRR000001", "SRR000001.fastq")

	rows, err := Build(root, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "SRR000001", rows[0].SampleID)
	assert.Equal(t, "forward", rows[0].Direction)
	assert.True(t, filepath.IsAbs(rows[0].FilePath))
}

func TestBuildPairedByTokens(t *testing.T) {
	root := t.TempDir()
	writeSample(t, root, "SRR000001", "SRR000001_2.fastq", "SRR000001_1.fastq")

	rows, err := Build(root, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "forward", rows[0].Direction)
	assert.Contains(t, rows[0].FilePath, "_1.fastq")
	assert.Equal(t, "reverse", rows[1].Direction)
	assert.Contains(t, rows[1].FilePath, "_2.fastq")
}

func TestBuildPairedLexicographicFallback(t *testing.T) {
	// Neither name carries a direction token, so sorted order decides.
	root := t.TempDir()
	writeSample(t, root, "sampleX", "b.fastq", "a.fastq")

	rows, err := Build(root, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Contains(t, rows[0].FilePath, "a.fastq")
	assert.Equal(t, "forward", rows[0].Direction)
	assert.Contains(t, rows[1].FilePath, "b.fastq")
	assert.Equal(t, "reverse", rows[1].Direction)
}

func TestBuildSkipsOddFileCounts(t *testing.T) {
	root := t.TempDir()
	writeSample(t, root, "broken", "x_1.fastq", "x_2.fastq", "x_3.fastq")
	writeSample(t, root, "good", "good.fastq")

	rows, err := Build(root, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "good", rows[0].SampleID)
}

func TestBuildAcceptsGzippedFastq(t *testing.T) {
	root := t.TempDir()
	writeSample(t, root, "SRR000001", "SRR000001.fastq.gz")

	rows, err := Build(root, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestBuildEmptyInputDir(t *testing.T) {
	_, err := Build(t.TempDir(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable FASTQ files")
}

func TestWriteReadRoundTrip(t *testing.T) {
	rows := []Row{
		{SampleID: "s1", FilePath: "/data/raw/s1/s1_1.fastq", Direction: "forward"},
		{SampleID: "s1", FilePath: "/data/raw/s1/s1_2.fastq", Direction: "reverse"},
	}
	path := filepath.Join(t.TempDir(), "fasta_manifest.csv")

	require.NoError(t, Write(rows, path))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "sample-id,absolute-filepath,direction")
}

func TestIsPaired(t *testing.T) {
	single := []Row{{SampleID: "s1", Direction: "forward"}}
	paired := append(single, Row{SampleID: "s1", Direction: "reverse"})

	assert.False(t, IsPaired(single))
	assert.True(t, IsPaired(paired))
}

func TestSamples(t *testing.T) {
	rows := []Row{
		{SampleID: "s1", Direction: "forward"},
		{SampleID: "s1", Direction: "reverse"},
		{SampleID: "s2", Direction: "forward"},
	}
	assert.Equal(t, []string{"s1", "s2"}, Samples(rows))
}
