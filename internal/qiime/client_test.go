package qiime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ampliseq/internal/config"
	"ampliseq/internal/shell"
)

// fakeRunner records every invocation and delegates to a per-test handler.
type fakeRunner struct {
	handle func(cmd shell.Command) (shell.Result, error)
	calls  []shell.Command
}

func (f *fakeRunner) Run(_ context.Context, cmd shell.Command) (shell.Result, error) {
	f.calls = append(f.calls, cmd)
	if f.handle == nil {
		return shell.Result{}, nil
	}
	return f.handle(cmd)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func newTestClient(run shell.Runner) *Client {
	return NewClient(config.Default(), run, zap.NewNop())
}

func argValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// touchFlag creates an empty file at the path a flag points to, simulating
// the framework writing its output artifact.
func touchFlag(t *testing.T, args []string, flag string) {
	t.Helper()
	path := argValue(args, flag)
	require.NotEmpty(t, path, flag)
	require.NoError(t, os.WriteFile(path, []byte("artifact"), 0o644))
}

// touchRef creates a file for an input artifact so Resolve succeeds.
func touchRef(t *testing.T, name string) *Ref {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("artifact"), 0o644))
	return NewRef(path)
}

func TestInvokeErrorCarriesDiagnostics(t *testing.T) {
	run := &fakeRunner{handle: func(cmd shell.Command) (shell.Result, error) {
		return shell.Result{Stderr: "Plugin error from deblur: trim length too long"},
			fmt.Errorf("qiime exited with status 1")
	}}
	c := newTestClient(run)

	demux := touchRef(t, "demux.qza")
	_, err := c.DenoiseDeblur(context.Background(), demux, t.TempDir(), DeblurOptionsFrom(config.Default()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "qiime deblur")
	assert.Contains(t, err.Error(), "Plugin error from deblur")
}

func TestImportSequencesPaired(t *testing.T) {
	run := &fakeRunner{}
	c := newTestClient(run)
	outDir := filepath.Join(t.TempDir(), "qiime2")

	ref, err := c.ImportSequences(context.Background(), "fasta_manifest.csv", outDir, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "paired_end_demux.qza"), ref.Path())

	require.Len(t, run.calls, 1)
	args := run.calls[0].Args
	assert.Equal(t, "SampleData[PairedEndSequencesWithQuality]", argValue(args, "--type"))
	assert.Equal(t, "PairedEndFastqManifestPhred33", argValue(args, "--input-format"))
}

func TestImportSequencesSingle(t *testing.T) {
	run := &fakeRunner{}
	c := newTestClient(run)
	outDir := filepath.Join(t.TempDir(), "qiime2")

	ref, err := c.ImportSequences(context.Background(), "fasta_manifest.csv", outDir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "single_end_demux.qza"), ref.Path())

	args := run.calls[0].Args
	assert.Equal(t, "SampleData[SequencesWithQuality]", argValue(args, "--type"))
	assert.Equal(t, "SingleEndFastqManifestPhred33V2", argValue(args, "--input-format"))
}

func TestImportReferenceDB(t *testing.T) {
	run := &fakeRunner{}
	c := newTestClient(run)
	outDir := filepath.Join(t.TempDir(), "refdb")

	db, err := c.ImportReferenceDB(context.Background(), "seqs.fasta", "taxa.tsv", outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "reference_sequences.qza"), db.Sequences.Path())
	assert.Equal(t, filepath.Join(outDir, "reference_taxonomy.qza"), db.Taxonomy.Path())

	require.Len(t, run.calls, 2)
	// The FASTA import relies on format inference; only the taxonomy TSV
	// declares an explicit input format.
	assert.Empty(t, argValue(run.calls[0].Args, "--input-format"))
	assert.Equal(t, "HeaderlessTSVTaxonomyFormat", argValue(run.calls[1].Args, "--input-format"))
}
