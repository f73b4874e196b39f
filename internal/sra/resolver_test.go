package sra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ampliseq/internal/errs"
)

func writeTable(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestResolveAccessionsHeuristicColumn(t *testing.T) {
	path := writeTable(t, "samples.csv",
		"sample_name,run_accession,condition\n"+
			"s1,SRR000001,control\n"+
			"s2,SRR000003,treated\n")

	accs, err := ResolveAccessions(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR000001", "SRR000003"}, accs)
}

func TestResolveAccessionsFirstMatchingColumnWins(t *testing.T) {
	// Both headers qualify; column order decides, so resolution is
	// deterministic across runs.
	path := writeTable(t, "samples.csv",
		"sra_id,old_accession\n"+
			"SRR000001,SRR999999\n")

	accs, err := ResolveAccessions(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR000001"}, accs)
}

func TestResolveAccessionsExplicitColumn(t *testing.T) {
	path := writeTable(t, "samples.csv",
		"id,Archive_ID\n"+
			"s1,SRR000001\n")

	accs, err := ResolveAccessions(path, "archive_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR000001"}, accs)

	_, err = ResolveAccessions(path, "nonexistent")
	var cfgErr *errs.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestResolveAccessionsNoQualifyingColumn(t *testing.T) {
	path := writeTable(t, "samples.csv",
		"sample_name,condition\n"+
			"s1,control\n")

	_, err := ResolveAccessions(path, "")
	var cfgErr *errs.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "no accession column")
}

func TestResolveAccessionsDedupeAndSkipEmpty(t *testing.T) {
	path := writeTable(t, "samples.csv",
		"run\n"+
			"SRR000001\n"+
			"\n"+
			"SRR000003\n"+
			"SRR000001\n")

	accs, err := ResolveAccessions(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR000001", "SRR000003"}, accs)
}

func TestResolveAccessionsTabDelimited(t *testing.T) {
	path := writeTable(t, "samples.tsv",
		"sample_name\trun_accession\tcondition\n"+
			"s1\tSRR000001\tcontrol\n"+
			"s2\tSRR000003\ttreated\n")

	accs, err := ResolveAccessions(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR000001", "SRR000003"}, accs)
}

func TestResolveAccessionsMissingFile(t *testing.T) {
	_, err := ResolveAccessions(filepath.Join(t.TempDir(), "nope.csv"), "")
	require.Error(t, err)
}
