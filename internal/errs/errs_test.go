package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigf(t *testing.T) {
	err := Configf("no column named %q", "run")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, `configuration: no column named "run"`, err.Error())
}

func TestRetrievalErrorSurfacesToolOutput(t *testing.T) {
	cause := errors.New("prefetch exited with status 3")
	err := &RetrievalError{
		Accession: "SRR000001",
		Output:    "err: no network connection",
		Err:       cause,
	}

	assert.Contains(t, err.Error(), "SRR000001")
	assert.Contains(t, err.Error(), "no network connection")
	assert.ErrorIs(t, err, cause)
}

func TestConversionErrorWithoutOutput(t *testing.T) {
	cause := fmt.Errorf("expected 2 paired-end FASTQ file(s), found 1")
	err := &ConversionError{Accession: "SRR000004", Err: cause}

	assert.Equal(t, "converting SRR000004: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)

	var convErr *ConversionError
	require.True(t, errors.As(fmt.Errorf("sample failed: %w", err), &convErr))
	assert.Equal(t, "SRR000004", convErr.Accession)
}
