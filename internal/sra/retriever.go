package sra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"ampliseq/internal/errs"
	"ampliseq/internal/shell"
)

// Retriever fetches one run's archive blob with prefetch.
type Retriever struct {
	Run      shell.Runner
	Prefetch string
	Log      *zap.Logger
}

// Fetch downloads the archive for accession under root and returns the blob
// path {root}/{accession}/{accession}.sra. It performs no retries; a failed
// or interrupted fetch is reported as a RetrievalError carrying the tool's
// diagnostics, and retrying is the caller's call.
func (r *Retriever) Fetch(ctx context.Context, accession, root string) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", &errs.RetrievalError{Accession: accession, Err: err}
	}

	r.Log.Info("fetching archive", zap.String("accession", accession))

	res, err := r.Run.Run(ctx, shell.Command{
		Name: r.Prefetch,
		Args: []string{accession, "-O", root},
	})
	if err != nil {
		return "", &errs.RetrievalError{Accession: accession, Output: res.Combined(), Err: err}
	}

	blob := filepath.Join(root, accession, accession+archiveExt)
	if _, err := os.Stat(blob); err != nil {
		return "", &errs.RetrievalError{
			Accession: accession,
			Output:    res.Combined(),
			Err:       fmt.Errorf("prefetch reported success but %s is missing", blob),
		}
	}

	return blob, nil
}
