package sra

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"ampliseq/internal/errs"
	"ampliseq/internal/shell"
)

// Converter turns an archive blob into the per-sample FASTQ file set with
// fasterq-dump, dispatching on the classified layout.
type Converter struct {
	Run         shell.Runner
	FasterqDump string
	Threads     int
	Log         *zap.Logger
}

// Convert writes the FASTQ file(s) for accession into outDir. Single-end
// runs skip technical reads and must yield exactly one file; paired-end runs
// are split and must yield exactly two. Any shortfall is a ConversionError
// for this sample only.
func (c *Converter) Convert(ctx context.Context, blob, outDir, accession string, layout Layout) error {
	mode := "--skip-technical"
	want := 1
	if layout == LayoutPaired {
		mode = "--split-files"
		want = 2
	}

	c.Log.Info("converting archive",
		zap.String("accession", accession),
		zap.Stringer("layout", layout))

	res, err := c.Run.Run(ctx, shell.Command{
		Name: c.FasterqDump,
		Args: []string{blob, "--outdir", outDir, mode, "--threads", strconv.Itoa(c.threads())},
	})
	if err != nil {
		return &errs.ConversionError{Accession: accession, Output: res.Combined(), Err: err}
	}

	fastqs, err := filepath.Glob(filepath.Join(outDir, "*.fastq"))
	if err != nil {
		return &errs.ConversionError{Accession: accession, Err: err}
	}
	if len(fastqs) != want {
		return &errs.ConversionError{
			Accession: accession,
			Output:    res.Combined(),
			Err:       fmt.Errorf("expected %d %s FASTQ file(s), found %d", want, layout, len(fastqs)),
		}
	}

	return nil
}

func (c *Converter) threads() int {
	if c.Threads <= 0 {
		return 2
	}
	return c.Threads
}
