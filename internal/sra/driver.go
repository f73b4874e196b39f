package sra

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ampliseq/internal/config"
	"ampliseq/internal/errs"
	"ampliseq/internal/shell"
)

// Stage names the step of the per-sample state machine a failure happened
// in. A sample runs pending → retrieved → classified → converted → cleaned,
// or drops to failed at whichever stage broke.
type Stage string

const (
	StageRetrieve Stage = "retrieve"
	StageConvert  Stage = "convert"
)

// Failure records one accession that could not be processed.
type Failure struct {
	Accession string
	Stage     Stage
	Err       error
}

// Summary is the end-of-batch report.
type Summary struct {
	Cleaned  int
	Skipped  int
	Failures []Failure
}

// Failed returns the number of failed accessions.
func (s Summary) Failed() int { return len(s.Failures) }

// String renders the one-line batch report, naming failed accessions.
func (s Summary) String() string {
	line := fmt.Sprintf("%d cleaned, %d failed", s.Cleaned, s.Failed())
	if s.Skipped > 0 {
		line += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	if len(s.Failures) > 0 {
		names := make([]string, 0, len(s.Failures))
		for _, f := range s.Failures {
			names = append(names, f.Accession)
		}
		line += " (failed: " + strings.Join(names, ", ") + ")"
	}
	return line
}

// Driver runs the acquisition pipeline over a batch of accessions, one
// sample at a time. Each sample owns an isolated subdirectory of OutputRoot,
// so there is no shared mutable state and no concurrency. A failed sample is
// recorded and the batch continues; only cancellation between samples stops
// the run early (never mid-sample, since a partially executed external tool
// cannot be interrupted without risking a corrupt blob).
type Driver struct {
	OutputRoot string

	// SkipExisting skips accessions whose directory already holds FASTQ
	// output and no leftover archive blob. Off by default: a plain rerun
	// re-fetches everything.
	SkipExisting bool

	retriever  *Retriever
	classifier *Classifier
	converter  *Converter
	log        *zap.Logger
}

// NewDriver wires the pipeline against the given runner and tool
// configuration.
func NewDriver(cfg *config.Config, run shell.Runner, outputRoot string, log *zap.Logger) *Driver {
	return &Driver{
		OutputRoot: outputRoot,
		retriever: &Retriever{
			Run:      run,
			Prefetch: cfg.Tools.Prefetch,
			Log:      log,
		},
		classifier: &Classifier{
			Run:         run,
			SraStat:     cfg.Tools.SraStat,
			FasterqDump: cfg.Tools.FasterqDump,
			Log:         log,
		},
		converter: &Converter{
			Run:         run,
			FasterqDump: cfg.Tools.FasterqDump,
			Threads:     cfg.Execute.Threads,
			Log:         log,
		},
		log: log,
	}
}

// Run processes the batch sequentially and returns the summary. The context
// is checked between samples; mid-sample the only interruption is the
// per-invocation deadline of the runner.
func (d *Driver) Run(ctx context.Context, accessions []string) Summary {
	var sum Summary

	d.log.Info("starting batch", zap.Int("samples", len(accessions)))

	for _, acc := range accessions {
		if ctx.Err() != nil {
			d.log.Warn("batch cancelled", zap.Int("remaining", len(accessions)-sum.Cleaned-sum.Skipped-sum.Failed()))
			break
		}

		if d.SkipExisting && d.hasCompleteOutput(acc) {
			d.log.Info("output already present, skipping", zap.String("accession", acc))
			sum.Skipped++
			continue
		}

		if err := d.processOne(ctx, acc); err != nil {
			stage := stageOf(err)
			d.log.Error("sample failed",
				zap.String("accession", acc),
				zap.String("stage", string(stage)),
				zap.Error(err))
			sum.Failures = append(sum.Failures, Failure{Accession: acc, Stage: stage, Err: err})
			continue
		}

		sum.Cleaned++
		d.log.Info("sample complete", zap.String("accession", acc))
	}

	d.log.Info("batch finished", zap.String("summary", sum.String()))
	return sum
}

// processOne walks a single accession through retrieve, classify, convert,
// and cleanup. Cleanup is deferred so it runs whether conversion succeeded
// or not.
func (d *Driver) processOne(ctx context.Context, accession string) error {
	blob, err := d.retriever.Fetch(ctx, accession, d.OutputRoot)
	if err != nil {
		return err
	}

	dir := filepath.Dir(blob)
	defer cleanupArchive(dir, d.log)

	layout := d.classifier.Classify(ctx, blob)
	d.log.Info("classified run",
		zap.String("accession", accession),
		zap.Stringer("layout", layout))

	return d.converter.Convert(ctx, blob, dir, accession, layout)
}

func stageOf(err error) Stage {
	var retr *errs.RetrievalError
	if errors.As(err, &retr) {
		return StageRetrieve
	}
	return StageConvert
}

// hasCompleteOutput reports whether the accession directory already holds at
// least one FASTQ file and no leftover archive blob.
func (d *Driver) hasCompleteOutput(accession string) bool {
	dir := filepath.Join(d.OutputRoot, accession)
	fastqs, _ := filepath.Glob(filepath.Join(dir, "*.fastq"))
	blobs, _ := filepath.Glob(filepath.Join(dir, "*"+archiveExt))
	return len(fastqs) > 0 && len(blobs) == 0
}
