package sra

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ampliseq/internal/shell"
)

// Classifier decides whether an archive blob holds single- or paired-end
// reads. The decision is an ordered fallback: sra-stat metadata first, then a
// fasterq-dump dry run, and finally a single-end default with a warning.
// Classification never fails; the single-end default is the safe direction
// because the paired path demands two output files.
type Classifier struct {
	Run         shell.Runner
	SraStat     string
	FasterqDump string
	Log         *zap.Logger
}

// Classify inspects the blob and returns its read layout.
func (c *Classifier) Classify(ctx context.Context, blob string) Layout {
	if layout, ok := c.fromMetadata(ctx, blob); ok {
		return layout
	}
	if layout, ok := c.fromDryRun(ctx, blob); ok {
		return layout
	}

	c.Log.Warn("read layout undetermined, assuming single-end",
		zap.String("archive", blob))
	return LayoutSingle
}

// fromMetadata asks sra-stat for the run's structure. A second biological
// read shows up in the XML as read="2" (or an R2 tag in some archive
// versions). A tool failure defers to the dry-run fallback rather than
// concluding single-end.
func (c *Classifier) fromMetadata(ctx context.Context, blob string) (Layout, bool) {
	res, err := c.Run.Run(ctx, shell.Command{
		Name: c.SraStat,
		Args: []string{"--quick", "--xml", blob},
	})
	if err != nil {
		return LayoutSingle, false
	}
	if strings.Contains(res.Stdout, `read="2"`) || mentionsSecondRead(res.Stdout) {
		return LayoutPaired, true
	}
	return LayoutSingle, true
}

// mentionsSecondRead looks for R2 as a standalone token. The XML embeds the
// run accession, so a bare substring match would flip every SRR2* run to
// paired.
func mentionsSecondRead(out string) bool {
	for i := 0; ; {
		j := strings.Index(out[i:], "R2")
		if j < 0 {
			return false
		}
		j += i
		before := j == 0 || !isWordByte(out[j-1])
		after := j+2 == len(out) || !isWordByte(out[j+2])
		if before && after {
			return true
		}
		i = j + 2
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

// fromDryRun runs the converter without writing anything and watches for it
// announcing split output files on either stream.
func (c *Classifier) fromDryRun(ctx context.Context, blob string) (Layout, bool) {
	res, err := c.Run.Run(ctx, shell.Command{
		Name: c.FasterqDump,
		Args: []string{"--split-3", "--dry-run", blob},
	})
	if err != nil {
		return LayoutSingle, false
	}
	out := res.Combined()
	if strings.Contains(out, "_1.fastq") && strings.Contains(out, "_2.fastq") {
		return LayoutPaired, true
	}
	return LayoutSingle, true
}
