// Package manifest builds and reads the FASTQ manifest the framework import
// operation consumes: one row per read file with the sample id, the absolute
// file path, and the read direction.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// Row is one manifest entry. Column names follow the framework's manifest
// convention.
type Row struct {
	SampleID  string `csv:"sample-id"`
	FilePath  string `csv:"absolute-filepath"`
	Direction string `csv:"direction"`
}

// Filename tokens that mark a read file as forward or reverse. Checked in
// order; used only for manifest construction, never for archive layout
// classification (the acquisition pipeline decides that from tool output).
var (
	forwardTokens = []string{"_1", "_R1", "_R1_", ".1.", "_forward", "_F", "R1"}
	reverseTokens = []string{"_2", "_R2", "_R2_", ".2.", "_reverse", "_R", "R2"}
)

// Build scans inputDir for per-sample subdirectories holding FASTQ files and
// assembles the manifest rows. A directory with one FASTQ yields a forward
// row; with two, the forward/reverse pair is identified by filename tokens
// (lexicographic order as fallback); any other count is skipped with a
// warning.
func Build(inputDir string, log *zap.Logger) ([]Row, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var rows []Row
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sampleID := entry.Name()
		dir := filepath.Join(inputDir, sampleID)

		fastqs, err := listFastqs(dir)
		if err != nil {
			return nil, err
		}

		switch len(fastqs) {
		case 0:
			log.Warn("no FASTQ files in sample directory", zap.String("sample", sampleID))
		case 1:
			rows = append(rows, forwardRow(sampleID, fastqs[0]))
		case 2:
			fwd, rev, err := identifyReads(fastqs)
			if err != nil {
				sort.Strings(fastqs)
				fwd, rev = fastqs[0], fastqs[1]
				log.Info("no read-direction tokens, using lexicographic order",
					zap.String("sample", sampleID),
					zap.String("forward", filepath.Base(fwd)),
					zap.String("reverse", filepath.Base(rev)))
			}
			rows = append(rows,
				forwardRow(sampleID, fwd),
				Row{SampleID: sampleID, FilePath: mustAbs(rev), Direction: "reverse"})
		default:
			log.Warn("unexpected number of FASTQ files, skipping sample",
				zap.String("sample", sampleID), zap.Int("count", len(fastqs)))
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no usable FASTQ files found under %s", inputDir)
	}
	return rows, nil
}

func listFastqs(dir string) ([]string, error) {
	var fastqs []string
	for _, pattern := range []string{"*.fastq", "*.fastq.gz"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		fastqs = append(fastqs, matches...)
	}
	return fastqs, nil
}

func forwardRow(sampleID, path string) Row {
	return Row{SampleID: sampleID, FilePath: mustAbs(path), Direction: "forward"}
}

func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// identifyReads assigns the forward and reverse file of a two-file pair by
// filename tokens. It fails when the tokens do not identify exactly one of
// each, leaving the fallback to the caller.
func identifyReads(fastqs []string) (forward, reverse string, err error) {
	var fwd, rev []string
	for _, path := range fastqs {
		name := filepath.Base(path)
		switch {
		case containsAny(name, forwardTokens):
			fwd = append(fwd, path)
		case containsAny(name, reverseTokens):
			rev = append(rev, path)
		}
	}
	if len(fwd) == 1 && len(rev) == 1 {
		return fwd[0], rev[0], nil
	}
	return "", "", fmt.Errorf("could not identify forward/reverse pair among %v", fastqs)
}

func containsAny(name string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

// Write saves the manifest as CSV.
func Write(rows []Row, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

// Read loads a manifest CSV.
func Read(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var rows []Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, pfx.Err(err)
	}
	return rows, nil
}

// IsPaired reports whether any manifest row carries a reverse read.
func IsPaired(rows []Row) bool {
	for _, row := range rows {
		if row.Direction == "reverse" {
			return true
		}
	}
	return false
}

// Samples returns the distinct sample ids in manifest order.
func Samples(rows []Row) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, row := range rows {
		if !seen[row.SampleID] {
			seen[row.SampleID] = true
			ids = append(ids, row.SampleID)
		}
	}
	return ids
}
