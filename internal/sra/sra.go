// Package sra acquires raw sequencing runs from the NCBI Sequence Read
// Archive: it resolves accessions out of a sample table, prefetches each
// run's archive, decides whether the run is single- or paired-end, converts
// it to FASTQ accordingly, and removes the archive and its cache files so a
// large batch never accumulates .sra blobs on disk.
package sra

// Layout says whether a run produced one read file or a forward/reverse
// pair. It only steers which conversion flags are used and how many output
// files to expect; it is never persisted.
type Layout int

const (
	LayoutSingle Layout = iota
	LayoutPaired
)

func (l Layout) String() string {
	if l == LayoutPaired {
		return "paired-end"
	}
	return "single-end"
}

// archiveExt is the extension prefetch gives the downloaded blob.
const archiveExt = ".sra"
