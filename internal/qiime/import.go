package qiime

import (
	"context"
	"path/filepath"
)

// Semantic types and view formats used by the import operations. Note the
// manifest formats are a mixed pair: Phred33 for paired manifests, Phred33V2
// for single-end ones.
const (
	typePairedSeqs = "SampleData[PairedEndSequencesWithQuality]"
	typeSingleSeqs = "SampleData[SequencesWithQuality]"
	typeRefSeqs    = "FeatureData[Sequence]"
	typeRefTaxa    = "FeatureData[Taxonomy]"
	typeFreqTable  = "FeatureTable[Frequency]"

	formatPairedManifest = "PairedEndFastqManifestPhred33"
	formatSingleManifest = "SingleEndFastqManifestPhred33V2"
	formatHeaderlessTSV  = "HeaderlessTSVTaxonomyFormat"
	formatBIOMV210       = "BIOMV210Format"
)

// ImportSequences imports a FASTQ manifest into a demultiplexed sequence
// artifact. Paired selects the paired-end semantic type and manifest format;
// the output file name mirrors that choice so downstream commands can tell
// at a glance what they were given.
func (c *Client) ImportSequences(ctx context.Context, manifestPath, outputDir string, paired bool) (*Ref, error) {
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	semType, format, name := typeSingleSeqs, formatSingleManifest, "single_end_demux.qza"
	if paired {
		semType, format, name = typePairedSeqs, formatPairedManifest, "paired_end_demux.qza"
	}
	out := filepath.Join(outputDir, name)

	_, err := c.invoke(ctx, "tools", "import",
		"--type", semType,
		"--input-path", manifestPath,
		"--input-format", format,
		"--output-path", out,
	)
	if err != nil {
		return nil, err
	}
	return NewRef(out), nil
}

// ReferenceDB is the pair of artifacts a taxonomy classification needs.
type ReferenceDB struct {
	Sequences *Ref
	Taxonomy  *Ref
}

// ImportReferenceDB imports a reference database given as a FASTA sequence
// file and a headerless two-column taxonomy TSV.
func (c *Client) ImportReferenceDB(ctx context.Context, seqsPath, taxaPath, outputDir string) (*ReferenceDB, error) {
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	seqOut := filepath.Join(outputDir, "reference_sequences.qza")
	if _, err := c.invoke(ctx, "tools", "import",
		"--type", typeRefSeqs,
		"--input-path", seqsPath,
		"--output-path", seqOut,
	); err != nil {
		return nil, err
	}

	taxaOut := filepath.Join(outputDir, "reference_taxonomy.qza")
	if _, err := c.invoke(ctx, "tools", "import",
		"--type", typeRefTaxa,
		"--input-path", taxaPath,
		"--input-format", formatHeaderlessTSV,
		"--output-path", taxaOut,
	); err != nil {
		return nil, err
	}

	return &ReferenceDB{Sequences: NewRef(seqOut), Taxonomy: NewRef(taxaOut)}, nil
}

// ImportBIOMTable imports a BIOM feature table (as produced by the pathway
// inference tool) into a frequency-table artifact at outPath.
func (c *Client) ImportBIOMTable(ctx context.Context, biomPath, outPath string) (*Ref, error) {
	_, err := c.invoke(ctx, "tools", "import",
		"--type", typeFreqTable,
		"--input-path", biomPath,
		"--input-format", formatBIOMV210,
		"--output-path", outPath,
	)
	if err != nil {
		return nil, err
	}
	return NewRef(outPath), nil
}

// Export unpacks an artifact's data files into dir. The framework writes one
// or more flat files there, typically tab-separated.
func (c *Client) Export(ctx context.Context, artifact *Ref, dir string) error {
	path, err := artifact.Resolve()
	if err != nil {
		return err
	}
	if err := ensureDir(dir); err != nil {
		return err
	}
	_, err = c.invoke(ctx, "tools", "export",
		"--input-path", path,
		"--output-path", dir,
	)
	return err
}
