package qiime

import (
	"context"
	"path/filepath"
	"strconv"
)

// PhylogenyResult names the two trees the alignment pipeline produces.
type PhylogenyResult struct {
	UnrootedTree *Ref
	RootedTree   *Ref
}

// BuildPhylogeny aligns the representative sequences and builds unrooted and
// rooted trees (mafft + fasttree pipeline), writing unrooted_tree.qza and
// rooted_tree.qza into outputDir. The alignment and masked-alignment
// intermediates stay inside the framework's pipeline.
func (c *Client) BuildPhylogeny(ctx context.Context, repSeqs *Ref, outputDir string, threads int) (*PhylogenyResult, error) {
	path, err := repSeqs.Resolve()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	unrooted := filepath.Join(outputDir, "unrooted_tree.qza")
	rooted := filepath.Join(outputDir, "rooted_tree.qza")
	alignment := filepath.Join(outputDir, "alignment.qza")
	masked := filepath.Join(outputDir, "masked_alignment.qza")

	nThreads := "auto"
	if threads > 0 {
		nThreads = strconv.Itoa(threads)
	}

	_, err = c.invoke(ctx, "phylogeny", "align-to-tree-mafft-fasttree",
		"--i-sequences", path,
		"--p-n-threads", nThreads,
		"--o-alignment", alignment,
		"--o-masked-alignment", masked,
		"--o-tree", unrooted,
		"--o-rooted-tree", rooted,
	)
	if err != nil {
		return nil, err
	}

	return &PhylogenyResult{
		UnrootedTree: NewRef(unrooted),
		RootedTree:   NewRef(rooted),
	}, nil
}
