package sra

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// transientGlobs are the archive blob and the auxiliary files prefetch and
// the VDB layer leave next to it. All of them are disposable once conversion
// has run, whether or not it succeeded.
var transientGlobs = []string{"*" + archiveExt, "*.csi", "*.vdbcache"}

// cleanupArchive removes the archive blob and its cache files from the
// per-accession directory. Best effort: every deletion is attempted
// independently, and a failure is a warning, never an error, so disk space
// is reclaimed even on a broken accession while partial FASTQ output stays
// in place for diagnosis.
func cleanupArchive(dir string, log *zap.Logger) {
	for _, pattern := range transientGlobs {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		for _, path := range matches {
			if err := os.Remove(path); err != nil {
				log.Warn("could not remove transient file",
					zap.String("path", path), zap.Error(err))
				continue
			}
			log.Debug("removed transient file", zap.String("path", path))
		}
	}
}
