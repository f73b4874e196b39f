package qiime

import (
	"fmt"
	"os"
	"path/filepath"
)

// Ref is a reference to a framework artifact on disk. It starts unloaded
// (just a path) and is resolved exactly once at the boundary of the first
// operation that consumes it; resolution checks the file actually exists and
// converts the path to an absolute one.
type Ref struct {
	path     string
	resolved bool
}

// NewRef wraps a path without touching the filesystem.
func NewRef(path string) *Ref {
	return &Ref{path: path}
}

// Path returns the (possibly still unresolved) path.
func (r *Ref) Path() string { return r.path }

// Resolve validates the artifact exists and memoizes the absolute path.
// Output artifacts produced by an earlier operation in the same invocation
// resolve against the just-written file.
func (r *Ref) Resolve() (string, error) {
	if r.resolved {
		return r.path, nil
	}

	abs, err := filepath.Abs(r.path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("artifact %s: %w", r.path, err)
	}

	r.path = abs
	r.resolved = true
	return r.path, nil
}
