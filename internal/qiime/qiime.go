// Package qiime drives the wrapped amplicon analysis framework through its
// CLI. The pipeline never looks inside an artifact: it loads them by path,
// hands them to named framework operations, and saves or exports whatever
// comes back. Every scientifically meaningful computation happens on the
// other side of this boundary.
package qiime

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ampliseq/internal/config"
	"ampliseq/internal/shell"
)

// Client invokes framework operations as subprocesses of the qiime binary.
type Client struct {
	run shell.Runner
	bin string
	log *zap.Logger
}

// NewClient returns a Client using the configured qiime executable.
func NewClient(cfg *config.Config, run shell.Runner, log *zap.Logger) *Client {
	return &Client{run: run, bin: cfg.Tools.Qiime, log: log}
}

// invoke runs one qiime subcommand. On failure the returned error carries
// the tool's combined diagnostics so the user sees what the framework said,
// not a stack trace.
func (c *Client) invoke(ctx context.Context, args ...string) (shell.Result, error) {
	c.log.Debug("qiime", zap.Strings("args", args))

	res, err := c.run.Run(ctx, shell.Command{Name: c.bin, Args: args})
	if err != nil {
		if out := res.Combined(); out != "" {
			return res, fmt.Errorf("qiime %s: %w\n%s", args[0], err, out)
		}
		return res, fmt.Errorf("qiime %s: %w", args[0], err)
	}
	return res, nil
}

// ensureDir creates an output directory for an operation.
func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
