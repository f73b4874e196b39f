package sra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ampliseq/internal/shell"
)

// fakeRunner records every command and delegates to a per-test handler.
type fakeRunner struct {
	handle func(cmd shell.Command) (shell.Result, error)
	calls  []shell.Command
}

func (f *fakeRunner) Run(_ context.Context, cmd shell.Command) (shell.Result, error) {
	f.calls = append(f.calls, cmd)
	if f.handle == nil {
		return shell.Result{}, nil
	}
	return f.handle(cmd)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) named(name string) []shell.Command {
	var out []shell.Command
	for _, c := range f.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// pipelineBehavior configures the simulated sra-tools for driver tests.
type pipelineBehavior struct {
	root        string
	paired      map[string]bool
	failFetch   map[string]bool
	failConvert map[string]bool
}

// handler simulates prefetch, sra-stat, and fasterq-dump closely enough for
// the driver: prefetch materializes the archive blob on disk, sra-stat
// answers with canned run metadata, and fasterq-dump writes the expected
// FASTQ files next to the blob.
func (b pipelineBehavior) handler(t *testing.T) func(cmd shell.Command) (shell.Result, error) {
	t.Helper()
	return func(cmd shell.Command) (shell.Result, error) {
		switch cmd.Name {
		case "prefetch":
			acc := cmd.Args[0]
			if b.failFetch[acc] {
				return shell.Result{Stderr: "err: no network connection", ExitCode: 3},
					fmt.Errorf("prefetch exited with status 3")
			}
			dir := filepath.Join(b.root, acc)
			require.NoError(t, os.MkdirAll(dir, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, acc+".sra"), []byte("blob"), 0o644))
			return shell.Result{Stdout: acc + " downloaded successfully"}, nil

		case "sra-stat":
			acc := accessionOf(cmd.Args[len(cmd.Args)-1])
			xml := `<Run accession="` + acc + `"><Member><Read index="0" count="100"/>`
			if b.paired[acc] {
				xml += `<Read index="1" read="2" count="100"/>`
			}
			xml += `</Member></Run>`
			return shell.Result{Stdout: xml}, nil

		case "fasterq-dump":
			if slices.Contains(cmd.Args, "--dry-run") {
				return shell.Result{Stdout: "dry run"}, nil
			}
			blob := cmd.Args[0]
			acc := accessionOf(blob)
			outDir := argValue(cmd.Args, "--outdir")
			if b.failConvert[acc] {
				return shell.Result{Stderr: "err: invalid blob"}, fmt.Errorf("fasterq-dump exited with status 3")
			}
			names := []string{acc + ".fastq"}
			if b.paired[acc] {
				names = []string{acc + "_1.fastq", acc + "_2.fastq"}
			}
			for _, name := range names {
				require.NoError(t, os.WriteFile(filepath.Join(outDir, name), []byte("@read\n"), 0o644))
			}
			return shell.Result{Stdout: "reads written"}, nil
		}
		return shell.Result{}, fmt.Errorf("unexpected command %s", cmd.Name)
	}
}

func accessionOf(blob string) string {
	return strings.TrimSuffix(filepath.Base(blob), ".sra")
}

func argValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
