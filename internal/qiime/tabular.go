package qiime

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// exportTabular exports an artifact whose payload is a single tab-separated
// file and rewrites it as CSV at dst. Used for alpha diversity vectors and
// beta distance matrices.
func (c *Client) exportTabular(ctx context.Context, art *Ref, dst string) error {
	tmp, err := os.MkdirTemp("", "ampliseq-export-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	if err := c.Export(ctx, art, tmp); err != nil {
		return err
	}

	tsvs, err := filepath.Glob(filepath.Join(tmp, "*.tsv"))
	if err != nil {
		return err
	}
	if len(tsvs) == 0 {
		return fmt.Errorf("export of %s produced no tab-separated file", art.Path())
	}
	sort.Strings(tsvs)

	records, err := readDelimited(tsvs[0], '\t')
	if err != nil {
		return err
	}
	return writeCSV(dst, records)
}

func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
