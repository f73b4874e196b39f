package sra

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/csimplestring/go-csv/detector"

	"ampliseq/internal/errs"
)

// accessionColumnHints are matched case-insensitively as substrings against
// header names when no explicit column is given. First matching column wins.
var accessionColumnHints = []string{"accession", "sra", "run"}

// ResolveAccessions turns a sample table into a deduplicated accession list.
// The table may be comma- or tab-delimited; the delimiter is sniffed. If
// column is empty, the header is scanned for a name containing one of the
// accessionColumnHints; no match is a ConfigurationError. Rows with an empty
// accession value are dropped. First-seen order is preserved so that batch
// logs read in table order.
func ResolveAccessions(tablePath, column string) ([]string, error) {
	raw, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = sniffDelimiter(raw)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(records) == 0 {
		return nil, errs.Configf("%s: empty sample table", tablePath)
	}

	header := records[0]
	colIdx := -1
	if column != "" {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), column) {
				colIdx = i
				break
			}
		}
		if colIdx < 0 {
			return nil, errs.Configf("%s: no column named %q", tablePath, column)
		}
	} else {
		colIdx = findAccessionColumn(header)
		if colIdx < 0 {
			return nil, errs.Configf("%s: no accession column found (looked for a header containing one of %s)",
				tablePath, strings.Join(accessionColumnHints, ", "))
		}
	}

	seen := make(map[string]bool)
	var accessions []string
	for _, row := range records[1:] {
		if colIdx >= len(row) {
			continue
		}
		acc := strings.TrimSpace(row[colIdx])
		if acc == "" || seen[acc] {
			continue
		}
		seen[acc] = true
		accessions = append(accessions, acc)
	}

	return accessions, nil
}

func findAccessionColumn(header []string) int {
	for i, name := range header {
		lower := strings.ToLower(name)
		for _, hint := range accessionColumnHints {
			if strings.Contains(lower, hint) {
				return i
			}
		}
	}
	return -1
}

// sniffDelimiter returns the most likely delimiter rune for a CSV-like
// table, defaulting to a comma.
func sniffDelimiter(raw []byte) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(raw), '"')
	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}
	return ','
}
