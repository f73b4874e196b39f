// Package errs defines the error taxonomy shared by the pipeline commands.
//
// Configuration errors abort an invocation outright. Retrieval and conversion
// errors are scoped to a single accession: the batch driver records them and
// moves on. Everything softer than that (undetermined read layout, a
// temporary file that would not delete) is logged as a warning and never
// becomes an error.
package errs

import "fmt"

// ConfigurationError means the invocation itself is unusable: a missing
// accession column, a tree-dependent metric requested without a tree, and so
// on. Nothing useful can proceed, so callers return it directly.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// Configf builds a ConfigurationError from a format string.
func Configf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// RetrievalError means the archive fetch for one accession failed. Output is
// the raw combined diagnostics of the external tool, always surfaced to the
// user in place of a stack trace.
type RetrievalError struct {
	Accession string
	Output    string
	Err       error
}

func (e *RetrievalError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("retrieving %s: %v", e.Accession, e.Err)
	}
	return fmt.Sprintf("retrieving %s: %v\n%s", e.Accession, e.Err, e.Output)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// ConversionError means the archive-to-FASTQ conversion for one accession
// failed. Fatal for that sample, never for the batch.
type ConversionError struct {
	Accession string
	Output    string
	Err       error
}

func (e *ConversionError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("converting %s: %v", e.Accession, e.Err)
	}
	return fmt.Sprintf("converting %s: %v\n%s", e.Accession, e.Err, e.Output)
}

func (e *ConversionError) Unwrap() error { return e.Err }
