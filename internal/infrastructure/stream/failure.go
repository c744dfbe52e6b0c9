package stream

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"MovieSync/internal/domain"
)

// FailureWriter renders the block-structured failure stream: one unindented
// line reproducing the original input row, then one indented line per
// diagnostic candidate, each shaped as a reusable four-column input row so
// the operator can edit the block back into the next run's input.
type FailureWriter struct {
	w io.Writer
}

// NewFailureWriter wraps an output stream.
func NewFailureWriter(w io.Writer) *FailureWriter {
	return &FailureWriter{w: w}
}

// Unresolved appends one failure block.
func (f *FailureWriter) Unresolved(row domain.InputRow, candidates []domain.Candidate) error {
	if err := f.writeCSV(row.Raw, ""); err != nil {
		return fmt.Errorf("write failure row: %w", err)
	}

	if len(candidates) == 0 {
		if _, err := fmt.Fprintln(f.w, "    (no matches found)"); err != nil {
			return fmt.Errorf("write failure diagnostic: %w", err)
		}
		return nil
	}

	for _, c := range candidates {
		year := ""
		if c.Year != 0 {
			year = strconv.Itoa(c.Year)
		}
		if err := f.writeCSV([]string{c.Title, year, c.Href, row.Notes}, "    "); err != nil {
			return fmt.Errorf("write failure diagnostic: %w", err)
		}
	}
	return nil
}

func (f *FailureWriter) writeCSV(fields []string, indent string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(fields); err != nil {
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(f.w, "%s%s", indent, buf.String())
	return err
}
