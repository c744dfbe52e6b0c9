package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"MovieSync/internal/domain"
)

// Record is one success stream line: the canonical record plus its notes and
// the original query text it was found by.
type Record struct {
	domain.Movie
	Notes    string `json:"notes"`
	Original string `json:"original"`
}

// SuccessWriter emits one JSON record per line, append-only.
type SuccessWriter struct {
	w io.Writer
}

// NewSuccessWriter wraps an output stream.
func NewSuccessWriter(w io.Writer) *SuccessWriter {
	return &SuccessWriter{w: w}
}

// Resolved serializes one confirmed record.
func (s *SuccessWriter) Resolved(_ context.Context, movie domain.Movie, original, notes string) error {
	line, err := json.Marshal(Record{Movie: movie, Notes: notes, Original: original})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "%s\n", line); err != nil {
		return fmt.Errorf("write success stream: %w", err)
	}
	return nil
}

// RecordReader decodes a success stream line by line, for pushing a previous
// run's output into a record store.
type RecordReader struct {
	scanner *bufio.Scanner
}

// NewRecordReader wraps a success stream.
func NewRecordReader(r io.Reader) *RecordReader {
	return &RecordReader{scanner: bufio.NewScanner(r)}
}

// Next returns the following record; io.EOF ends the stream. Blank lines are
// skipped.
func (r *RecordReader) Next() (Record, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return Record{}, fmt.Errorf("decode success record: %w", err)
		}
		return record, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("read success stream: %w", err)
	}
	return Record{}, io.EOF
}
