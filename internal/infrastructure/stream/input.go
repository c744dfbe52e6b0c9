package stream

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"MovieSync/internal/domain"
)

// ParseYear coerces a free-text year field, falling back to absent (0) when
// it does not parse. Malformed years degrade the query, they never abort it.
func ParseYear(text string) int {
	year, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

// CSVReader decodes the canonical batch layout: title, year, then either
// notes (three columns) or reference and notes (four columns). The failure
// stream's diagnostic lines use the four-column form, so a hand-edited
// failure file feeds straight back in.
type CSVReader struct {
	reader *csv.Reader
	index  int
}

// NewCSVReader wraps an input stream.
func NewCSVReader(r io.Reader) *CSVReader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return &CSVReader{reader: reader}
}

// Next returns the following row; io.EOF ends the batch.
func (c *CSVReader) Next() (domain.InputRow, error) {
	record, err := c.reader.Read()
	if err != nil {
		return domain.InputRow{}, err
	}

	row := domain.InputRow{Index: c.index, Raw: record}
	c.index++

	if len(record) > 0 {
		row.Title = strings.TrimSpace(record[0])
	}
	if len(record) > 1 {
		row.Year = ParseYear(record[1])
	}
	switch {
	case len(record) >= 4:
		row.Href = strings.TrimSpace(record[2])
		row.Notes = record[3]
	case len(record) == 3:
		row.Notes = record[2]
	}

	return row, nil
}

// NirvanaReader decodes the watch-list export layout: the title sits in
// column 5, optionally suffixed with ";year", and notes in column 12.
type NirvanaReader struct {
	reader *csv.Reader
	index  int
}

// NewNirvanaReader wraps an export stream.
func NewNirvanaReader(r io.Reader) *NirvanaReader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return &NirvanaReader{reader: reader}
}

// Next returns the following row; io.EOF ends the batch. Rows too short to
// carry the expected columns degrade to empty fields instead of failing.
func (n *NirvanaReader) Next() (domain.InputRow, error) {
	record, err := n.reader.Read()
	if err != nil {
		return domain.InputRow{}, err
	}

	row := domain.InputRow{Index: n.index, Raw: record}
	n.index++

	if len(record) > 5 {
		row.Title, row.Year = splitTaggedTitle(record[5])
	}
	if len(record) > 12 {
		row.Notes = record[12]
	}

	return row, nil
}

// splitTaggedTitle peels a ";year" suffix off a title. A suffix that is not
// an integer stays part of the title.
func splitTaggedTitle(text string) (string, int) {
	parts := strings.Split(text, ";")
	if len(parts) < 2 {
		return text, 0
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || year <= 0 {
		return text, 0
	}
	return strings.Join(parts[:len(parts)-1], ";"), year
}
