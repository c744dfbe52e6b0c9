package domain

// InputRow is the unit of bulk work: one decoded tabular record plus its raw
// serialized fields, kept so a failed row can be re-emitted verbatim.
type InputRow struct {
	Index int
	Title string
	Year  int
	Href  string
	Notes string
	Raw   []string
}

// Query derives the catalog search request for this row.
func (r InputRow) Query() SearchQuery {
	return SearchQuery{
		Title: r.Title,
		Year:  r.Year,
		Href:  r.Href,
		Notes: r.Notes,
	}
}

// Outcome is the result of resolving one input row. Exactly one of the two
// shapes applies: Movie set (resolved), or Candidates carrying whatever the
// search produced (unresolved: empty on no hits, the full ambiguous set
// otherwise). Created once per row, consumed by the stream router, never
// mutated afterward.
type Outcome struct {
	Row        InputRow
	Movie      *Movie
	Candidates []Candidate
}

// Resolved reports whether the row narrowed to a single confirmed record.
func (o Outcome) Resolved() bool {
	return o.Movie != nil
}
