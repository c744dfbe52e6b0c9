package domain

import "fmt"

// SearchQuery is one resolution request against the catalog. At least one of
// Title/Href must be set; the pipeline enforces that before resolving, the
// cascade itself does not.
type SearchQuery struct {
	Title string
	Year  int // 0 means no year constraint
	Href  string
	Notes string
}

// Valid reports whether the query carries enough to resolve anything.
func (q SearchQuery) Valid() bool {
	return q.Title != "" || q.Href != ""
}

// Original renders the verbatim phrase/year the query was built from, for the
// success stream's provenance field.
func (q SearchQuery) Original() string {
	switch {
	case q.Title != "" && q.Year != 0:
		return fmt.Sprintf("%s (%d)", q.Title, q.Year)
	case q.Title != "":
		return q.Title
	default:
		return q.Href
	}
}
