package domain

// Candidate is a lightweight catalog search hit: title, year, and detail link.
// Ephemeral; never persisted.
type Candidate struct {
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
	Href  string `json:"href"`
}

// Movie is the fully detailed record for a single confirmed title. It is the
// detail superset of Candidate and is fetched lazily, only once a search has
// narrowed to exactly one hit.
type Movie struct {
	Candidate

	Audience    *int     `json:"audience"`
	Tomatometer *int     `json:"tomatometer"`
	Rating      string   `json:"rating,omitempty"`
	Genres      []string `json:"genres"`
	Runtime     *int     `json:"runtime"`
}

// StoreRef identifies an existing entry in the record store.
type StoreRef struct {
	ID  string
	URL string
}
