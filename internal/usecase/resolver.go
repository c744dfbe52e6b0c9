package usecase

import (
	"context"
	"fmt"

	"MovieSync/internal/domain"
	"MovieSync/internal/match"
	"MovieSync/internal/ports"
)

// Resolution is the narrowed match set for one query. Mismatched carries the
// record a direct reference actually resolved to when it failed the supplied
// title/year validation, so the operator can see what the URL pointed at.
type Resolution struct {
	Matches    []domain.Candidate
	Mismatched []domain.Candidate

	detail *domain.Movie
}

// Canonical returns the already-fetched detail record for href, when the
// resolution went through a direct reference. Avoids a second catalog fetch
// for a confirmed match.
func (r Resolution) Canonical(href string) (domain.Movie, bool) {
	if r.detail != nil && r.detail.Href == href {
		return *r.detail, true
	}
	return domain.Movie{}, false
}

// Resolver turns a search query into candidates via the catalog and the
// matching cascade.
type Resolver struct {
	catalog ports.Catalog
}

// NewResolver wires the catalog collaborator.
func NewResolver(catalog ports.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve fetches candidates for the query and narrows them.
//
// With a direct reference the detail page is fetched immediately and treated
// as a singleton candidate list; a supplied title or year that does not match
// the fetched record turns this into zero matches, not an error. Without one,
// the catalog is searched for the title phrase and the cascade applied.
// Catalog failures are returned as-is and never retried here.
func (r *Resolver) Resolve(ctx context.Context, q domain.SearchQuery) (Resolution, error) {
	if q.Href != "" {
		movie, err := r.catalog.Detail(ctx, q.Href)
		if err != nil {
			return Resolution{}, fmt.Errorf("fetch %s: %w", q.Href, err)
		}

		single := []domain.Candidate{movie.Candidate}
		matches := single
		if q.Title != "" {
			matches = match.Movies(single, q.Title, q.Year)
		} else if q.Year != 0 && movie.Year != q.Year {
			matches = nil
		}

		if len(matches) == 0 {
			return Resolution{Mismatched: single}, nil
		}
		return Resolution{Matches: matches, detail: &movie}, nil
	}

	candidates, err := r.catalog.Search(ctx, q.Title)
	if err != nil {
		return Resolution{}, fmt.Errorf("search %q: %w", q.Title, err)
	}

	return Resolution{Matches: match.Movies(candidates, q.Title, q.Year)}, nil
}
