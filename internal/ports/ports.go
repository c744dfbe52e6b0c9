package ports

import (
	"context"

	"MovieSync/internal/domain"
)

// Catalog exposes the external movie catalog: a search returning lightweight
// candidates and a detail fetch for one candidate's page.
type Catalog interface {
	Search(ctx context.Context, phrase string) ([]domain.Candidate, error)
	Detail(ctx context.Context, href string) (domain.Movie, error)
}

// RecordStore queries and creates rows in the destination store. Query looks
// up entries by natural key (the catalog detail reference); Create appends a
// new row carrying the record plus its provenance text.
type RecordStore interface {
	Query(ctx context.Context, href string) ([]domain.StoreRef, error)
	Create(ctx context.Context, movie domain.Movie, original, notes string) (domain.StoreRef, error)
}
