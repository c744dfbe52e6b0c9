package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"MovieSync/internal/domain"
	"MovieSync/internal/ports"
)

// PostgresStore implements the record store port on a relational movies
// table, keyed by the catalog detail URL.
//
// Expected schema:
//
//	CREATE TABLE movies (
//	    id          SERIAL PRIMARY KEY,
//	    href        TEXT NOT NULL,
//	    title       TEXT NOT NULL,
//	    year        INTEGER,
//	    audience    INTEGER,
//	    tomatometer INTEGER,
//	    rating      TEXT,
//	    genres      TEXT[],
//	    runtime     INTEGER,
//	    original    TEXT,
//	    notes       TEXT,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
// href deliberately carries no UNIQUE constraint: duplicate detection is the
// upsert layer's concern, and an inconsistent table must stay observable.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RecordStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query returns every row whose href equals the natural key.
func (s *PostgresStore) Query(ctx context.Context, href string) ([]domain.StoreRef, error) {
	query, args, err := s.builder.
		Select("id").
		From("movies").
		Where(sq.Eq{"href": href}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query movies: %v", ports.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var refs []domain.StoreRef
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan id: %v", ports.ErrStoreUnavailable, err)
		}
		refs = append(refs, domain.StoreRef{ID: strconv.FormatInt(id, 10), URL: href})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration: %v", ports.ErrStoreUnavailable, err)
	}

	return refs, nil
}

// Create inserts one movie row and returns its generated reference.
func (s *PostgresStore) Create(ctx context.Context, movie domain.Movie, original, notes string) (domain.StoreRef, error) {
	query, args, err := s.builder.
		Insert("movies").
		Columns("href", "title", "year", "audience", "tomatometer", "rating", "genres", "runtime", "original", "notes").
		Values(
			movie.Href,
			movie.Title,
			nullableInt(movie.Year),
			movie.Audience,
			movie.Tomatometer,
			movie.Rating,
			pq.Array(movie.Genres),
			movie.Runtime,
			original,
			notes,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.StoreRef{}, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return domain.StoreRef{}, fmt.Errorf("%w: insert movie: %v", ports.ErrStoreUnavailable, err)
	}

	return domain.StoreRef{ID: strconv.FormatInt(id, 10), URL: movie.Href}, nil
}

// nullableInt maps the 0-as-absent year convention onto SQL NULL.
func nullableInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
