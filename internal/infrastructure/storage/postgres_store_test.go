package storage

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
)

// The store is exercised against a live database in deployment; here we pin
// the generated SQL so placeholder format and column set do not drift.

func TestQuerySQL(t *testing.T) {
	t.Parallel()

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := builder.
		Select("id").
		From("movies").
		Where(sq.Eq{"href": "https://example.test/m/alien"}).
		OrderBy("id").
		ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.Contains(query, "FROM movies") || !strings.Contains(query, "href = $1") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %v", args)
	}
}

func TestInsertSQLUsesDollarPlaceholders(t *testing.T) {
	t.Parallel()

	store := NewPostgresStore(nil)
	query, args, err := store.builder.
		Insert("movies").
		Columns("href", "title", "year").
		Values("h", "t", nullableInt(0)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.HasSuffix(query, "RETURNING id") {
		t.Fatalf("missing returning clause: %s", query)
	}
	if !strings.Contains(query, "$3") {
		t.Fatalf("expected dollar placeholders: %s", query)
	}
	if args[2] != nil {
		t.Fatalf("zero year must insert NULL, got %v", args[2])
	}
}

func TestNullableInt(t *testing.T) {
	t.Parallel()

	if got := nullableInt(1991); got != 1991 {
		t.Fatalf("nullableInt(1991) = %v", got)
	}
	if got := nullableInt(0); got != nil {
		t.Fatalf("nullableInt(0) = %v, want nil", got)
	}
}
