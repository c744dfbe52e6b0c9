package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"MovieSync/internal/domain"
	"MovieSync/internal/ports"
)

// fakeStore keeps created records in memory, keyed by href.
type fakeStore struct {
	refs     map[string][]domain.StoreRef
	created  int
	queryErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{refs: map[string][]domain.StoreRef{}}
}

func (f *fakeStore) Query(_ context.Context, href string) ([]domain.StoreRef, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.refs[href], nil
}

func (f *fakeStore) Create(_ context.Context, movie domain.Movie, _, _ string) (domain.StoreRef, error) {
	f.created++
	ref := domain.StoreRef{ID: strconv.Itoa(f.created), URL: "store://" + movie.Href}
	f.refs[movie.Href] = append(f.refs[movie.Href], ref)
	return ref, nil
}

func TestUpsertCreatesWhenAbsent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	upserter := NewUpserter(store, SkipExisting)

	ref, err := upserter.Upsert(context.Background(), alienMovie(), "Alien", "classic")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if ref.ID == "" || store.created != 1 {
		t.Fatalf("expected one created entry, got ref=%+v created=%d", ref, store.created)
	}
}

func TestUpsertIdempotentInSkipMode(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	upserter := NewUpserter(store, SkipExisting)

	first, err := upserter.Upsert(context.Background(), alienMovie(), "Alien", "")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := upserter.Upsert(context.Background(), alienMovie(), "Alien", "")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if first != second {
		t.Fatalf("upsert is not idempotent: %+v vs %+v", first, second)
	}
	if store.created != 1 {
		t.Fatalf("second upsert created an entry, total %d", store.created)
	}
}

func TestUpsertStrictFailsOnExisting(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	if _, err := NewUpserter(store, SkipExisting).Upsert(context.Background(), alienMovie(), "Alien", ""); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ref, err := NewUpserter(store, FailExisting).Upsert(context.Background(), alienMovie(), "Alien", "")
	if !errors.Is(err, ports.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if ref.ID == "" {
		t.Fatal("strict failure should still report the existing reference")
	}
	if store.created != 1 {
		t.Fatalf("strict mode created an entry, total %d", store.created)
	}
}

func TestUpsertDuplicateStateIsFatal(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.refs["/m/alien"] = []domain.StoreRef{{ID: "1"}, {ID: "2"}}

	_, err := NewUpserter(store, SkipExisting).Upsert(context.Background(), alienMovie(), "Alien", "")
	if !errors.Is(err, ports.ErrDuplicateState) {
		t.Fatalf("expected ErrDuplicateState, got %v", err)
	}
	if store.created != 0 {
		t.Fatal("duplicate state must not create anything")
	}
}

func TestUpsertStoreFailurePropagates(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.queryErr = ports.ErrStoreUnavailable

	_, err := NewUpserter(store, SkipExisting).Upsert(context.Background(), alienMovie(), "Alien", "")
	if !errors.Is(err, ports.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
