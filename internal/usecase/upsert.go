package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"MovieSync/internal/domain"
	"MovieSync/internal/ports"
)

// UpsertMode selects how an existing store entry with the same natural key is
// treated. Both behaviors are deliberate; the caller picks, never this package.
type UpsertMode int

const (
	// SkipExisting returns the existing reference untouched (idempotent no-op).
	SkipExisting UpsertMode = iota

	// FailExisting surfaces ErrAlreadyExists so the caller can decide whether
	// to skip or report.
	FailExisting
)

// Upserter creates records in the store unless an entry with the same natural
// key is already present.
type Upserter struct {
	store ports.RecordStore
	mode  UpsertMode
}

// NewUpserter wires the record store with the chosen existing-entry mode.
func NewUpserter(store ports.RecordStore, mode UpsertMode) *Upserter {
	return &Upserter{store: store, mode: mode}
}

// Upsert looks the record's natural key up in the store, then creates the
// record if absent. More than one existing entry means the store itself is
// inconsistent and always fails; it must not be silently resolved by picking
// one.
func (u *Upserter) Upsert(ctx context.Context, movie domain.Movie, original, notes string) (domain.StoreRef, error) {
	refs, err := u.store.Query(ctx, movie.Href)
	if err != nil {
		return domain.StoreRef{}, fmt.Errorf("query store for %s: %w", movie.Href, err)
	}

	switch {
	case len(refs) > 1:
		return domain.StoreRef{}, fmt.Errorf("%d entries for %s: %w", len(refs), movie.Href, ports.ErrDuplicateState)
	case len(refs) == 1:
		if u.mode == FailExisting {
			return refs[0], fmt.Errorf("%s: %w", movie.Href, ports.ErrAlreadyExists)
		}
		return refs[0], nil
	}

	ref, err := u.store.Create(ctx, movie, original, notes)
	if err != nil {
		return domain.StoreRef{}, fmt.Errorf("create record for %s: %w", movie.Href, err)
	}
	return ref, nil
}

// StoreSink adapts the upserter to the pipeline's success sink, for batch
// runs whose destination is a live store instead of a stream.
type StoreSink struct {
	upserter *Upserter
	logger   *slog.Logger
}

// NewStoreSink wraps an upserter for use as a pipeline destination.
func NewStoreSink(upserter *Upserter, logger *slog.Logger) *StoreSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreSink{upserter: upserter, logger: logger}
}

// Resolved routes a confirmed record through the duplicate-aware upsert.
func (s *StoreSink) Resolved(ctx context.Context, movie domain.Movie, original, notes string) error {
	ref, err := s.upserter.Upsert(ctx, movie, original, notes)
	if err != nil {
		return err
	}
	s.logger.Info("stored", "title", movie.Title, "year", movie.Year, "ref", ref.URL)
	return nil
}
