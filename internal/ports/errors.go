package ports

import "errors"

// Collaborator failure taxonomy. Implementations wrap these sentinels so the
// pipeline and CLI can route on cause without knowing the backend.
var (
	// ErrCatalogUnavailable marks a catalog transport failure, a non-success
	// status, or a page whose structure could not be parsed.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrStoreUnavailable marks a record store transport failure or a
	// non-success status.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrAlreadyExists reports an existing store entry with the same natural
	// key, in strict upsert mode.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrDuplicateState reports more than one store entry with the same
	// natural key. The store is inconsistent; never auto-repaired.
	ErrDuplicateState = errors.New("duplicate records in store")

	// ErrOutputExists reports an already-present output destination opened
	// without explicit consent to reuse it.
	ErrOutputExists = errors.New("output destination already exists")
)
