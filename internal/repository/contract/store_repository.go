package contract

import (
	"context"

	"chatshot-be/internal/entity"
)

// StoreRepository reads and writes the per-account store files. Load never
// fails on a missing or corrupt file; it reports the fallback through its
// second return value so callers can make the data loss observable.
type StoreRepository interface {
	// Load returns the parsed store for accountKey. A missing file returns
	// (nil, false, nil); a file that exists but fails to parse returns
	// (nil, true, nil) after preserving the corrupt bytes in a sidecar file.
	Load(ctx context.Context, accountKey string) (*entity.AccountStore, bool, error)

	// Persist serializes the full store, replacing the file atomically.
	Persist(ctx context.Context, accountKey string, store *entity.AccountStore) error

	// Path resolves the file backing accountKey.
	Path(accountKey string) string
}
