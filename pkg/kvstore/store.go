package kvstore

import "context"

// Store is the batched key-value contract used for session persistence.
//
// Implementations must apply each call as a single batch: either every item
// is applied or none are. Removing keys that do not exist is not an error,
// and GetMulti omits absent keys from its result.
type Store interface {
	// GetMulti returns the values for the given keys. Keys without a stored
	// value are omitted from the result map.
	GetMulti(ctx context.Context, keys []string) (map[string][]byte, error)

	// SetMulti stores all given items as one batch.
	SetMulti(ctx context.Context, items map[string][]byte) error

	// RemoveMulti deletes all given keys as one batch.
	RemoveMulti(ctx context.Context, keys []string) error
}
