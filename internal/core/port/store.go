package port

import (
	"context"
	"time"
)

// Store is the key-value and list storage backend. All operations may fail;
// callers in the core treat failures as absent or empty results rather than
// propagating them into the dispatch pipeline.
type Store interface {
	// Get retrieves the value stored under key, or an empty string if the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
	// SetExpire stores value under key with a time-to-live.
	SetExpire(ctx context.Context, key, value string, ttl time.Duration) error
	// Remove deletes a key.
	Remove(ctx context.Context, key string) error
	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)
	// ListAppend pushes an item onto the list stored under list.
	ListAppend(ctx context.Context, list, item string) error
	// ListRemove removes up to count occurrences of item from the list.
	// Removing an absent item is a no-op.
	ListRemove(ctx context.Context, list string, count int64, item string) error
	// ListRange returns the items between start and stop, inclusive. A stop
	// of -1 addresses the end of the list.
	ListRange(ctx context.Context, list string, start, stop int64) ([]string, error)
}
