package domain

import "context"

// BloomRepository answers "definitely absent" for blog ids before the cache or DB is hit.
type BloomRepository interface {
	// Add puts an id into the filter.
	Add(ctx context.Context, id int64) error

	// Exists reports whether the id may exist.
	// true: maybe present, keep looking in cache/DB.
	// false: definitely absent, answer 404 directly.
	Exists(ctx context.Context, id int64) (bool, error)

	// BulkAdd adds many ids in one round trip.
	BulkAdd(ctx context.Context, ids []int64) error
}
