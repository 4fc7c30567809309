package domain

import "context"

// CounterReconciler repairs denormalized comment counters that drifted because
// a cascade was interrupted half way.
type CounterReconciler interface {
	Start(ctx context.Context)

	// RunOnce performs a single pass over every blog.
	RunOnce(ctx context.Context)

	// ReconcileBlog recomputes the counters of one blog and reports how many rows changed.
	ReconcileBlog(ctx context.Context, blogID int64) (int, error)
}
