package seekpager

import "context"

// Executor evaluates the logical query the paginator produces against a data
// store. Q is the store's query type (*gorm.DB, SliceQuery[T], ...) and T the
// row type.
//
// Apply* methods must not modify q in place: the paginator reuses the
// caller's base query for counting and for existence probes.
type Executor[Q, T any] interface {
	// ApplyOrdering sorts the query by the given orderings, in priority order.
	ApplyOrdering(q Q, orderings Orderings) Q
	// ApplyFilter restricts the query to rows matching p.
	ApplyFilter(q Q, p Predicate) Q
	// ApplyLimit caps the number of returned rows.
	ApplyLimit(q Q, n int) Q
	// Count returns the number of rows matched by q.
	Count(ctx context.Context, q Q) (int64, error)
	// Execute runs q and returns its rows in query order.
	Execute(ctx context.Context, q Q) ([]T, error)
	// Exists reports whether q has at least one row matching p.
	Exists(ctx context.Context, q Q, p Predicate) (bool, error)
}
