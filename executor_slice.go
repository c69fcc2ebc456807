package seekpager

import (
	"context"
	"slices"
)

// SliceQuery is a query over an in-memory row set. It is a value: every
// Apply* call on SliceExecutor returns a new query and leaves its input
// untouched.
type SliceQuery[T any] struct {
	rows      []T
	orderings Orderings
	filters   []Predicate
	limit     int
}

// NewSliceQuery creates a query returning all rows in their original order.
func NewSliceQuery[T any](rows []T) SliceQuery[T] {
	return SliceQuery[T]{
		rows:  rows,
		limit: NoLimit,
	}
}

// SliceExecutor evaluates SliceQuery values in memory, using the accessor to
// read column values. NULL sorts before any other value.
type SliceExecutor[T any] struct {
	accessor Accessor[T]
}

func NewSliceExecutor[T any](accessor Accessor[T]) *SliceExecutor[T] {
	return &SliceExecutor[T]{accessor: accessor}
}

// NewSlicePaginator creates a paginator over in-memory rows.
func NewSlicePaginator[T any](accessor Accessor[T]) *Paginator[SliceQuery[T], T] {
	return NewPaginator[SliceQuery[T], T](NewSliceExecutor(accessor), accessor)
}

// ApplyOrdering - implements Executor.
func (e *SliceExecutor[T]) ApplyOrdering(q SliceQuery[T], orderings Orderings) SliceQuery[T] {
	q.orderings = slices.Clone(orderings)
	return q
}

// ApplyFilter - implements Executor.
func (e *SliceExecutor[T]) ApplyFilter(q SliceQuery[T], p Predicate) SliceQuery[T] {
	if p == nil {
		return q
	}

	q.filters = append(slices.Clip(q.filters), p)
	return q
}

// ApplyLimit - implements Executor.
func (e *SliceExecutor[T]) ApplyLimit(q SliceQuery[T], n int) SliceQuery[T] {
	q.limit = n
	return q
}

// Count - implements Executor.
func (e *SliceExecutor[T]) Count(ctx context.Context, q SliceQuery[T]) (int64, error) {
	rows, err := e.filter(ctx, q)
	if err != nil {
		return 0, err
	}

	return int64(len(rows)), nil
}

// Execute - implements Executor.
func (e *SliceExecutor[T]) Execute(ctx context.Context, q SliceQuery[T]) ([]T, error) {
	rows, err := e.filter(ctx, q)
	if err != nil {
		return nil, err
	}

	if err = e.sort(rows, q.orderings); err != nil {
		return nil, err
	}

	if q.limit != NoLimit && len(rows) > q.limit {
		rows = rows[:q.limit]
	}

	return rows, nil
}

// Exists - implements Executor.
func (e *SliceExecutor[T]) Exists(ctx context.Context, q SliceQuery[T], p Predicate) (bool, error) {
	rows, err := e.filter(ctx, e.ApplyFilter(q, p))
	if err != nil {
		return false, err
	}

	return len(rows) > 0, nil
}

func (e *SliceExecutor[T]) filter(ctx context.Context, q SliceQuery[T]) ([]T, error) {
	ret := make([]T, 0, len(q.rows))

rows:
	for _, row := range q.rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, p := range q.filters {
			ok, err := Eval(p, row, e.accessor)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue rows
			}
		}

		ret = append(ret, row)
	}

	return ret, nil
}

func (e *SliceExecutor[T]) sort(rows []T, orderings Orderings) error {
	if len(orderings) == 0 {
		return nil
	}

	var sortErr error
	slices.SortStableFunc(rows, func(a, b T) int {
		if sortErr != nil {
			return 0
		}

		for _, ordering := range orderings {
			c, err := e.compareColumn(a, b, ordering.Column)
			if err != nil {
				sortErr = err
				return 0
			}

			if c == 0 {
				continue
			}

			if ordering.Direction == DirectionDESC {
				return -c
			}
			return c
		}

		return 0
	})

	return sortErr
}

func (e *SliceExecutor[T]) compareColumn(a, b T, column string) (int, error) {
	av, err := e.accessor.Value(a, column)
	if err != nil {
		return 0, err
	}

	bv, err := e.accessor.Value(b, column)
	if err != nil {
		return 0, err
	}

	return av.Compare(bv)
}

var _ Executor[SliceQuery[any], any] = (*SliceExecutor[any])(nil)
