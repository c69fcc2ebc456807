package seekpager

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GORMExecutor runs paginated queries through gorm. T is the row type rows
// are scanned into; the base query decides the table (db.Model or db.Table).
type GORMExecutor[T any] struct{}

// NewGORMPaginator creates a paginator over gorm queries.
//
// Usage:
//
//	pager := seekpager.NewGORMPaginator[User](getters).
//		WithLimit(20).
//		WithDescending("created_at", seekpager.KindTime).
//		WithAscending("id", seekpager.KindUint)
//
//	page, err := pager.Page(ctx, db.Model(&User{}).Where("active"), req.Token)
func NewGORMPaginator[T any](accessor Accessor[T]) *Paginator[*gorm.DB, T] {
	return NewPaginator[*gorm.DB, T](GORMExecutor[T]{}, accessor)
}

// fork detaches further chaining from q, so the caller's statement is never
// mutated by the pagination clauses.
func fork(q *gorm.DB) *gorm.DB {
	return q.Session(&gorm.Session{})
}

// ApplyOrdering - implements Executor.
func (GORMExecutor[T]) ApplyOrdering(q *gorm.DB, orderings Orderings) *gorm.DB {
	if len(orderings) == 0 {
		return q
	}

	return fork(q).Order(orderings.ToSQL())
}

// ApplyFilter - implements Executor.
func (GORMExecutor[T]) ApplyFilter(q *gorm.DB, p Predicate) *gorm.DB {
	exp := GORMExpression(p)
	if exp == nil {
		return q
	}

	return fork(q).Clauses(exp)
}

// ApplyLimit - implements Executor.
func (GORMExecutor[T]) ApplyLimit(q *gorm.DB, n int) *gorm.DB {
	if n == NoLimit {
		return q
	}

	return fork(q).Limit(n)
}

// Count - implements Executor.
func (GORMExecutor[T]) Count(ctx context.Context, q *gorm.DB) (int64, error) {
	var total int64
	if err := q.WithContext(ctx).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("cannot count rows: %w", err)
	}

	return total, nil
}

// Execute - implements Executor.
func (GORMExecutor[T]) Execute(ctx context.Context, q *gorm.DB) ([]T, error) {
	var rows []T
	if err := q.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cannot fetch rows: %w", err)
	}

	return rows, nil
}

// Exists - implements Executor. Probes with LIMIT 1 instead of counting.
func (e GORMExecutor[T]) Exists(ctx context.Context, q *gorm.DB, p Predicate) (bool, error) {
	rows, err := e.Execute(ctx, e.ApplyLimit(e.ApplyFilter(q, p), 1))
	if err != nil {
		return false, fmt.Errorf("cannot probe rows: %w", err)
	}

	return len(rows) > 0, nil
}

var _ Executor[*gorm.DB, any] = GORMExecutor[any]{}
