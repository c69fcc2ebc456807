package seekpager

import "fmt"

// Accessor reads the value of a named column from a row.
type Accessor[T any] interface {
	Value(row T, column string) (Value, error)
}

// AccessorFunc adapts a plain function to Accessor.
type AccessorFunc[T any] func(row T, column string) (Value, error)

// Value - implements Accessor.
func (f AccessorFunc[T]) Value(row T, column string) (Value, error) {
	return f(row, column)
}

// Getters is a map of getters for a row type. List the columns pagination is
// performed on. Getters may return plain scalars, pointers for nullable
// columns, sql.Null* wrappers, time.Time and uuid.UUID.
//
// Example:
//
//	seekpager.Getters[models.Player]{
//		"id":          func(p models.Player) any { return p.ID },
//		"deposit_sum": func(p models.Player) any { return p.DepositSum },
//	}
type Getters[T any] map[string]func(T) any

// Value - implements Accessor.
func (g Getters[T]) Value(row T, column string) (Value, error) {
	getter, ok := g[column]
	if !ok {
		return Value{}, fmt.Errorf("%w: cannot find getter for column '%s'", ErrConfiguration, column)
	}

	v, err := ValueOf(getter(row))
	if err != nil {
		return Value{}, fmt.Errorf("%w: column '%s': %w", ErrConfiguration, column, err)
	}

	return v, nil
}

var (
	_ Accessor[any] = Getters[any](nil)
	_ Accessor[any] = AccessorFunc[any](nil)
)
