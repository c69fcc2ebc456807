package seekpager

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Direction defines the sort direction of a single column.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

// Reverse returns the opposite direction.
func (o Direction) Reverse() Direction {
	if o == DirectionDESC {
		return DirectionASC
	}

	return DirectionDESC
}

type (
	// Column declares one sortable column of the keyset. Kind and Nullable
	// describe the column's declared type; a zero Kind accepts whatever kind
	// the reference row yields.
	Column struct {
		Name      string
		Kind      Kind
		Nullable  bool
		Direction Direction
	}

	// Columns is the ordered column definition set. Order defines sort
	// priority. The last column must be unique across rows, otherwise page
	// edges become ambiguous.
	Columns []Column

	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to column templates. Use it
	// to expose stable API names and to qualify columns ("users.id") that
	// would otherwise be ambiguous. The Direction of a template is ignored.
	ColumnMapping = map[ColumnAlias]Column
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// Asc declares an ascending column.
func Asc(name string, kind Kind) Column {
	return Column{Name: name, Kind: kind, Direction: DirectionASC}
}

// Desc declares a descending column.
func Desc(name string, kind Kind) Column {
	return Column{Name: name, Kind: kind, Direction: DirectionDESC}
}

// AsNullable marks the column as nullable.
func (c Column) AsNullable() Column {
	c.Nullable = true
	return c
}

func (c Column) validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty column name", ErrConfiguration)
	}

	if !c.Direction.Valid() {
		return fmt.Errorf("%w: invalid ordering direction '%s'", ErrConfiguration, c.Direction)
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if !lo.Every(_availableColumnNameSymbols, []rune(c.Name)) {
		return fmt.Errorf("%w: ordering column name contains forbidden symbols '%s'", ErrConfiguration, c.Name)
	}

	if c.Kind != KindUnspecified && !c.Kind.Valid() {
		return fmt.Errorf("%w: column '%s' has unknown kind %s", ErrConfiguration, c.Name, c.Kind)
	}

	return nil
}

func (c Columns) validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty column list", ErrConfiguration)
	}

	for _, column := range c {
		if err := column.validate(); err != nil {
			return err
		}
	}

	return nil
}

// Names returns column names in sort priority order.
func (c Columns) Names() []string {
	return lo.Map(c, func(column Column, _ int) string {
		return column.Name
	})
}

// with appends columns, dropping earlier occurrences of the same name.
func (c Columns) with(columns ...Column) Columns {
	ret := slices.Clone(c)
	for _, column := range columns {
		idx := slices.IndexFunc(ret, func(processed Column) bool {
			return processed.Name == column.Name
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			ret = slices.Delete(ret, idx, idx+1)
		}

		ret = append(ret, column)
	}

	return ret
}

// orderings derives the ORDER BY list for a scan. A Forward scan follows the
// declared directions, a Backward scan flips every one of them.
func (c Columns) orderings(scan PaginationDirection) Orderings {
	return lo.Map(c, func(column Column, _ int) OrderBy {
		direction := column.Direction
		if scan == Backward {
			direction = direction.Reverse()
		}

		return OrderBy{Column: column.Name, Direction: direction}
	})
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>" suitable for SQL query builders.
//
// Example: for Orderings: [{"a", "ASC"}, {"b", "DESC"}] returns ["a ASC", "b DESC"].
func (o Orderings) ToSQLSlice() []string {
	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		ret = append(ret, fmt.Sprintf("%s %s", ordering.Column, ordering.Direction))
	}

	return ret
}

// ToSQL converts Orderings to a single string
// "<order_column_1> <order_direction_1>, <order_column_2> <order_direction_2>"
// suitable for embedding into an SQL query.
// Example: for [{"a", "ASC"}, {"b", "DESC"}] returns "a ASC, b DESC".
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table ORDER BY %s", orderings.ToSQL())
func (o Orderings) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

// ParseSort builds Columns from a list of strings in the format
// "column asc|desc". Column aliases are resolved via ColumnMapping.
// Returns an error if an alias is not found in the mapping.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Columns, error) {
	ret := make(Columns, 0, len(stringsOrderings))
	aliases := lo.Keys(columnMapping)

	for _, stringOrdering := range stringsOrderings {
		cutStringOrdering := strings.Fields(stringOrdering)
		if len(cutStringOrdering) != 2 {
			return nil, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
		}

		columnAlias := cutStringOrdering[0]
		direction := Direction(strings.ToUpper(cutStringOrdering[1]))
		if !direction.Valid() {
			return nil, fmt.Errorf("invalid ordering direction '%s'", cutStringOrdering[1])
		}

		column, ok := columnMapping[columnAlias]
		if !ok || column.Name == "" {
			return nil, fmt.Errorf("invalid column alias. closest: '%s'", closestAlias(columnAlias, aliases))
		}

		column.Direction = direction
		ret = ret.with(column)
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	// Map iteration order is random; sort to keep ties deterministic.
	slices.Sort(dataSet)
	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
