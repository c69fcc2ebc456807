package seekpager

import (
	"fmt"
)

// BuildBoundary builds the predicate selecting the rows strictly past the
// reference values on the given scan:
//
//	(C1 ⊲ V1) OR (C1 = V1 AND C2 ⊲ V2) OR ... OR (C1 = V1 AND ... AND Cn ⊲ Vn)
//
// where ⊲ is > for ascending columns scanned Forward and descending columns
// scanned Backward, and < otherwise.
//
// With two or more columns an access predicate on the leading column
// ((C1 ⊲ V1) OR (C1 = V1)) is ANDed in front of the disjunction. It does not
// change the result set; it gives index-aware executors a range to seek on
// before evaluating the disjunction.
//
// values must be positionally aligned with columns.
func BuildBoundary(columns Columns, scan PaginationDirection, values []Value) (Predicate, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: empty column list", ErrConfiguration)
	}

	if !scan.Valid() {
		return nil, fmt.Errorf("%w: invalid scan direction %d", ErrConfiguration, int(scan))
	}

	if len(values) != len(columns) {
		return nil, fmt.Errorf(
			"%w: got %d values for %d columns",
			ErrTokenValueMismatch, len(values), len(columns),
		)
	}

	refs := make([]Value, len(values))
	for i := range columns {
		ref, err := columns[i].bind(values[i])
		if err != nil {
			return nil, err
		}

		refs[i] = ref
	}

	dnf := make(tDNF, 0, len(columns))
	for i := range columns {
		disjunct := make(tDisjunct, 0, i+1)
		for j := range i {
			disjunct = append(disjunct, equalTo(columns[j], refs[j]))
		}
		disjunct = append(disjunct, strictlyPast(scan, columns[i], refs[i]))

		dnf = append(dnf, disjunct)
	}

	boundary := dnf.toPredicate()
	if len(columns) == 1 {
		return boundary, nil
	}

	access := Or{
		Left:  strictlyPast(scan, columns[0], refs[0]),
		Right: equalTo(columns[0], refs[0]),
	}

	return And{Left: access, Right: boundary}, nil
}

func strictlyPast(scan PaginationDirection, column Column, ref Value) Compare {
	return Compare{
		Column:   column.Name,
		Operator: strictOperator(scan, column),
		Value:    ref,
		ThreeWay: !ref.Kind.NativelyOrdered(),
	}
}

func equalTo(column Column, ref Value) Compare {
	return Compare{
		Column:   column.Name,
		Operator: OperatorEQ,
		Value:    ref,
		ThreeWay: !ref.Kind.NativelyOrdered(),
	}
}

// bind checks a reference value against the column declaration and converts
// its nullability to the column's, so comparisons type-check on both sides.
// NULL references are rejected: a keyset boundary must be a concrete row.
func (c Column) bind(v Value) (Value, error) {
	if !v.Kind.Valid() {
		return Value{}, fmt.Errorf("%w: column '%s' got value of unknown kind %s", ErrTokenValueMismatch, c.Name, v.Kind)
	}

	if c.Kind != KindUnspecified && v.Kind != c.Kind {
		return Value{}, fmt.Errorf(
			"%w: column '%s' is %s, got %s",
			ErrTokenValueMismatch, c.Name, c.Kind, v.Kind,
		)
	}

	if v.IsNull() {
		return Value{}, fmt.Errorf("%w: column '%s' got NULL reference value", ErrTokenValueMismatch, c.Name)
	}

	if _, err := compareScalars(v.Kind, v.V, v.V); err != nil {
		return Value{}, fmt.Errorf("column '%s': %w", c.Name, err)
	}

	if v.Nullable != c.Nullable {
		v = v.WithNullable(c.Nullable)
	}

	return v, nil
}
