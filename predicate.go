package seekpager

import (
	"fmt"
)

// Predicate is a backend independent boolean filter over one row type. It is
// a closed set of nodes: Compare, And and Or. Executors lower it into their
// native query form (see GORMExpression, PredicateSQL and Eval).
type Predicate interface {
	fmt.Stringer
	isPredicate()
}

type (
	// Compare is the leaf "Column Operator Value".
	//
	// ThreeWay is set for kinds that are not natively ordered (see
	// Kind.NativelyOrdered). Such a node means "compare(Column, Value)
	// Operator 0": backends without native ordering for the kind must go
	// through a three-way comparator. SQL backends order these kinds
	// natively and may ignore the flag.
	Compare struct {
		Column   string
		Operator Operator
		Value    Value
		ThreeWay bool
	}

	And struct {
		Left, Right Predicate
	}

	Or struct {
		Left, Right Predicate
	}
)

func (Compare) isPredicate() {}
func (And) isPredicate()     {}
func (Or) isPredicate()      {}

// String - implements fmt.Stringer.
func (c Compare) String() string {
	if c.ThreeWay {
		return fmt.Sprintf("compare(%s, %s) %s 0", c.Column, c.Value, c.Operator)
	}

	return fmt.Sprintf("%s %s %s", c.Column, c.Operator, c.Value)
}

// String - implements fmt.Stringer.
func (a And) String() string {
	return fmt.Sprintf("(%s AND %s)", a.Left, a.Right)
}

// String - implements fmt.Stringer.
func (o Or) String() string {
	return fmt.Sprintf("(%s OR %s)", o.Left, o.Right)
}

// Eval evaluates p against a row in memory. Comparisons involving NULL are
// false, as in SQL. A nil predicate matches every row.
func Eval[T any](p Predicate, row T, accessor Accessor[T]) (bool, error) {
	switch pt := p.(type) {
	case nil:
		return true, nil
	case Compare:
		return evalCompare(pt, row, accessor)
	case And:
		ok, err := Eval(pt.Left, row, accessor)
		if err != nil || !ok {
			return false, err
		}
		return Eval(pt.Right, row, accessor)
	case Or:
		ok, err := Eval(pt.Left, row, accessor)
		if err != nil || ok {
			return ok, err
		}
		return Eval(pt.Right, row, accessor)
	default:
		return false, fmt.Errorf("unsupported predicate node %T", p)
	}
}

func evalCompare[T any](c Compare, row T, accessor Accessor[T]) (bool, error) {
	rowValue, err := accessor.Value(row, c.Column)
	if err != nil {
		return false, err
	}

	if rowValue.IsNull() || c.Value.IsNull() {
		return false, nil
	}

	if rowValue.Kind != c.Value.Kind {
		return false, fmt.Errorf(
			"%w: column '%s' holds %s, boundary holds %s",
			ErrTokenValueMismatch, c.Column, rowValue.Kind, c.Value.Kind,
		)
	}

	var res int
	if c.ThreeWay {
		res, err = rowValue.Compare(c.Value)
	} else {
		res, err = compareScalars(rowValue.Kind, rowValue.V, c.Value.V)
	}
	if err != nil {
		return false, err
	}

	return c.Operator.holds(res), nil
}

var (
	_ Predicate = Compare{}
	_ Predicate = And{}
	_ Predicate = Or{}
)
