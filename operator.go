package seekpager

// Operator defines a comparison operator used in boundary predicates.
type Operator string

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"
	OperatorEQ Operator = "="
)

func (o Operator) Valid() bool {
	return o == OperatorGT || o == OperatorLT || o == OperatorEQ
}

// holds reports whether the result of a three-way comparison satisfies the
// operator against zero.
func (o Operator) holds(c int) bool {
	switch o {
	case OperatorGT:
		return c > 0
	case OperatorLT:
		return c < 0
	case OperatorEQ:
		return c == 0
	default:
		return false
	}
}

// isGreaterThan tells whether rows following the boundary on the given scan
// have a greater value in the column than the reference: ascending columns
// scanned Forward and descending columns scanned Backward.
func isGreaterThan(scan PaginationDirection, column Column) bool {
	return (column.Direction == DirectionASC) == (scan == Forward)
}

// strictOperator returns the operator selecting rows strictly past the
// reference value of the column on the given scan.
func strictOperator(scan PaginationDirection, column Column) Operator {
	if isGreaterThan(scan, column) {
		return OperatorGT
	}

	return OperatorLT
}
