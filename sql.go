package seekpager

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

// GORMExpression lowers a predicate into a gorm clause expression. Nested
// chains of the same connective are flattened, so
//
//	((a = ? AND b = ?) AND c > ?)
//
// is rendered as a single "(a = ? AND b = ? AND c > ?)".
//
// IMPORTANT: The method uses the SQL placeholder "?". Column names are
// embedded as is; they are validated when the paginator is configured.
func GORMExpression(p Predicate) clause.Expression {
	switch pt := p.(type) {
	case Compare:
		sqlClause, arg := compareSQL(pt)
		return clause.Expr{
			SQL:  sqlClause,
			Vars: []any{arg},
		}
	case And:
		return clause.And(lo.Map(flattenAnd(pt), func(item Predicate, _ int) clause.Expression {
			return GORMExpression(item)
		})...)
	case Or:
		return clause.Or(lo.Map(flattenOr(pt), func(item Predicate, _ int) clause.Expression {
			return GORMExpression(item)
		})...)
	default:
		return nil
	}
}

// PredicateSQL converts a predicate into an SQL condition with "?"
// placeholders and the corresponding values. A nil predicate yields "TRUE".
//
// Example:
//
//	Or{Compare{id < 10}, And{Compare{id = 10}, Compare{name < "abc"}}}
//
// Result:
//
//	("(id < ? OR (id = ? AND name < ?))", [10, 10, "abc"])
//
// Usage:
//
//	where, args := seekpager.PredicateSQL(plan.Filter)
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", where)
func PredicateSQL(p Predicate) (string, []driver.Value) {
	if p == nil {
		return "TRUE", nil
	}

	var (
		sb   strings.Builder
		args []driver.Value
	)
	writePredicateSQL(&sb, &args, p)

	return sb.String(), args
}

func writePredicateSQL(sb *strings.Builder, args *[]driver.Value, p Predicate) {
	var (
		parts []Predicate
		glue  string
	)

	switch pt := p.(type) {
	case Compare:
		sqlClause, arg := compareSQL(pt)
		sb.WriteString(sqlClause)
		*args = append(*args, arg)
		return
	case And:
		parts, glue = flattenAnd(pt), " AND "
	case Or:
		parts, glue = flattenOr(pt), " OR "
	default:
		sb.WriteString("TRUE")
		return
	}

	sb.WriteByte('(')
	for i, part := range parts {
		if i > 0 {
			sb.WriteString(glue)
		}
		writePredicateSQL(sb, args, part)
	}
	sb.WriteByte(')')
}

// compareSQL converts a Compare of the form Operator(Column, Value) to an SQL
// condition of the form "Column Operator ?" with a corresponding value.
//
// Example:
//
//	Compare{Column: "id", Operator: ">", Value: 123}
//
// Result:
//
//	("id > ?", 123)
func compareSQL(c Compare) (string, driver.Value) {
	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), toDriverValue(c.Value)
}

// toDriverValue converts the scalar into one of the database/sql/driver base
// types. UUIDs go through their driver.Valuer and become strings.
func toDriverValue(v Value) driver.Value {
	if v.IsNull() {
		return nil
	}

	dv, err := driver.DefaultParameterConverter.ConvertValue(v.V)
	if err != nil {
		// uint64 above math.MaxInt64 and alike: let the driver decide.
		return v.V
	}

	return dv
}

func flattenAnd(a And) []Predicate {
	var ret []Predicate
	for _, side := range []Predicate{a.Left, a.Right} {
		if nested, ok := side.(And); ok {
			ret = append(ret, flattenAnd(nested)...)
			continue
		}
		ret = append(ret, side)
	}

	return ret
}

func flattenOr(o Or) []Predicate {
	var ret []Predicate
	for _, side := range []Predicate{o.Left, o.Right} {
		if nested, ok := side.(Or); ok {
			ret = append(ret, flattenOr(nested)...)
			continue
		}
		ret = append(ret, side)
	}

	return ret
}
