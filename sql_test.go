package seekpager

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func Test_compareSQL(t *testing.T) {
	timeNow := time.Now().UTC()
	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")

	tests := []struct {
		name    string
		compare Compare
		wantSQL string
		wantVar driver.Value
	}{
		{
			name:    "string less than",
			compare: Compare{Column: "name", Operator: OperatorLT, Value: Value{Kind: KindString, V: "abc"}, ThreeWay: true},
			wantSQL: "name < ?",
			wantVar: "abc",
		},
		{
			name:    "timestamp greater than",
			compare: Compare{Column: "created_at", Operator: OperatorGT, Value: Value{Kind: KindTime, V: timeNow}},
			wantSQL: "created_at > ?",
			wantVar: timeNow,
		},
		{
			name:    "integer widened",
			compare: Compare{Column: "id", Operator: OperatorEQ, Value: Value{Kind: KindInt32, V: int32(10)}},
			wantSQL: "id = ?",
			wantVar: int64(10),
		},
		{
			name:    "uuid through its valuer",
			compare: Compare{Column: "t.uid", Operator: OperatorGT, Value: Value{Kind: KindUUID, V: id}, ThreeWay: true},
			wantSQL: "t.uid > ?",
			wantVar: id.String(),
		},
		{
			name:    "huge uint64 passed as is",
			compare: Compare{Column: "seq", Operator: OperatorGT, Value: Value{Kind: KindUint64, V: uint64(1 << 63)}},
			wantSQL: "seq > ?",
			wantVar: uint64(1 << 63),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotVar := compareSQL(tt.compare)
			require.Equal(t, tt.wantSQL, gotSQL)
			require.Equal(t, tt.wantVar, gotVar)
		})
	}
}

func Test_PredicateSQL(t *testing.T) {
	id10 := Value{Kind: KindInt, V: 10}
	abc := Value{Kind: KindString, V: "abc"}

	tests := []struct {
		name      string
		predicate Predicate
		wantSQL   string
		wantArgs  []driver.Value
	}{
		{
			name:      "nil matches everything",
			predicate: nil,
			wantSQL:   "TRUE",
		},
		{
			name:      "single compare has no parentheses",
			predicate: Compare{Column: "id", Operator: OperatorGT, Value: id10},
			wantSQL:   "id > ?",
			wantArgs:  []driver.Value{int64(10)},
		},
		{
			name: "or of and",
			predicate: Or{
				Left: Compare{Column: "id", Operator: OperatorLT, Value: id10},
				Right: And{
					Left:  Compare{Column: "id", Operator: OperatorEQ, Value: id10},
					Right: Compare{Column: "name", Operator: OperatorLT, Value: abc},
				},
			},
			wantSQL:  "(id < ? OR (id = ? AND name < ?))",
			wantArgs: []driver.Value{int64(10), int64(10), "abc"},
		},
		{
			name: "nested chains are flattened",
			predicate: Or{
				Left: Or{
					Left:  Compare{Column: "a", Operator: OperatorGT, Value: id10},
					Right: Compare{Column: "b", Operator: OperatorGT, Value: id10},
				},
				Right: And{
					Left: And{
						Left:  Compare{Column: "a", Operator: OperatorEQ, Value: id10},
						Right: Compare{Column: "b", Operator: OperatorEQ, Value: id10},
					},
					Right: Compare{Column: "c", Operator: OperatorGT, Value: abc},
				},
			},
			wantSQL:  "(a > ? OR b > ? OR (a = ? AND b = ? AND c > ?))",
			wantArgs: []driver.Value{int64(10), int64(10), int64(10), int64(10), "abc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := PredicateSQL(tt.predicate)
			require.Equal(t, tt.wantSQL, gotSQL)
			require.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}

func Test_GORMExpression(t *testing.T) {
	a := Compare{Column: "a", Operator: OperatorGT, Value: Value{Kind: KindInt, V: 1}}
	b := Compare{Column: "b", Operator: OperatorEQ, Value: Value{Kind: KindInt, V: 2}}
	c := Compare{Column: "c", Operator: OperatorLT, Value: Value{Kind: KindInt, V: 3}}

	t.Run("compare", func(t *testing.T) {
		require.Equal(t, clause.Expr{SQL: "a > ?", Vars: []any{int64(1)}}, GORMExpression(a))
	})

	t.Run("and chain", func(t *testing.T) {
		got, ok := GORMExpression(And{Left: And{Left: a, Right: b}, Right: c}).(clause.AndConditions)
		require.True(t, ok)
		require.Len(t, got.Exprs, 3)
	})

	t.Run("or of and", func(t *testing.T) {
		got, ok := GORMExpression(Or{Left: a, Right: And{Left: b, Right: c}}).(clause.OrConditions)
		require.True(t, ok)
		require.Len(t, got.Exprs, 2)
		require.IsType(t, clause.Expr{}, got.Exprs[0])
		require.IsType(t, clause.AndConditions{}, got.Exprs[1])
	})

	t.Run("nil", func(t *testing.T) {
		require.Nil(t, GORMExpression(nil))
	})
}
