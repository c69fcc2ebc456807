package seekpager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_tDisjunct_toPredicate(t *testing.T) {
	a := Compare{Column: "a", Operator: OperatorEQ, Value: Value{Kind: KindInt, V: 1}}
	b := Compare{Column: "b", Operator: OperatorEQ, Value: Value{Kind: KindInt, V: 2}}
	c := Compare{Column: "c", Operator: OperatorGT, Value: Value{Kind: KindInt, V: 3}}

	tests := []struct {
		name     string
		disjunct tDisjunct
		expected Predicate
	}{
		{"empty disjunct", tDisjunct{}, nil},
		{"single conjunct", tDisjunct{c}, c},
		{"left nested", tDisjunct{a, b, c}, And{Left: And{Left: a, Right: b}, Right: c}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.disjunct.toPredicate())
		})
	}
}

func Test_tDNF_toPredicate(t *testing.T) {
	a := Compare{Column: "a", Operator: OperatorGT, Value: Value{Kind: KindInt, V: 1}}
	b := Compare{Column: "b", Operator: OperatorGT, Value: Value{Kind: KindInt, V: 2}}

	tests := []struct {
		name     string
		dnf      tDNF
		expected Predicate
	}{
		{"empty DNF", tDNF{}, nil},
		{"empty disjuncts are skipped", tDNF{{}, {a}, {}}, a},
		{"or chain", tDNF{{a}, {a, b}}, Or{Left: a, Right: And{Left: a, Right: b}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.dnf.toPredicate())
		})
	}
}
