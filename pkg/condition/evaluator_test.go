package condition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		op       Operator
		actual   interface{}
		expected interface{}
		want     bool
	}{
		{"equals bool", OpEquals, true, true, true},
		{"equals bool vs string", OpEquals, "true", true, true},
		{"equals false vs true", OpEquals, false, true, false},
		{"equals unset", OpEquals, nil, true, false},
		{"equals numbers", OpEquals, "5", 5.0, true},
		{"equals is case sensitive", OpEquals, "YES", "yes", false},
		{"notEquals differing case", OpNotEquals, "no", "No", true},
		{"equals nil and empty", OpEquals, nil, "", true},
		{"notEquals", OpNotEquals, "home", "auto", true},
		{"notEquals unset", OpNotEquals, nil, "auto", true},
		{"contains substring", OpContains, "Commercial Auto", "Auto", true},
		{"contains number coerced", OpContains, 12345, "234", true},
		{"contains slice member", OpContains, []interface{}{"pool", "trampoline"}, "pool", true},
		{"contains slice element substring", OpContains, []interface{}{"trampoline"}, "tramp", true},
		{"contains string slice substring", OpContains, []string{"swimming pool"}, "pool", true},
		{"contains slice miss", OpContains, []string{"pool"}, "dog", false},
		{"contains nil", OpContains, nil, "x", false},
		{"greaterThan", OpGreaterThan, "3", 2, true},
		{"greaterThan currency", OpGreaterThan, "$250,000", 100000, true},
		{"greaterThan non numeric", OpGreaterThan, "abc", 2, false},
		{"lessThan", OpLessThan, json.Number("1"), 2, true},
		{"lessThan equal", OpLessThan, 2, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := Evaluate(tt.op, tt.actual, tt.expected)
			assert.True(t, known)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateUnknownOperator(t *testing.T) {
	_, known := Evaluate(Operator("matches"), "a", "a")
	assert.False(t, known)
	assert.False(t, Operator("matches").Known())
	for _, op := range Operators {
		assert.True(t, op.Known(), op)
	}
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(" $1,500.50 ")
	assert.True(t, ok)
	assert.Equal(t, 1500.5, f)

	_, ok = ToFloat("")
	assert.False(t, ok)

	_, ok = ToFloat(true)
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "100000", Stringify(100000.0))
	assert.Equal(t, "a, b", Stringify([]interface{}{"a", "b"}))
	assert.Equal(t, "false", Stringify(false))
}
