// Package condition evaluates the conditional-visibility operators used by form fields.
package condition

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "notEquals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
)

// Operators is the complete operator vocabulary.
var Operators = []Operator{OpEquals, OpNotEquals, OpContains, OpGreaterThan, OpLessThan}

func (o Operator) Known() bool {
	switch o {
	case OpEquals, OpNotEquals, OpContains, OpGreaterThan, OpLessThan:
		return true
	}
	return false
}

// Evaluate applies op to the current value of a field and the configured value.
// known is false when op is not part of the vocabulary; callers decide the default.
func Evaluate(op Operator, actual, expected interface{}) (result bool, known bool) {
	switch op {
	case OpEquals:
		return Equal(actual, expected), true
	case OpNotEquals:
		return !Equal(actual, expected), true
	case OpContains:
		return contains(actual, expected), true
	case OpGreaterThan:
		a, okA := ToFloat(actual)
		b, okB := ToFloat(expected)
		return okA && okB && a > b, true
	case OpLessThan:
		a, okA := ToFloat(actual)
		b, okB := ToFloat(expected)
		return okA && okB && a < b, true
	default:
		return false, false
	}
}

// Equal compares loosely: numbers numerically, everything else by string form.
// nil and "" are equal to each other and to nothing else.
func Equal(a, b interface{}) bool {
	if isBlank(a) || isBlank(b) {
		return isBlank(a) && isBlank(b)
	}
	if fa, ok := ToFloat(a); ok {
		if fb, ok := ToFloat(b); ok {
			return fa == fb
		}
	}
	return Stringify(a) == Stringify(b)
}

// contains is a substring match on the string form. For lists any element may match.
func contains(actual, expected interface{}) bool {
	if actual == nil {
		return false
	}
	needle := Stringify(expected)
	switch v := actual.(type) {
	case []interface{}:
		for _, item := range v {
			if strings.Contains(Stringify(item), needle) {
				return true
			}
		}
		return false
	case []string:
		for _, item := range v {
			if strings.Contains(item, needle) {
				return true
			}
		}
		return false
	}
	return strings.Contains(Stringify(actual), needle)
}

// Stringify renders a submitted value the way it is shown to users.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ToFloat coerces numbers and numeric strings. Currency formatting ("$1,000") is accepted.
func ToFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(val)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
