package form

import (
	common_models "agency-forms/internal/common/models"
	"agency-forms/pkg/condition"
)

// LOBGate passes when scope is empty or shares a line of business with selected.
func LOBGate(scope, selected common_models.LOBSet) bool {
	return len(scope) == 0 || scope.Intersects(selected)
}

// ConditionGate evaluates a field's conditional logic against the current values.
// Unknown operators leave the field visible.
func ConditionGate(logic *ConditionalLogic, values map[string]interface{}) bool {
	if logic == nil || logic.Field == "" {
		return true
	}
	result, known := condition.Evaluate(logic.Operator, values[logic.Field], logic.Value)
	if !known {
		return true
	}
	return result
}

// IsFieldVisible combines the LOB gate and the conditional gate.
func IsFieldVisible(f *FormField, selected common_models.LOBSet, values map[string]interface{}) bool {
	return LOBGate(f.LineOfBusiness, selected) && ConditionGate(f.ConditionalLogic, values)
}

// IsSectionVisible requires the section's LOB gate and at least one visible field.
func IsSectionVisible(s *FormSection, selected common_models.LOBSet, values map[string]interface{}) bool {
	if !LOBGate(s.LineOfBusiness, selected) {
		return false
	}
	for i := range s.Fields {
		if IsFieldVisible(&s.Fields[i], selected, values) {
			return true
		}
	}
	return false
}

// VisibleFields returns the section's displayable fields in order.
func VisibleFields(s *FormSection, selected common_models.LOBSet, values map[string]interface{}) []FormField {
	var out []FormField
	for _, f := range s.OrderedFields() {
		if IsFieldVisible(&f, selected, values) {
			out = append(out, f)
		}
	}
	return out
}
