package form

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"unicode/utf8"

	common_models "agency-forms/internal/common/models"
	"agency-forms/pkg/condition"
)

const invalidFormatMessage = "Invalid format"

var patternCache sync.Map // pattern string -> *regexp.Regexp, nil when it does not compile

// Validate checks required fields and validation rules of every visible field.
// Each field gets at most one message; when several rules fail the last one evaluated wins.
func Validate(t *FormTemplate, selected common_models.LOBSet, values map[string]interface{}) map[string]string {
	errs := make(map[string]string)
	if t == nil {
		return errs
	}

	for _, section := range t.OrderedSections() {
		if !LOBGate(section.LineOfBusiness, selected) {
			continue
		}
		for _, field := range section.OrderedFields() {
			if !IsFieldVisible(&field, selected, values) {
				continue
			}
			if msg := validateField(&field, values[field.Name]); msg != "" {
				errs[field.Name] = msg
			}
		}
	}

	return errs
}

func validateField(f *FormField, value interface{}) string {
	var msg string

	if IsEmptyValue(f, value) {
		if f.IsRequired && !hasEmptyChoices(f) {
			msg = fmt.Sprintf("%s is required", f.Label)
		}
		return msg
	}

	rules := f.ValidationRules
	text := condition.Stringify(value)
	length := utf8.RuneCountInString(text)

	if rules.MinLength != nil && length < *rules.MinLength {
		msg = fmt.Sprintf("%s must be at least %d characters", f.Label, *rules.MinLength)
	}
	if rules.MaxLength != nil && length > *rules.MaxLength {
		msg = fmt.Sprintf("%s must be at most %d characters", f.Label, *rules.MaxLength)
	}
	if rules.Min != nil || rules.Max != nil {
		if n, ok := condition.ToFloat(value); ok {
			if rules.Min != nil && n < *rules.Min {
				msg = fmt.Sprintf("%s must be at least %s", f.Label, formatNumber(*rules.Min))
			}
			if rules.Max != nil && n > *rules.Max {
				msg = fmt.Sprintf("%s must be at most %s", f.Label, formatNumber(*rules.Max))
			}
		}
	}
	if rules.Pattern != "" {
		if re := compilePattern(rules.Pattern); re != nil && !re.MatchString(text) {
			msg = rules.PatternMessage
			if msg == "" {
				msg = invalidFormatMessage
			}
		}
	}

	return msg
}

// IsEmptyValue reports whether value counts as not provided for f.
// An unchecked checkbox counts as empty.
func IsEmptyValue(f *FormField, value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case bool:
		return !v && f.FieldType == FieldTypeCheckbox
	}
	return false
}

// hasEmptyChoices is true for option-based fields configured without options,
// which cannot be answered and are therefore never required.
func hasEmptyChoices(f *FormField) bool {
	info, ok := f.FieldType.Info()
	return ok && info.HasOptions && len(f.Options) == 0
}

func compilePattern(pattern string) *regexp.Regexp {
	if cached, ok := patternCache.Load(pattern); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		patternCache.Store(pattern, (*regexp.Regexp)(nil))
		return nil
	}
	patternCache.Store(pattern, re)
	return re
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
