package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	common_models "agency-forms/internal/common/models"
)

var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// CheckDefinition verifies that a template tree is well formed before it is stored.
func CheckDefinition(t *FormTemplate) error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("template name is required")
	}
	if err := checkLOBs(t.LineOfBusiness); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	names := make(map[string]string)
	for _, s := range t.Sections {
		if s.Name == "" {
			return errors.New("section name is required")
		}
		if err := checkLOBs(s.LineOfBusiness); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
		for _, f := range s.Fields {
			if !fieldNamePattern.MatchString(f.Name) {
				return fmt.Errorf("section %s: invalid field name %q", s.Name, f.Name)
			}
			if other, dup := names[f.Name]; dup {
				return fmt.Errorf("field %s is defined in both %s and %s", f.Name, other, s.Name)
			}
			names[f.Name] = s.Name

			info, ok := f.FieldType.Info()
			if !ok {
				return fmt.Errorf("field %s: unsupported field type %q", f.Name, f.FieldType)
			}
			if info.HasOptions && len(f.Options) == 0 {
				return fmt.Errorf("field %s: %s field needs at least one option", f.Name, f.FieldType)
			}
			if err := checkLOBs(f.LineOfBusiness); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
			if f.ConditionalLogic != nil {
				if f.ConditionalLogic.Field == "" {
					return fmt.Errorf("field %s: conditional logic needs a source field", f.Name)
				}
				if !f.ConditionalLogic.Operator.Known() {
					return fmt.Errorf("field %s: unsupported operator %q", f.Name, f.ConditionalLogic.Operator)
				}
			}
			if p := f.ValidationRules.Pattern; p != "" {
				if _, err := regexp.Compile(p); err != nil {
					return fmt.Errorf("field %s: invalid pattern: %w", f.Name, err)
				}
			}
		}
	}

	// Sources may live in any section, so they are resolved once every name is known.
	for _, s := range t.Sections {
		for _, f := range s.Fields {
			if f.ConditionalLogic == nil {
				continue
			}
			if _, ok := names[f.ConditionalLogic.Field]; !ok {
				return fmt.Errorf("field %s: condition refers to unknown field %q", f.Name, f.ConditionalLogic.Field)
			}
		}
	}
	return nil
}

func checkLOBs(set common_models.LOBSet) error {
	for l := range set {
		if !l.Valid() {
			return fmt.Errorf("unknown line of business %q", l)
		}
	}
	return nil
}
