package form

import (
	common_models "agency-forms/internal/common/models"
)

// RenderedField is the rendering contract for one visible field.
type RenderedField struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	FieldType   FieldType      `json:"field_type"`
	Widget      Widget         `json:"widget"`
	Placeholder string         `json:"placeholder,omitempty"`
	HelpText    string         `json:"help_text,omitempty"`
	Required    bool           `json:"required"`
	Options     []SelectOption `json:"options,omitempty"`
	GridCols    int            `json:"grid_cols"`
	Value       interface{}    `json:"value,omitempty"`
	Error       string         `json:"error,omitempty"`
}

type RenderedSection struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Collapsible bool            `json:"collapsible"`
	Expanded    bool            `json:"expanded"`
	Fields      []RenderedField `json:"fields"`
}

// Render lists the visible sections and fields of t for the given state.
// Sections without a displayable field are omitted.
func Render(t *FormTemplate, selected common_models.LOBSet, values map[string]interface{}, errs map[string]string) []RenderedSection {
	out := []RenderedSection{}
	if t == nil {
		return out
	}

	for _, section := range t.OrderedSections() {
		if !IsSectionVisible(&section, selected, values) {
			continue
		}
		rs := RenderedSection{
			Name:        section.Name,
			Label:       section.Label,
			Description: section.Description,
			Collapsible: section.IsCollapsible,
			Expanded:    !section.IsCollapsible || section.IsExpandedDefault,
		}
		for _, f := range VisibleFields(&section, selected, values) {
			info, _ := f.FieldType.Info()
			gridCols := f.GridCols
			if gridCols <= 0 {
				gridCols = 12
			}
			rs.Fields = append(rs.Fields, RenderedField{
				Name:        f.Name,
				Label:       f.Label,
				FieldType:   f.FieldType,
				Widget:      info.Widget,
				Placeholder: f.Placeholder,
				HelpText:    f.HelpText,
				Required:    f.IsRequired,
				Options:     f.Options,
				GridCols:    gridCols,
				Value:       values[f.Name],
				Error:       errs[f.Name],
			})
		}
		out = append(out, rs)
	}

	return out
}
