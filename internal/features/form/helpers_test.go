package form

import (
	"context"
	"sync"

	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/audit"
	"agency-forms/pkg/condition"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func lobs(l ...common_models.LineOfBusiness) common_models.LOBSet {
	return common_models.NewLOBSet(l...)
}

func intPtr(n int) *int { return &n }

// quoteTemplate is a small template with an unscoped applicant section,
// an auto-only vehicle section and an underwriting section with conditional logic.
func quoteTemplate() *FormTemplate {
	return &FormTemplate{
		Name:           "Quote",
		LineOfBusiness: lobs(common_models.LOBAuto, common_models.LOBHome),
		IsActive:       true,
		Sections: []FormSection{
			{
				Name:      "underwriting",
				Label:     "Underwriting",
				SortOrder: 30,
				Fields: []FormField{
					{Name: "has_losses", Label: "Prior Losses", FieldType: FieldTypeCheckbox, SortOrder: 1},
					{
						Name: "loss_description", Label: "Loss Description", FieldType: FieldTypeTextArea, SortOrder: 2,
						IsRequired:       true,
						ConditionalLogic: &ConditionalLogic{Field: "has_losses", Operator: condition.OpEquals, Value: true},
					},
				},
			},
			{
				Name:      "applicant",
				Label:     "Applicant",
				SortOrder: 10,
				Fields: []FormField{
					{Name: "applicant_first_name", Label: "First Name", FieldType: FieldTypeText, IsRequired: true, SortOrder: 1},
					{
						Name: "applicant_zip", Label: "ZIP", FieldType: FieldTypeText, SortOrder: 2,
						ValidationRules: ValidationRules{Pattern: `^\d{5}$`},
					},
				},
			},
			{
				Name:           "vehicles",
				Label:          "Vehicles",
				SortOrder:      20,
				LineOfBusiness: lobs(common_models.LOBAuto),
				Fields: []FormField{
					{
						Name: "veh1_vin", Label: "VIN", FieldType: FieldTypeVIN, IsRequired: true, SortOrder: 1,
						ValidationRules: ValidationRules{Pattern: vinPattern, PatternMessage: "VIN must be exactly 17 characters"},
					},
				},
			},
		},
	}
}

// memoryRepo is an in-memory TemplateRepository.
type memoryRepo struct {
	mu        sync.Mutex
	templates map[string]*FormTemplate
	gets      int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{templates: map[string]*FormTemplate{}}
}

func (r *memoryRepo) Create(_ context.Context, t *FormTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	for i := range t.Sections {
		t.Sections[i].ID = primitive.NewObjectID()
		t.Sections[i].TemplateID = t.ID
		for j := range t.Sections[i].Fields {
			t.Sections[i].Fields[j].ID = primitive.NewObjectID()
			t.Sections[i].Fields[j].SectionID = t.Sections[i].ID
		}
	}
	copied := *t
	r.templates[t.ID.Hex()] = &copied
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*FormTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	t, ok := r.templates[id]
	if !ok {
		return nil, apperrors.NewTemplateNotFound(id)
	}
	copied := *t
	return &copied, nil
}

func (r *memoryRepo) List(_ context.Context, filter ListFilter) ([]FormTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []FormTemplate{}
	for _, t := range r.templates {
		if filter.ActiveOnly && !t.IsActive {
			continue
		}
		if filter.LineOfBusiness != "" && !t.LineOfBusiness.Has(filter.LineOfBusiness) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *memoryRepo) UpdateMeta(_ context.Context, id string, update TemplateUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return apperrors.NewTemplateNotFound(id)
	}
	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.IsActive != nil {
		t.IsActive = *update.IsActive
	}
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return apperrors.NewTemplateNotFound(id)
	}
	delete(r.templates, id)
	return nil
}

// recordingAudit collects audit entries.
type recordingAudit struct {
	mu      sync.Mutex
	actions []common_models.AuditAction
}

func (a *recordingAudit) LogChange(_ context.Context, action common_models.AuditAction, _ string, _ string, _ map[string]common_models.Change) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) ListLogs(context.Context, audit.Filter, int64, int64) ([]common_models.AuditLog, error) {
	return nil, nil
}
