package form

import (
	"context"
	"time"

	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/audit"
	"agency-forms/pkg/utils"

	"go.uber.org/zap"
)

const auditModule = "form_templates"

type TemplateService interface {
	CreateTemplate(ctx context.Context, template *FormTemplate) error
	BuildMasterTemplate(ctx context.Context, name string) (*FormTemplate, error)
	GetTemplate(ctx context.Context, id string) (*FormTemplate, error)
	ListTemplates(ctx context.Context, filter ListFilter) ([]FormTemplate, error)
	UpdateTemplate(ctx context.Context, id string, update TemplateUpdate) (*FormTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	RenderTemplate(ctx context.Context, id string, selected common_models.LOBSet, values map[string]interface{}) ([]RenderedSection, error)
	ValidateValues(ctx context.Context, id string, selected common_models.LOBSet, values map[string]interface{}) (map[string]string, error)
}

type TemplateServiceImpl struct {
	Repo         TemplateRepository
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewTemplateService(repo TemplateRepository, auditService audit.AuditService, logger *zap.Logger) TemplateService {
	return &TemplateServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *TemplateServiceImpl) CreateTemplate(ctx context.Context, template *FormTemplate) error {
	normalizeNames(template)
	if err := CheckDefinition(template); err != nil {
		return apperrors.NewInvalidRequest(err.Error())
	}

	if err := s.Repo.Create(ctx, template); err != nil {
		return err
	}

	s.audit(ctx, common_models.AuditActionCreate, template.ID.Hex(), map[string]common_models.Change{
		"template": {New: template.Name},
	})
	s.Logger.Info("Form template created",
		zap.String("template_id", template.ID.Hex()),
		zap.Int("sections", len(template.Sections)),
		zap.Int("fields", len(template.Fields())),
	)
	return nil
}

func (s *TemplateServiceImpl) BuildMasterTemplate(ctx context.Context, name string) (*FormTemplate, error) {
	template := BuildMasterTemplate(name, time.Now())
	if err := s.CreateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, id string) (*FormTemplate, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *TemplateServiceImpl) ListTemplates(ctx context.Context, filter ListFilter) ([]FormTemplate, error) {
	if filter.LineOfBusiness != "" && !filter.LineOfBusiness.Valid() {
		return nil, apperrors.NewInvalidRequest("unknown line of business " + string(filter.LineOfBusiness))
	}
	return s.Repo.List(ctx, filter)
}

func (s *TemplateServiceImpl) UpdateTemplate(ctx context.Context, id string, update TemplateUpdate) (*FormTemplate, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, apperrors.NewInvalidRequest("template name is required")
	}

	old, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateMeta(ctx, id, update); err != nil {
		return nil, err
	}
	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]common_models.Change{}
	if old.Name != updated.Name {
		changes["name"] = common_models.Change{Old: old.Name, New: updated.Name}
	}
	if old.Description != updated.Description {
		changes["description"] = common_models.Change{Old: old.Description, New: updated.Description}
	}
	if old.IsActive != updated.IsActive {
		changes["is_active"] = common_models.Change{Old: old.IsActive, New: updated.IsActive}
	}
	if len(changes) > 0 {
		s.audit(ctx, common_models.AuditActionUpdate, id, changes)
	}
	return updated, nil
}

func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, common_models.AuditActionDelete, id, nil)
	return nil
}

func (s *TemplateServiceImpl) RenderTemplate(ctx context.Context, id string, selected common_models.LOBSet, values map[string]interface{}) ([]RenderedSection, error) {
	template, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return Render(template, selected, values, nil), nil
}

func (s *TemplateServiceImpl) ValidateValues(ctx context.Context, id string, selected common_models.LOBSet, values map[string]interface{}) (map[string]string, error) {
	template, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return Validate(template, selected, values), nil
}

func (s *TemplateServiceImpl) audit(ctx context.Context, action common_models.AuditAction, id string, changes map[string]common_models.Change) {
	if s.AuditService == nil {
		return
	}
	if err := s.AuditService.LogChange(ctx, action, auditModule, id, changes); err != nil {
		s.Logger.Warn("Failed to write audit log", zap.String("template_id", id), zap.Error(err))
	}
}

// normalizeNames derives missing section and field names from their labels.
func normalizeNames(t *FormTemplate) {
	for i := range t.Sections {
		s := &t.Sections[i]
		if s.Name == "" {
			s.Name = utils.FieldKey(s.Label)
		}
		for j := range s.Fields {
			if s.Fields[j].Name == "" {
				s.Fields[j].Name = utils.FieldKey(s.Fields[j].Label)
			}
		}
	}
}
