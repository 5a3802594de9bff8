package submission

import (
	"context"

	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/audit"
	"agency-forms/internal/features/form"
	"agency-forms/internal/features/policy"
	"agency-forms/internal/features/webhook"
	"agency-forms/pkg/utils"

	"go.uber.org/zap"
)

const auditModule = "form_submissions"

// Notifier announces submission lifecycle events to the automation platform.
type Notifier interface {
	Trigger(ctx context.Context, event string, recordID string, data interface{})
}

type SubmissionService interface {
	Create(ctx context.Context, templateID string, req SaveRequest) (*FormSubmission, error)
	Resume(ctx context.Context, id string, req SaveRequest) (*FormSubmission, error)
	Get(ctx context.Context, id string) (*FormSubmission, error)
	List(ctx context.Context, filter ListFilter) ([]FormSubmission, error)
}

type SubmissionServiceImpl struct {
	Repo         SubmissionRepository
	Templates    form.TemplateRepository
	Policies     policy.PolicyRepository
	AuditService audit.AuditService
	Notifier     Notifier
	Logger       *zap.Logger
}

func NewSubmissionService(
	repo SubmissionRepository,
	templates form.TemplateRepository,
	policies policy.PolicyRepository,
	auditService audit.AuditService,
	notifier webhook.WebhookService,
	logger *zap.Logger,
) SubmissionService {
	return &SubmissionServiceImpl{
		Repo:         repo,
		Templates:    templates,
		Policies:     policies,
		AuditService: auditService,
		Notifier:     notifier,
		Logger:       logger,
	}
}

func (s *SubmissionServiceImpl) Create(ctx context.Context, templateID string, req SaveRequest) (*FormSubmission, error) {
	if err := checkAction(req.Action); err != nil {
		return nil, err
	}

	template, err := s.Templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithActor(utils.ActorID(ctx)), WithLinesOfBusiness(req.LineOfBusiness)}
	if req.PolicyID != "" {
		p, err := s.Policies.GetByID(ctx, req.PolicyID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperrors.NewInvalidRequest("policy " + req.PolicyID + " not found")
		}
		opts = append(opts, WithPolicy(p))
	}

	rt := NewRuntime(template, s.Repo, opts...)
	for name, value := range req.Values {
		rt.SetField(name, value)
	}
	rt.ApplyDefaults()

	return s.save(ctx, rt, req.Action)
}

func (s *SubmissionServiceImpl) Resume(ctx context.Context, id string, req SaveRequest) (*FormSubmission, error) {
	if err := checkAction(req.Action); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	template, err := s.Templates.GetByID(ctx, existing.TemplateID.Hex())
	if err != nil {
		return nil, err
	}

	opts := []Option{WithActor(utils.ActorID(ctx))}
	if req.LineOfBusiness != nil {
		opts = append(opts, WithLinesOfBusiness(req.LineOfBusiness))
	}
	rt, err := ResumeRuntime(template, s.Repo, existing, opts...)
	if err != nil {
		return nil, err
	}
	for name, value := range req.Values {
		rt.SetField(name, value)
	}

	return s.save(ctx, rt, req.Action)
}

func (s *SubmissionServiceImpl) save(ctx context.Context, rt *Runtime, action Action) (*FormSubmission, error) {
	if action != ActionSubmit {
		return rt.SaveDraft(ctx)
	}

	// A session with no stored record is created and submitted in one step, so it has no old status.
	status := common_models.Change{New: string(StatusSubmitted)}
	if prior := rt.Record(); prior != nil {
		status.Old = string(prior.Status)
	}

	record, err := rt.Submit(ctx)
	if err != nil {
		return nil, err
	}

	if s.AuditService != nil {
		if err := s.AuditService.LogChange(ctx, common_models.AuditActionSubmit, auditModule, record.ID.Hex(), map[string]common_models.Change{
			"status": status,
		}); err != nil {
			s.Logger.Warn("Failed to write audit log", zap.String("submission_id", record.ID.Hex()), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		s.Notifier.Trigger(ctx, webhook.EventSubmissionSubmitted, record.ID.Hex(), record)
	}

	s.Logger.Info("Form submitted",
		zap.String("submission_id", record.ID.Hex()),
		zap.String("template_id", record.TemplateID.Hex()),
		zap.Strings("line_of_business", record.LineOfBusiness.Strings()),
	)
	return record, nil
}

func (s *SubmissionServiceImpl) Get(ctx context.Context, id string) (*FormSubmission, error) {
	submission, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperrors.NewSubmissionNotFound(id)
	}
	return submission, nil
}

func (s *SubmissionServiceImpl) List(ctx context.Context, filter ListFilter) ([]FormSubmission, error) {
	switch {
	case filter.TemplateID != "":
		return s.Repo.ListByTemplate(ctx, filter.TemplateID)
	case filter.PolicyID != "":
		return s.Repo.ListByPolicy(ctx, filter.PolicyID)
	case filter.Status != "":
		if !filter.Status.Valid() {
			return nil, apperrors.NewInvalidRequest("unknown status " + string(filter.Status))
		}
		return s.Repo.ListByStatus(ctx, filter.Status, 100)
	}
	return nil, apperrors.NewInvalidRequest("template_id, policy_id or status is required")
}

func checkAction(action Action) error {
	switch action {
	case ActionDraft, ActionSubmit:
		return nil
	}
	return apperrors.NewInvalidRequest(`action must be "draft" or "submit"`)
}
