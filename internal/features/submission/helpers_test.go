package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/audit"
	"agency-forms/internal/features/form"
	"agency-forms/internal/features/policy"
	"agency-forms/pkg/condition"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// vinTemplate has an auto-only required VIN and an unscoped applicant section.
func vinTemplate() *form.FormTemplate {
	return &form.FormTemplate{
		ID:             primitive.NewObjectID(),
		Name:           "Auto Application",
		LineOfBusiness: common_models.NewLOBSet(common_models.LOBAuto),
		IsActive:       true,
		Sections: []form.FormSection{
			{
				Name: "applicant", Label: "Applicant", SortOrder: 1,
				Fields: []form.FormField{
					{Name: "applicant_first_name", Label: "First Name", FieldType: form.FieldTypeText, SortOrder: 1},
					{Name: "applicant_last_name", Label: "Last Name", FieldType: form.FieldTypeText, SortOrder: 2},
					{Name: "policy_term", Label: "Policy Term", FieldType: form.FieldTypeSelect, SortOrder: 3,
						Options: []form.SelectOption{{Label: "12 Months", Value: "12"}}, DefaultValue: "12"},
					{Name: "has_losses", Label: "Prior Losses", FieldType: form.FieldTypeCheckbox, SortOrder: 4},
					{Name: "loss_description", Label: "Loss Description", FieldType: form.FieldTypeTextArea, SortOrder: 5,
						IsRequired:       true,
						ConditionalLogic: &form.ConditionalLogic{Field: "has_losses", Operator: condition.OpEquals, Value: true}},
				},
			},
			{
				Name: "vehicles", Label: "Vehicles", SortOrder: 2,
				LineOfBusiness: common_models.NewLOBSet(common_models.LOBAuto),
				Fields: []form.FormField{
					{Name: "veh1_vin", Label: "VIN", FieldType: form.FieldTypeVIN, IsRequired: true, SortOrder: 1,
						ValidationRules: form.ValidationRules{Pattern: `^[A-HJ-NPR-Z0-9]{17}$`}},
				},
			},
		},
	}
}

// memoryStore implements SubmissionRepository in memory.
type memoryStore struct {
	mu          sync.Mutex
	submissions map[primitive.ObjectID]FormSubmission
	inserts     int
	updates     int
	failWith    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{submissions: map[primitive.ObjectID]FormSubmission{}}
}

func (s *memoryStore) Insert(_ context.Context, sub *FormSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return apperrors.NewStorageError("insert form submission", s.failWith)
	}
	s.inserts++
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = fixedNow
	sub.UpdatedAt = fixedNow
	s.submissions[sub.ID] = *sub
	return nil
}

func (s *memoryStore) Update(_ context.Context, sub *FormSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return apperrors.NewStorageError("update form submission", s.failWith)
	}
	if _, ok := s.submissions[sub.ID]; !ok {
		return apperrors.NewSubmissionNotFound(sub.ID.Hex())
	}
	s.updates++
	sub.UpdatedAt = fixedNow
	s.submissions[sub.ID] = *sub
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*FormSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	sub, ok := s.submissions[oid]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (s *memoryStore) list(match func(FormSubmission) bool) []FormSubmission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []FormSubmission{}
	for _, sub := range s.submissions {
		if match(sub) {
			out = append(out, sub)
		}
	}
	return out
}

func (s *memoryStore) ListByTemplate(_ context.Context, templateID string) ([]FormSubmission, error) {
	return s.list(func(sub FormSubmission) bool { return sub.TemplateID.Hex() == templateID }), nil
}

func (s *memoryStore) ListByPolicy(_ context.Context, policyID string) ([]FormSubmission, error) {
	return s.list(func(sub FormSubmission) bool { return sub.PolicyID == policyID }), nil
}

func (s *memoryStore) ListByStatus(_ context.Context, status Status, _ int64) ([]FormSubmission, error) {
	return s.list(func(sub FormSubmission) bool { return sub.Status == status }), nil
}

func (s *memoryStore) MarkProcessed(_ context.Context, id primitive.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[id]
	if !ok || sub.Status != StatusSubmitted {
		return apperrors.NewSubmissionNotFound(id.Hex())
	}
	sub.Status = StatusProcessed
	sub.ProcessedAt = &at
	s.submissions[id] = sub
	return nil
}

func (s *memoryStore) ListPendingDelivery(_ context.Context, maxAttempts int, _ int64) ([]FormSubmission, error) {
	return s.list(func(sub FormSubmission) bool {
		return sub.Status == StatusSubmitted && (maxAttempts <= 0 || sub.ProcessAttempts < maxAttempts)
	}), nil
}

func (s *memoryStore) RecordProcessFailure(_ context.Context, id primitive.ObjectID, reason string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[id]
	if !ok || sub.Status != StatusSubmitted {
		return apperrors.NewSubmissionNotFound(id.Hex())
	}
	sub.ProcessAttempts++
	sub.LastProcessError = reason
	sub.UpdatedAt = at
	s.submissions[id] = sub
	return nil
}

type templateLookup map[string]*form.FormTemplate

func (l templateLookup) Create(context.Context, *form.FormTemplate) error { return errors.New("read only") }

func (l templateLookup) GetByID(_ context.Context, id string) (*form.FormTemplate, error) {
	if t, ok := l[id]; ok {
		return t, nil
	}
	return nil, apperrors.NewTemplateNotFound(id)
}

func (l templateLookup) List(context.Context, form.ListFilter) ([]form.FormTemplate, error) {
	return nil, nil
}

func (l templateLookup) UpdateMeta(context.Context, string, form.TemplateUpdate) error {
	return errors.New("read only")
}

func (l templateLookup) Delete(context.Context, string) error { return errors.New("read only") }

type policyLookup map[string]*policy.Policy

func (l policyLookup) GetByID(_ context.Context, id string) (*policy.Policy, error) {
	return l[id], nil
}

func (l policyLookup) GetByPolicyNumber(_ context.Context, number string) (*policy.Policy, error) {
	for _, p := range l {
		if p.PolicyNumber == number {
			return p, nil
		}
	}
	return nil, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Trigger(_ context.Context, event string, _ string, _ interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type recordingAudit struct {
	mu      sync.Mutex
	actions []common_models.AuditAction
	changes []map[string]common_models.Change
}

func (a *recordingAudit) LogChange(_ context.Context, action common_models.AuditAction, _ string, _ string, changes map[string]common_models.Change) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	a.changes = append(a.changes, changes)
	return nil
}

func (a *recordingAudit) ListLogs(context.Context, audit.Filter, int64, int64) ([]common_models.AuditLog, error) {
	return nil, nil
}
