package export

import (
	"context"
	"sync"
	"time"

	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/email"
	"agency-forms/internal/features/form"
	"agency-forms/internal/features/policy"
	"agency-forms/internal/features/submission"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return "uid-" + string(rune('0'+n))
	}
}

func newTestXML() *XMLGenerator {
	return &XMLGenerator{NewID: sequentialIDs(), Now: fixedClock}
}

func newTestPDF() *PDFGenerator {
	return &PDFGenerator{Agency: Agency{Name: "Main Street Insurance", Phone: "555-0100"}, Now: fixedClock}
}

func templateFor(lobs ...common_models.LineOfBusiness) *form.FormTemplate {
	return &form.FormTemplate{
		ID:             primitive.NewObjectID(),
		Name:           "Quote Request",
		LineOfBusiness: common_models.NewLOBSet(lobs...),
		Sections: []form.FormSection{{
			Name: "applicant", Label: "Applicant", SortOrder: 1,
			Fields: []form.FormField{
				{Name: form.FieldApplicantFirstName, Label: "First Name", FieldType: form.FieldTypeText, SortOrder: 1},
				{Name: form.FieldApplicantLastName, Label: "Last Name", FieldType: form.FieldTypeText, SortOrder: 2},
			},
		}},
	}
}

func sourceFor(data map[string]interface{}, lobs ...common_models.LineOfBusiness) Source {
	tmpl := templateFor(lobs...)
	submittedAt := fixedNow
	return Source{
		Submission: &submission.FormSubmission{
			ID:             primitive.NewObjectID(),
			TemplateID:     tmpl.ID,
			PolicyID:       "p-1",
			SubmissionData: data,
			Status:         submission.StatusSubmitted,
			SubmittedAt:    &submittedAt,
		},
		Template: tmpl,
		Policy:   &policy.Policy{ID: "p-1", PolicyNumber: "POL-1", AgentEmail: "agent@agency.test", AgentFirstName: "Sam", AgentLastName: "Agent"},
	}
}

type stubSubmissions struct {
	submission.SubmissionRepository
	items map[string]*submission.FormSubmission
}

func (s *stubSubmissions) Get(_ context.Context, id string) (*submission.FormSubmission, error) {
	return s.items[id], nil
}

func (s *stubSubmissions) ListByTemplate(_ context.Context, templateID string) ([]submission.FormSubmission, error) {
	var out []submission.FormSubmission
	for _, sub := range s.items {
		if sub.TemplateID.Hex() == templateID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

type stubTemplates struct {
	form.TemplateRepository
	items map[string]*form.FormTemplate
}

func (s *stubTemplates) GetByID(_ context.Context, id string) (*form.FormTemplate, error) {
	if t, ok := s.items[id]; ok {
		return t, nil
	}
	return nil, apperrors.NewTemplateNotFound(id)
}

type stubPolicies map[string]*policy.Policy

func (s stubPolicies) GetByID(_ context.Context, id string) (*policy.Policy, error) {
	return s[id], nil
}

func (s stubPolicies) GetByPolicyNumber(context.Context, string) (*policy.Policy, error) {
	return nil, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []*email.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg *email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}
