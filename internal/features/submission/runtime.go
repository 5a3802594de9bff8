package submission

import (
	"context"
	"time"

	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/form"
	"agency-forms/internal/features/policy"
	"agency-forms/internal/metrics"
)

// Store is the part of the submission repository the runtime writes through.
type Store interface {
	Insert(ctx context.Context, submission *FormSubmission) error
	Update(ctx context.Context, submission *FormSubmission) error
}

// Runtime holds the editing state of one form session: values, field errors and
// the selected lines of business. It is not safe for concurrent use.
type Runtime struct {
	template *form.FormTemplate
	store    Store
	now      func() time.Time

	values   map[string]interface{}
	errors   map[string]string
	selected common_models.LOBSet

	policyID string
	actor    string
	// record is the persisted submission once the session has been saved or resumed.
	record *FormSubmission
}

type Option func(*Runtime)

// WithClock overrides the time source used for submitted_at.
func WithClock(now func() time.Time) Option {
	return func(r *Runtime) { r.now = now }
}

// WithActor records who submits the form.
func WithActor(actor string) Option {
	return func(r *Runtime) { r.actor = actor }
}

// WithLinesOfBusiness sets the initial selection.
func WithLinesOfBusiness(set common_models.LOBSet) Option {
	return func(r *Runtime) { r.selected = set.Clone() }
}

// WithPolicy links the session to a policy and pre-fills applicant details from it.
// Values already present are kept.
func WithPolicy(p *policy.Policy) Option {
	return func(r *Runtime) {
		if p == nil {
			return
		}
		r.policyID = p.ID
		r.prefill(form.FieldApplicantFirstName, p.ClientFirstName)
		r.prefill(form.FieldApplicantLastName, p.ClientLastName)
		r.prefill(form.FieldApplicantEmail, p.ClientEmail)
		if p.ExpirationDate != nil {
			r.prefill(form.FieldExpirationDate, p.ExpirationDate.Format("2006-01-02"))
		}
	}
}

func NewRuntime(template *form.FormTemplate, store Store, opts ...Option) *Runtime {
	r := &Runtime{
		template: template,
		store:    store,
		now:      time.Now,
		values:   map[string]interface{}{},
		errors:   map[string]string{},
		selected: common_models.NewLOBSet(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResumeRuntime continues editing a stored draft. Saving or submitting updates that record.
func ResumeRuntime(template *form.FormTemplate, store Store, draft *FormSubmission, opts ...Option) (*Runtime, error) {
	if draft.Status != StatusDraft {
		return nil, apperrors.NewInvalidRequest("only draft submissions can be edited, this one is " + string(draft.Status))
	}

	r := NewRuntime(template, store, WithLinesOfBusiness(draft.LineOfBusiness))
	r.values = cloneData(draft.SubmissionData)
	r.policyID = draft.PolicyID
	stored := *draft
	r.record = &stored
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runtime) prefill(name string, value string) {
	if value == "" {
		return
	}
	if current, ok := r.values[name]; ok && current != nil && current != "" {
		return
	}
	r.values[name] = value
}

// ApplyDefaults seeds the default value of every field that has no value yet.
func (r *Runtime) ApplyDefaults() {
	for _, f := range r.template.Fields() {
		if f.DefaultValue == nil {
			continue
		}
		if _, ok := r.values[f.Name]; !ok {
			r.values[f.Name] = f.DefaultValue
		}
	}
}

// SetField stores a value and clears the field's error. Validation runs on submit.
func (r *Runtime) SetField(name string, value interface{}) {
	r.values[name] = value
	delete(r.errors, name)
}

// ToggleLOB adds or removes a line of business. Values of fields it hides are kept.
func (r *Runtime) ToggleLOB(lob common_models.LineOfBusiness) {
	r.selected.Toggle(lob)
}

func (r *Runtime) Values() map[string]interface{} { return cloneData(r.values) }

func (r *Runtime) Errors() map[string]string {
	out := make(map[string]string, len(r.errors))
	for k, v := range r.errors {
		out[k] = v
	}
	return out
}

func (r *Runtime) SelectedLOB() common_models.LOBSet { return r.selected.Clone() }

// Record returns the persisted submission, nil before the first save.
func (r *Runtime) Record() *FormSubmission { return r.record }

// Render returns the visible sections for the current state.
func (r *Runtime) Render() []form.RenderedSection {
	return form.Render(r.template, r.selected, r.values, r.errors)
}

// Submit validates the current values and persists a submitted record.
// On validation failure nothing is written and the field errors are returned.
func (r *Runtime) Submit(ctx context.Context) (*FormSubmission, error) {
	r.errors = form.Validate(r.template, r.selected, r.values)
	if len(r.errors) > 0 {
		metrics.SubmissionValidationFailures.Inc()
		return nil, apperrors.NewValidationFailed(r.Errors())
	}

	submittedAt := r.now()
	return r.persist(ctx, StatusSubmitted, &submittedAt)
}

// SaveDraft persists the current values without validating them.
func (r *Runtime) SaveDraft(ctx context.Context) (*FormSubmission, error) {
	return r.persist(ctx, StatusDraft, nil)
}

func (r *Runtime) persist(ctx context.Context, status Status, submittedAt *time.Time) (*FormSubmission, error) {
	next := &FormSubmission{
		TemplateID:     r.template.ID,
		PolicyID:       r.policyID,
		SubmissionData: cloneData(r.values),
		Status:         status,
		LineOfBusiness: r.selected.Clone(),
		SubmittedAt:    submittedAt,
	}
	if status == StatusSubmitted {
		next.SubmittedBy = r.actor
	}

	var err error
	if r.record == nil {
		err = r.store.Insert(ctx, next)
	} else {
		next.ID = r.record.ID
		next.CreatedAt = r.record.CreatedAt
		err = r.store.Update(ctx, next)
	}
	if err != nil {
		return nil, err
	}

	metrics.SubmissionsSaved.WithLabelValues(string(status)).Inc()
	r.record = next
	return next, nil
}
