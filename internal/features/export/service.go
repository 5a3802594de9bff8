package export

import (
	"context"
	"fmt"
	"time"

	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/audit"
	"agency-forms/internal/features/email"
	"agency-forms/internal/features/form"
	"agency-forms/internal/features/policy"
	"agency-forms/internal/features/submission"
	"agency-forms/internal/metrics"

	"go.uber.org/zap"
)

const auditModule = "form_submissions"

type ExportService interface {
	Export(ctx context.Context, req ExportRequest) (*Document, error)
	Load(ctx context.Context, submissionID string) (*Source, error)
	RenderXML(src Source) (string, error)
	RenderPDF(src Source) ([]byte, error)
	ExportSubmissions(ctx context.Context, templateID string) ([]byte, string, error)
}

type ExportServiceImpl struct {
	Submissions  submission.SubmissionRepository
	Templates    form.TemplateRepository
	Policies     policy.PolicyRepository
	XML          *XMLGenerator
	PDF          *PDFGenerator
	Mailer       email.EmailService
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewExportService(
	submissions submission.SubmissionRepository,
	templates form.TemplateRepository,
	policies policy.PolicyRepository,
	pdf *PDFGenerator,
	mailer email.EmailService,
	auditService audit.AuditService,
	logger *zap.Logger,
) ExportService {
	return &ExportServiceImpl{
		Submissions:  submissions,
		Templates:    templates,
		Policies:     policies,
		XML:          NewXMLGenerator(),
		PDF:          pdf,
		Mailer:       mailer,
		AuditService: auditService,
		Logger:       logger,
	}
}

// Load gathers the submission, its template and the linked policy. A policy
// id that no longer resolves exports without policy details.
func (s *ExportServiceImpl) Load(ctx context.Context, submissionID string) (*Source, error) {
	sub, err := s.Submissions.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperrors.NewSubmissionNotFound(submissionID)
	}

	template, err := s.Templates.GetByID(ctx, sub.TemplateID.Hex())
	if err != nil {
		return nil, err
	}

	src := &Source{Submission: sub, Template: template}
	if sub.PolicyID != "" {
		p, err := s.Policies.GetByID(ctx, sub.PolicyID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			s.Logger.Warn("Linked policy not found", zap.String("submission_id", submissionID), zap.String("policy_id", sub.PolicyID))
		}
		src.Policy = p
	}
	return src, nil
}

func (s *ExportServiceImpl) RenderXML(src Source) (xml string, err error) {
	defer observe(FormatXML, time.Now(), &err)
	defer recoverExport(FormatXML, &err)
	return s.XML.Generate(src), nil
}

func (s *ExportServiceImpl) RenderPDF(src Source) (out []byte, err error) {
	defer observe(FormatPDF, time.Now(), &err)
	defer recoverExport(FormatPDF, &err)
	out, err = s.PDF.Generate(src)
	if err != nil {
		return nil, apperrors.NewExportError(string(FormatPDF), err)
	}
	return out, nil
}

func (s *ExportServiceImpl) Export(ctx context.Context, req ExportRequest) (*Document, error) {
	if req.SubmissionID == "" {
		return nil, apperrors.NewInvalidRequest("submissionId is required")
	}
	if req.Format == "" {
		req.Format = FormatXML
	}
	if !req.Format.Valid() {
		return nil, apperrors.NewInvalidRequest(fmt.Sprintf("unsupported format %q", req.Format))
	}

	src, err := s.Load(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}

	doc := &Document{Format: req.Format}
	switch req.Format {
	case FormatPDF:
		body, err := s.RenderPDF(*src)
		if err != nil {
			return nil, err
		}
		doc.ContentType = "application/pdf"
		doc.Filename = PDFFilename(req.SubmissionID)
		doc.Body = body
	default:
		xml, err := s.RenderXML(*src)
		if err != nil {
			return nil, err
		}
		doc.ContentType = "application/xml"
		doc.Filename = XMLFilename(req.SubmissionID)
		doc.Body = []byte(xml)
		if req.Format == FormatJSON {
			doc.ContentType = "application/json"
			doc.Envelope = &Envelope{
				Success:      true,
				SubmissionID: req.SubmissionID,
				XML:          xml,
				Metadata: Metadata{
					TemplateName:   templateName(*src),
					LineOfBusiness: src.LinesOfBusiness().Strings(),
					SubmittedAt:    src.Submission.SubmittedAt,
					PolicyNumber:   src.PolicyNumber(),
				},
			}
		}
	}

	if s.AuditService != nil {
		if err := s.AuditService.LogChange(ctx, common_models.AuditActionExport, auditModule, req.SubmissionID, map[string]common_models.Change{
			"format": {New: string(req.Format)},
		}); err != nil {
			s.Logger.Warn("Failed to write audit log", zap.String("submission_id", req.SubmissionID), zap.Error(err))
		}
	}

	if req.EmailToAgent {
		s.emailAgent(ctx, src, req.AgentEmail, doc)
	}

	return doc, nil
}

// emailAgent sends doc to the requested address or the policy's agent.
// Failures are logged; the export itself has already succeeded.
func (s *ExportServiceImpl) emailAgent(ctx context.Context, src *Source, to string, doc *Document) {
	if to == "" && src.Policy != nil {
		to = src.Policy.AgentEmail
	}
	if to == "" || s.Mailer == nil {
		s.Logger.Warn("Skipping agent email: no recipient", zap.String("submission_id", src.SubmissionID()))
		return
	}

	if err := s.Mailer.Send(ctx, AgentMessage(src, to, doc.Filename, doc.Body)); err != nil {
		s.Logger.Error("Failed to email export to agent",
			zap.String("submission_id", src.SubmissionID()),
			zap.String("to", to),
			zap.Error(err),
		)
	}
}

// AgentMessage is the mail that carries a generated application to an agent.
func AgentMessage(src *Source, to, filename string, attachment []byte) *email.Message {
	applicant := joinNonEmpty(" ", src.text(form.FieldApplicantFirstName), src.text(form.FieldApplicantLastName))
	if applicant == "" {
		applicant = "an applicant"
	}
	body := fmt.Sprintf("A new %s application from %s is attached.\n\nSubmission ID: %s\nPolicy Number: %s\n",
		templateName(*src), applicant, src.SubmissionID(), src.PolicyNumber())

	return &email.Message{
		To:             []string{to},
		Subject:        "ACORD Application: " + applicant,
		Body:           body,
		AttachmentName: filename,
		AttachmentData: attachment,
		EntityType:     auditModule,
		EntityID:       src.SubmissionID(),
	}
}

func (s *ExportServiceImpl) ExportSubmissions(ctx context.Context, templateID string) ([]byte, string, error) {
	template, err := s.Templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, "", err
	}
	submissions, err := s.Submissions.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, "", err
	}

	data, err := SubmissionsWorkbook(template, submissions)
	if err != nil {
		return nil, "", apperrors.NewExportError("xlsx", err)
	}
	filename := fmt.Sprintf("%s_submissions.xlsx", shortID(templateID))
	return data, filename, nil
}

// recoverExport turns a generator panic, such as one caused by malformed stored data, into an ExportError.
func recoverExport(format Format, err *error) {
	if r := recover(); r != nil {
		*err = apperrors.NewExportError(string(format), fmt.Errorf("%v", r))
	}
}

func observe(format Format, start time.Time, err *error) {
	outcome := "success"
	if *err != nil {
		outcome = "error"
	}
	metrics.ExportsGenerated.WithLabelValues(string(format), outcome).Inc()
	metrics.ExportDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
}
