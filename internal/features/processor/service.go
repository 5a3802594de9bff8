package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/config"
	"agency-forms/internal/features/audit"
	"agency-forms/internal/features/email"
	"agency-forms/internal/features/export"
	"agency-forms/internal/features/submission"
	"agency-forms/internal/features/webhook"
	"agency-forms/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	auditModule        = "form_submissions"
	batchSize          = 50
	defaultMaxAttempts = 5
)

type ProcessorService interface {
	RunOnce(ctx context.Context) (*SweepResult, error)
	LastSweep() *SweepResult
	Start() error
	Stop() error
}

// Notifier announces processed submissions.
type Notifier interface {
	Trigger(ctx context.Context, event string, recordID string, data interface{})
}

type ProcessorServiceImpl struct {
	Submissions  submission.SubmissionRepository
	Exports      export.ExportService
	Mailer       email.EmailService
	AuditService audit.AuditService
	Notifier     Notifier
	Logger       *zap.Logger
	Schedule     string
	Enabled      bool
	MaxAttempts  int
	Now          func() time.Time

	scheduler *cron.Cron
	running   sync.Mutex
	mu        sync.RWMutex
	last      *SweepResult
}

func NewProcessorService(
	cfg *config.Config,
	submissions submission.SubmissionRepository,
	exports export.ExportService,
	mailer email.EmailService,
	auditService audit.AuditService,
	notifier webhook.WebhookService,
	logger *zap.Logger,
) ProcessorService {
	return &ProcessorServiceImpl{
		Submissions:  submissions,
		Exports:      exports,
		Mailer:       mailer,
		AuditService: auditService,
		Notifier:     notifier,
		Logger:       logger,
		Schedule:     cfg.ProcessorSchedule,
		Enabled:      cfg.ProcessorEnabled,
		MaxAttempts:  cfg.ProcessorAttempts,
		Now:          time.Now,
	}
}

// Start registers the sweep with the scheduler. Overlapping runs are skipped.
func (s *ProcessorServiceImpl) Start() error {
	if !s.Enabled {
		s.Logger.Info("Submission processor disabled")
		return nil
	}

	cronLogger := cron.PrintfLogger(zap.NewStdLog(s.Logger))
	s.scheduler = cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger)))
	if _, err := s.scheduler.AddFunc(s.Schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.Logger.Error("Submission sweep failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid processor schedule %q: %w", s.Schedule, err)
	}

	s.scheduler.Start()
	s.Logger.Info("Submission processor started", zap.String("schedule", s.Schedule))
	return nil
}

func (s *ProcessorServiceImpl) Stop() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

func (s *ProcessorServiceImpl) LastSweep() *SweepResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// RunOnce delivers submitted applications to their agents and marks them
// processed. A failure stays submitted with its attempt count raised, so it
// sorts behind fresh submissions and is dropped from sweeps after MaxAttempts.
func (s *ProcessorServiceImpl) RunOnce(ctx context.Context) (*SweepResult, error) {
	if !s.running.TryLock() {
		return nil, apperrors.NewInvalidRequest("a sweep is already running")
	}
	defer s.running.Unlock()

	result := &SweepResult{StartedAt: s.Now()}
	pending, err := s.Submissions.ListPendingDelivery(ctx, s.maxAttempts(), batchSize)
	if err != nil {
		metrics.ProcessorSweeps.WithLabelValues("error").Inc()
		return nil, err
	}

	result.Scanned = len(pending)
	for i := range pending {
		delivered, err := s.process(ctx, &pending[i])
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", pending[i].ID.Hex(), err))
			s.Logger.Error("Failed to process submission", zap.String("submission_id", pending[i].ID.Hex()), zap.Error(err))
			s.recordFailure(ctx, &pending[i], err)
			continue
		}
		result.Processed++
		if !delivered {
			result.Undelivered++
		}
	}
	result.FinishedAt = s.Now()

	outcome := "success"
	if result.Failed > 0 {
		outcome = "partial"
	}
	metrics.ProcessorSweeps.WithLabelValues(outcome).Inc()

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()

	s.Logger.Info("Submission sweep finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *ProcessorServiceImpl) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return defaultMaxAttempts
}

func (s *ProcessorServiceImpl) recordFailure(ctx context.Context, sub *submission.FormSubmission, cause error) {
	id := sub.ID.Hex()
	if err := s.Submissions.RecordProcessFailure(ctx, sub.ID, cause.Error(), s.Now()); err != nil {
		s.Logger.Warn("Failed to record processing failure", zap.String("submission_id", id), zap.Error(err))
		return
	}
	if sub.ProcessAttempts+1 >= s.maxAttempts() {
		metrics.ProcessorSubmissionsAbandoned.Inc()
		s.Logger.Warn("Giving up on submission delivery",
			zap.String("submission_id", id),
			zap.Int("attempts", sub.ProcessAttempts+1),
		)
	}
}

func (s *ProcessorServiceImpl) process(ctx context.Context, sub *submission.FormSubmission) (bool, error) {
	id := sub.ID.Hex()
	src, err := s.Exports.Load(ctx, id)
	if err != nil {
		return false, err
	}

	delivered := false
	if src.Policy != nil && src.Policy.AgentEmail != "" {
		pdf, err := s.Exports.RenderPDF(*src)
		if err != nil {
			return false, err
		}
		msg := export.AgentMessage(src, src.Policy.AgentEmail, export.PDFFilename(id), pdf)
		if err := s.Mailer.Send(ctx, msg); err != nil {
			return false, err
		}
		delivered = true
	} else {
		s.Logger.Warn("No agent email for submission, marking processed without delivery", zap.String("submission_id", id))
	}

	processedAt := s.Now()
	if err := s.Submissions.MarkProcessed(ctx, sub.ID, processedAt); err != nil {
		return false, err
	}
	metrics.ProcessorSubmissionsProcessed.Inc()

	if s.AuditService != nil {
		if err := s.AuditService.LogChange(ctx, common_models.AuditActionProcess, auditModule, id, map[string]common_models.Change{
			"status": {Old: string(submission.StatusSubmitted), New: string(submission.StatusProcessed)},
		}); err != nil {
			s.Logger.Warn("Failed to write audit log", zap.String("submission_id", id), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		s.Notifier.Trigger(ctx, webhook.EventSubmissionProcessed, id, map[string]interface{}{
			"submission_id": id,
			"processed_at":  processedAt,
			"delivered":     delivered,
		})
	}
	return delivered, nil
}
