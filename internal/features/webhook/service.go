package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"agency-forms/internal/common/models"
	"agency-forms/internal/config"

	"go.uber.org/zap"
)

type WebhookService interface {
	// Trigger delivers the event in the background. Failures are logged only.
	Trigger(ctx context.Context, event string, recordID string, data interface{})
	Deliver(ctx context.Context, payload models.WebhookPayload) error
	ListDeliveries(ctx context.Context, event string, limit int64) ([]DeliveryLog, error)
}

type WebhookServiceImpl struct {
	Repo       DeliveryLogRepository
	URL        string
	Secret     string
	HttpClient *http.Client
	Logger     *zap.Logger
	Now        func() time.Time
}

func NewWebhookService(repo DeliveryLogRepository, cfg *config.Config, logger *zap.Logger) WebhookService {
	return &WebhookServiceImpl{
		Repo:   repo,
		URL:    cfg.AutomationWebhookURL,
		Secret: cfg.AutomationWebhookSecret,
		HttpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Logger: logger,
		Now:    time.Now,
	}
}

func (s *WebhookServiceImpl) Trigger(ctx context.Context, event string, recordID string, data interface{}) {
	if s.URL == "" {
		return
	}

	payload := models.WebhookPayload{
		Event:     event,
		Module:    "form_submissions",
		RecordID:  recordID,
		Data:      data,
		Timestamp: s.Now(),
	}

	// The request context ends with the HTTP response, the delivery must outlive it.
	go func() {
		if err := s.Deliver(context.WithoutCancel(ctx), payload); err != nil {
			s.Logger.Warn("Automation webhook delivery failed",
				zap.String("event", event),
				zap.String("record_id", recordID),
				zap.Error(err),
			)
		}
	}()
}

func (s *WebhookServiceImpl) Deliver(ctx context.Context, payload models.WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "AgencyForms-Webhook")
	req.Header.Set("X-AgencyForms-Event", payload.Event)
	req.Header.Set("X-AgencyForms-Delivery", fmt.Sprintf("%d", s.Now().UnixNano()))

	if s.Secret != "" {
		req.Header.Set("X-AgencyForms-Signature", "sha256="+Sign(s.Secret, body))
	}

	start := time.Now()
	resp, err := s.HttpClient.Do(req)

	entry := &DeliveryLog{
		URL:      s.URL,
		Event:    payload.Event,
		RecordID: payload.RecordID,
		Request:  payload,
		Duration: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Response = err.Error()
	} else {
		defer resp.Body.Close()
		entry.StatusCode = resp.StatusCode
		entry.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
		if !entry.Success {
			entry.Response = resp.Status
		}
	}

	if s.Repo != nil {
		if logErr := s.Repo.Create(ctx, entry); logErr != nil {
			s.Logger.Warn("Failed to record webhook delivery", zap.Error(logErr))
		}
	}

	if err != nil {
		return fmt.Errorf("send webhook to %s: %w", s.URL, err)
	}
	if !entry.Success {
		return fmt.Errorf("webhook %s responded %s", s.URL, resp.Status)
	}
	return nil
}

func (s *WebhookServiceImpl) ListDeliveries(ctx context.Context, event string, limit int64) ([]DeliveryLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.Repo.List(ctx, event, limit)
}

// Sign returns the hex HMAC-SHA256 of body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
