package email

import (
	"context"
	"errors"
	"fmt"

	"agency-forms/internal/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type EmailService interface {
	Send(ctx context.Context, msg *Message) error
}

type EmailServiceImpl struct {
	Transport Transport
	Repo      EmailLog
	From      string
	Logger    *zap.Logger
}

func NewEmailService(cfg *config.Config, repo *EmailRepository, logger *zap.Logger) (EmailService, error) {
	transport, err := NewTransport(cfg)
	if err != nil {
		return nil, err
	}
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &EmailServiceImpl{
		Transport: transport,
		Repo:      repo,
		From:      from,
		Logger:    logger,
	}, nil
}

// Send delivers msg and records the attempt in the email log. Log write
// failures are reported but never block delivery.
func (s *EmailServiceImpl) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 || msg.To[0] == "" {
		return errors.New("email has no recipient")
	}

	record := &Email{
		ID:             primitive.NewObjectID(),
		From:           s.From,
		To:             msg.To,
		Subject:        msg.Subject,
		TextBody:       msg.Body,
		AttachmentName: msg.AttachmentName,
		Provider:       s.Transport.Name(),
		Status:         EmailQueued,
		EntityType:     msg.EntityType,
		EntityID:       msg.EntityID,
	}
	if s.Repo != nil {
		if err := s.Repo.Create(ctx, record); err != nil {
			s.Logger.Warn("Failed to log email", zap.Error(err))
		}
	}

	s.Logger.Info("Sending email",
		zap.Strings("to", msg.To),
		zap.String("provider", s.Transport.Name()),
		zap.String("attachment", msg.AttachmentName),
	)
	sendErr := s.Transport.Send(ctx, s.From, msg.To, BuildMIME(s.From, msg))

	status, errMsg := EmailSent, ""
	if sendErr != nil {
		status, errMsg = EmailFailed, sendErr.Error()
	}
	if s.Repo != nil {
		if err := s.Repo.UpdateStatus(ctx, record.ID, status, errMsg); err != nil {
			s.Logger.Warn("Failed to update email status", zap.Error(err))
		}
	}

	if sendErr != nil {
		return fmt.Errorf("failed to send email: %w", sendErr)
	}
	return nil
}
