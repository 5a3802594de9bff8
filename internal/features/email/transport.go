package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"agency-forms/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	ProviderSMTP = "smtp"
	ProviderSES  = "ses"
)

// Transport hands a rendered MIME message to a mail provider.
type Transport interface {
	Name() string
	Send(ctx context.Context, from string, to []string, raw []byte) error
}

// NewTransport picks the provider configured by MAIL_PROVIDER.
func NewTransport(cfg *config.Config) (Transport, error) {
	switch cfg.MailProvider {
	case ProviderSES:
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return NewSESTransport(ses.NewFromConfig(awsCfg)), nil
	case ProviderSMTP, "":
		return &SMTPTransport{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}, nil
	}
	return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
}

type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (t *SMTPTransport) Name() string { return ProviderSMTP }

func (t *SMTPTransport) Send(_ context.Context, from string, to []string, raw []byte) error {
	if t.Host == "" || t.Port == 0 {
		return errors.New("invalid email configuration: missing host or port")
	}

	var auth smtp.Auth
	if t.Username != "" {
		auth = smtp.PlainAuth("", t.Username, t.Password, t.Host)
	}
	addr := fmt.Sprintf("%s:%d", t.Host, t.Port)
	return smtp.SendMail(addr, auth, from, to, raw)
}

// SESAPI is the subset of the SES client used for raw sends.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

type SESTransport struct {
	client SESAPI
}

func NewSESTransport(client SESAPI) *SESTransport {
	return &SESTransport{client: client}
}

func (t *SESTransport) Name() string { return ProviderSES }

func (t *SESTransport) Send(ctx context.Context, from string, to []string, raw []byte) error {
	_, err := t.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(from),
		Destinations: to,
		RawMessage:   &types.RawMessage{Data: raw},
	})
	return err
}
