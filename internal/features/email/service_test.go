package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agency-forms/internal/config"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeTransport struct {
	from string
	to   []string
	raw  []byte
	err  error
}

func (t *fakeTransport) Name() string { return "fake" }

func (t *fakeTransport) Send(_ context.Context, from string, to []string, raw []byte) error {
	t.from, t.to, t.raw = from, to, raw
	return t.err
}

type memoryLog struct {
	created  []*Email
	statuses map[primitive.ObjectID]EmailStatus
	errors   map[primitive.ObjectID]string
}

func newMemoryLog() *memoryLog {
	return &memoryLog{statuses: map[primitive.ObjectID]EmailStatus{}, errors: map[primitive.ObjectID]string{}}
}

func (l *memoryLog) Create(_ context.Context, email *Email) error {
	l.created = append(l.created, email)
	return nil
}

func (l *memoryLog) UpdateStatus(_ context.Context, id primitive.ObjectID, status EmailStatus, errorMsg string) error {
	l.statuses[id] = status
	l.errors[id] = errorMsg
	return nil
}

type mockSES struct {
	input *ses.SendRawEmailInput
}

func (m *mockSES) SendRawEmail(_ context.Context, params *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	m.input = params
	return &ses.SendRawEmailOutput{}, nil
}

func TestSendRecordsDelivery(t *testing.T) {
	transport := &fakeTransport{}
	log := newMemoryLog()
	svc := &EmailServiceImpl{Transport: transport, Repo: log, From: "forms@agency.test", Logger: zap.NewNop()}

	err := svc.Send(context.Background(), &Message{
		To:             []string{"agent@agency.test"},
		Subject:        "ACORD Application",
		Body:           "Attached.",
		AttachmentName: "ACORD_Application_1234abcd.pdf",
		AttachmentData: []byte("%PDF-1.3"),
		EntityType:     "form_submissions",
		EntityID:       "1234abcd",
	})

	require.NoError(t, err)
	assert.Equal(t, "forms@agency.test", transport.from)
	assert.Equal(t, []string{"agent@agency.test"}, transport.to)
	require.Len(t, log.created, 1)
	assert.Equal(t, EmailSent, log.statuses[log.created[0].ID])
	assert.Equal(t, "fake", log.created[0].Provider)
}

func TestSendFailureIsLogged(t *testing.T) {
	transport := &fakeTransport{err: errors.New("connection refused")}
	log := newMemoryLog()
	svc := &EmailServiceImpl{Transport: transport, Repo: log, From: "forms@agency.test", Logger: zap.NewNop()}

	err := svc.Send(context.Background(), &Message{To: []string{"agent@agency.test"}, Subject: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	id := log.created[0].ID
	assert.Equal(t, EmailFailed, log.statuses[id])
	assert.Equal(t, "connection refused", log.errors[id])
}

func TestSendRequiresRecipient(t *testing.T) {
	svc := &EmailServiceImpl{Transport: &fakeTransport{}, Logger: zap.NewNop()}

	assert.Error(t, svc.Send(context.Background(), &Message{Subject: "x"}))
}

func TestBuildMIMEWithAttachment(t *testing.T) {
	raw := string(BuildMIME("forms@agency.test", &Message{
		To:             []string{"a@x.test", "b@x.test"},
		Subject:        "Application",
		Body:           "Hello",
		AttachmentName: "app.pdf",
		AttachmentData: []byte("pdf-bytes"),
	}))

	assert.Contains(t, raw, "To: a@x.test, b@x.test\r\n")
	assert.Contains(t, raw, "Content-Type: application/pdf; name=\"app.pdf\"")
	assert.Contains(t, raw, "cGRmLWJ5dGVz")
	assert.True(t, strings.HasSuffix(raw, "--"+mimeBoundary+"--\r\n"))
}

func TestSESTransportSendsRawMessage(t *testing.T) {
	client := &mockSES{}
	transport := NewSESTransport(client)

	err := transport.Send(context.Background(), "forms@agency.test", []string{"agent@agency.test"}, []byte("raw"))

	require.NoError(t, err)
	assert.Equal(t, "forms@agency.test", *client.input.Source)
	assert.Equal(t, []string{"agent@agency.test"}, client.input.Destinations)
	assert.Equal(t, []byte("raw"), client.input.RawMessage.Data)
}

func TestNewTransportSelectsProvider(t *testing.T) {
	transport, err := NewTransport(&config.Config{MailProvider: "smtp", SMTPHost: "mail.test", SMTPPort: 25})
	require.NoError(t, err)
	assert.Equal(t, ProviderSMTP, transport.Name())

	_, err = NewTransport(&config.Config{MailProvider: "pigeon"})
	assert.Error(t, err)
}

func TestSMTPTransportRequiresHost(t *testing.T) {
	err := (&SMTPTransport{}).Send(context.Background(), "a@x.test", []string{"b@x.test"}, nil)

	assert.EqualError(t, err, "invalid email configuration: missing host or port")
}
