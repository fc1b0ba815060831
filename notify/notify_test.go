package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/mbolis/quick-form/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsDriver(t *testing.T) {
	n, err := New(config.MailConfig{Driver: "smtp", Host: "mail.local", Port: 587, Encryption: "tls"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPNotifier{}, n)

	n, err = New(config.MailConfig{Driver: "mailersend", MailerSendAPIKey: "key"})
	require.NoError(t, err)
	assert.IsType(t, &MailerSendNotifier{}, n)

	n, err = New(config.MailConfig{})
	require.NoError(t, err)
	assert.IsType(t, LogNotifier{}, n)
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	_, err := New(config.MailConfig{Driver: "smtp"})
	assert.Error(t, err)

	_, err = New(config.MailConfig{Driver: "mailersend"})
	assert.Error(t, err)

	_, err = New(config.MailConfig{Driver: "pigeon"})
	assert.Error(t, err)
}

func TestBuildMsgRejectsBadAddresses(t *testing.T) {
	_, err := buildMsg(Message{FromEmail: "noreply@example.com", To: "ops@example.com", Cc: []string{"a@example.com"}})
	assert.NoError(t, err)

	_, err = buildMsg(Message{FromEmail: "not an address", To: "ops@example.com"})
	assert.Error(t, err)

	_, err = buildMsg(Message{FromEmail: "noreply@example.com", To: ""})
	assert.Error(t, err)
}

func TestSMTPSendWrapsFailure(t *testing.T) {
	n := &SMTPNotifier{Host: "127.0.0.1", Port: 1, Timeout: 1}
	err := n.Send(context.Background(), Message{FromEmail: "noreply@example.com", To: "ops@example.com"})
	require.Error(t, err)

	var nerr *Error
	assert.True(t, errors.As(err, &nerr))
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Send(context.Background(), Message{To: "a@b.com"}))
}
