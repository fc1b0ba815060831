// Package notify delivers composed submission messages over a configured
// transport.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mbolis/quick-form/config"
)

// Notifier sends one composed message. Implementations do not retry.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	FromEmail string
	FromName  string
	To        string
	Cc        []string
	Subject   string
	HTML      string
}

// Error wraps a transport failure. Its message is safe to log, not to show.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

const (
	DriverSMTP       = "smtp"
	DriverMailerSend = "mailersend"
	DriverLog        = "log"
)

// New builds the notifier selected by cfg.Driver.
func New(cfg config.MailConfig) (Notifier, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverSMTP:
		if cfg.Host == "" || cfg.Port == 0 {
			return nil, fmt.Errorf("notify: smtp driver needs host and port")
		}
		return &SMTPNotifier{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Username:   cfg.Username,
			Password:   cfg.Password,
			Encryption: cfg.Encryption,
			Timeout:    30 * time.Second,
		}, nil
	case DriverMailerSend:
		if cfg.MailerSendAPIKey == "" {
			return nil, fmt.Errorf("notify: mailersend driver needs an API key")
		}
		return NewMailerSendNotifier(cfg.MailerSendAPIKey), nil
	case DriverLog, "":
		return LogNotifier{}, nil
	default:
		return nil, fmt.Errorf("notify: unknown driver %q", cfg.Driver)
	}
}
