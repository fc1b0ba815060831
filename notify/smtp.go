package notify

import (
	"context"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPNotifier dials the relay once per message.
type SMTPNotifier struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Encryption string // "ssl", "tls" or "" for none
	Timeout    time.Duration
}

func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return &Error{Message: "smtp message", Err: err}
	}

	client, err := mail.NewClient(n.Host, n.clientOptions()...)
	if err != nil {
		return &Error{Message: "smtp client", Err: err}
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return &Error{Message: "smtp send", Err: err}
	}
	return nil
}

func (n *SMTPNotifier) clientOptions() []mail.Option {
	opts := []mail.Option{mail.WithPort(n.Port)}
	if n.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(n.Timeout))
	}

	switch n.Encryption {
	case "ssl":
		opts = append(opts, mail.WithSSL())
	case "tls":
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if n.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.Username),
			mail.WithPassword(n.Password),
		)
	}
	return opts
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.FromEmail); err != nil {
		return nil, err
	}
	if err := m.To(msg.To); err != nil {
		return nil, err
	}
	if len(msg.Cc) > 0 {
		if err := m.Cc(msg.Cc...); err != nil {
			return nil, err
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
