package notify

import (
	"context"

	"github.com/mailersend/mailersend-go"
)

// MailerSendNotifier delivers through the MailerSend HTTP API.
type MailerSendNotifier struct {
	client *mailersend.Mailersend
}

func NewMailerSendNotifier(apiKey string) *MailerSendNotifier {
	return &MailerSendNotifier{client: mailersend.NewMailersend(apiKey)}
}

func (n *MailerSendNotifier) Send(ctx context.Context, msg Message) error {
	message := n.client.Email.NewMessage()

	message.SetFrom(mailersend.From{
		Email: msg.FromEmail,
		Name:  msg.FromName,
	})
	message.SetRecipients([]mailersend.Recipient{{Email: msg.To}})
	if len(msg.Cc) > 0 {
		cc := make([]mailersend.Recipient, len(msg.Cc))
		for i, addr := range msg.Cc {
			cc[i] = mailersend.Recipient{Email: addr}
		}
		message.SetCc(cc)
	}
	message.SetSubject(msg.Subject)
	message.SetHTML(msg.HTML)

	if _, err := n.client.Email.Send(ctx, message); err != nil {
		return &Error{Message: "mailersend send", Err: err}
	}
	return nil
}
