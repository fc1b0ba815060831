package notify

import (
	"context"

	"github.com/mbolis/quick-form/log"
)

// LogNotifier only logs messages. Used when no transport is configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, msg Message) error {
	log.WithFields(log.Fields{
		"to":      msg.To,
		"cc":      msg.Cc,
		"from":    msg.FromEmail,
		"subject": msg.Subject,
	}).Info("notify.log: message not delivered, mail driver is 'log'")
	log.Debug(msg.HTML)
	return nil
}
