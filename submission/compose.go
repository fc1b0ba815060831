package submission

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/notify"
)

const (
	DefaultSubject        = "New Form Submission"
	DefaultSuccessMessage = "Thank you! Your submission has been received."
)

var messageTemplate = template.Must(template.New("message").Parse(
	`<h2>New Submission</h2><ul>` +
		`{{range .}}<li><strong>{{.Label}}:</strong> {{.Value.String}}</li>{{end}}` +
		`</ul>`))

// ComposeHTML lists every label/value pair; list values are comma-joined.
func ComposeHTML(data model.EntryData) (string, error) {
	var sb strings.Builder
	if err := messageTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// TestMessage is the message sent from the settings screen to check the
// mail transport.
func TestMessage(op Operator, cc []string) notify.Message {
	return notify.Message{
		FromEmail: senderAddress(op.FromEmail, op.SiteURL),
		To:        op.AdminEmail,
		Cc:        cc,
		Subject:   "Test email",
		HTML:      "<p>This is a test email. Your mail settings work.</p>",
	}
}

// senderAddress falls back to noreply@ the site host.
func senderAddress(from, siteURL string) string {
	if from != "" {
		return from
	}
	host := "localhost"
	if u, err := url.Parse(siteURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	return "noreply@" + host
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
