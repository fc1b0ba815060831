package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/quick-form/model"
)

func TestComposeHTMLEscapes(t *testing.T) {
	html, err := ComposeHTML(model.EntryData{
		{Label: "Name", Value: model.Text("<b>Ada</b>")},
		{Label: "Tags", Value: model.List([]string{"a", "b"})},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`<h2>New Submission</h2><ul>`+
			`<li><strong>Name:</strong> &lt;b&gt;Ada&lt;/b&gt;</li>`+
			`<li><strong>Tags:</strong> a, b</li>`+
			`</ul>`,
		html)
}

func TestSenderAddress(t *testing.T) {
	assert.Equal(t, "forms@example.com", senderAddress("forms@example.com", "https://site.test"))
	assert.Equal(t, "noreply@site.test", senderAddress("", "https://site.test:8443/path"))
	assert.Equal(t, "noreply@localhost", senderAddress("", "::bad"))
}

func TestErrorStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInvalid:    400,
		KindSecurity:   403,
		KindNotFound:   404,
		KindValidation: 422,
		KindDelivery:   500,
		KindInternal:   500,
	}
	for kind, status := range cases {
		assert.Equal(t, status, (&Error{Kind: kind}).Status(), kind.String())
	}
}

func TestTestMessage(t *testing.T) {
	msg := TestMessage(Operator{AdminEmail: "admin@example.com", SiteURL: "https://forms.example.com"}, []string{"cc@example.com"})
	assert.Equal(t, "admin@example.com", msg.To)
	assert.Equal(t, "noreply@forms.example.com", msg.FromEmail)
	assert.Equal(t, []string{"cc@example.com"}, msg.Cc)
	assert.NotEmpty(t, msg.HTML)
}
