package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbolis/quick-form/model"
)

func TestSanitizeSettings(t *testing.T) {
	in := model.Settings{
		ToEmail:        " Owner@Example.com ",
		FromEmail:      "not-an-address",
		Subject:        "<b>Hello</b>   there",
		SuccessMessage: "Thanks!",
		SubmitLabel:    "<script>x</script>Send",
		StoreEntries:   true,
	}

	out := SanitizeSettings(in)
	assert.Equal(t, "owner@example.com", out.ToEmail)
	assert.Empty(t, out.FromEmail)
	assert.Equal(t, "Hello there", out.Subject)
	assert.Equal(t, "Send", out.SubmitLabel)
	assert.True(t, out.StoreEntries)
}

func TestSanitizeOperator(t *testing.T) {
	out := SanitizeOperator(model.OperatorSettings{
		AdminEmail:  "admin@example.com",
		CCEmail:     "a@example.com; bogus ;B@example.org;",
		RedirectURL: "javascript:alert(1)",
		Turnstile:   model.TurnstileSettings{Mode: "weird", Secret: "  s3cret "},
	})

	assert.Equal(t, "admin@example.com", out.AdminEmail)
	assert.Equal(t, "a@example.com;b@example.org", out.CCEmail)
	assert.Empty(t, out.RedirectURL)
	assert.Equal(t, "managed", out.Turnstile.Mode)
	assert.Equal(t, "s3cret", out.Turnstile.Secret)
}

func TestSanitizeURL(t *testing.T) {
	cases := map[string]string{
		"https://example.com/thanks": "https://example.com/thanks",
		" http://example.com ":       "http://example.com",
		"/relative":                  "",
		"ftp://example.com":          "",
		"":                           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeURL(in), in)
	}
}
