package form

import (
	"net/url"
	"strings"

	"github.com/mbolis/quick-form/model"
)

// SanitizeSettings cleans the per-form settings. Styles are left untouched;
// they go through MergeStyles.
func SanitizeSettings(s model.Settings) model.Settings {
	s.ToEmail = SanitizeEmail(s.ToEmail)
	s.FromEmail = SanitizeEmail(s.FromEmail)
	s.Subject = SanitizeText(s.Subject)
	s.SuccessMessage = SanitizeText(s.SuccessMessage)
	s.SubmitLabel = SanitizeText(s.SubmitLabel)
	return s
}

// SanitizeOperator cleans operator settings as submitted from the admin UI.
// Invalid addresses become empty so the configured defaults apply.
func SanitizeOperator(s model.OperatorSettings) model.OperatorSettings {
	s.AdminEmail = SanitizeEmail(s.AdminEmail)
	s.FromEmail = SanitizeEmail(s.FromEmail)
	s.AdminSubject = SanitizeText(s.AdminSubject)
	s.CCEmail = strings.Join(EmailList(s.CCEmail), ";")
	s.RedirectURL = SanitizeURL(s.RedirectURL)

	s.Turnstile.SiteKey = SanitizeText(s.Turnstile.SiteKey)
	s.Turnstile.Secret = strings.TrimSpace(s.Turnstile.Secret)
	if s.Turnstile.Mode != "invisible" {
		s.Turnstile.Mode = "managed"
	}
	return s
}

// EmailList splits a ';' separated list, keeping the valid addresses.
func EmailList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if addr := SanitizeEmail(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// SanitizeURL keeps absolute http(s) URLs and drops anything else.
func SanitizeURL(s string) string {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}
