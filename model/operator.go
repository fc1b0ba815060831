package model

// OperatorSettings are the site-wide delivery settings edited by the
// administrator. Empty strings fall back to the configured defaults.
type OperatorSettings struct {
	AdminEmail   string            `json:"admin_email"`
	FromEmail    string            `json:"from_email"`
	AdminSubject string            `json:"admin_subject"`
	CCEmail      string            `json:"cc_email"`
	RedirectURL  string            `json:"redirect_url"`
	Turnstile    TurnstileSettings `json:"turnstile"`
}

type TurnstileSettings struct {
	// Enabled is nil until the administrator saves the settings once.
	Enabled *bool  `json:"enabled,omitempty"`
	SiteKey string `json:"site_key"`
	Secret  string `json:"secret,omitempty"`
	Mode    string `json:"mode"`
}

// Redacted returns a copy safe to send back to the admin UI.
func (s OperatorSettings) Redacted() OperatorSettings {
	s.Turnstile.Secret = ""
	return s
}
