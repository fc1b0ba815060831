package app

import (
	"context"
	"strings"

	"github.com/go-chi/oauth"

	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/database"
	"github.com/mbolis/quick-form/markup"
	"github.com/mbolis/quick-form/metrics"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/notify"
	"github.com/mbolis/quick-form/submission"
	"github.com/mbolis/quick-form/token"
)

type App struct {
	*database.Repository
	*oauth.BearerServer
	config.Config

	Tokens   *token.Issuer
	Notifier notify.Notifier
	Pipeline *submission.Pipeline
	Metrics  *metrics.Metrics
}

// Site is the operator configuration in effect for one request: stored
// settings layered over the configured defaults.
type Site struct {
	AdminEmail   string
	FromEmail    string
	AdminSubject string
	CCEmail      string
	SiteURL      string
	RedirectURL  string
	Turnstile    config.TurnstileConfig
}

func (app App) Site(ctx context.Context) (Site, error) {
	stored, err := app.LoadOperatorSettings(ctx)
	if err != nil {
		return Site{}, err
	}
	return layer(app.Config, stored), nil
}

func layer(cfg config.Config, stored model.OperatorSettings) Site {
	site := Site{
		AdminEmail:   pick(stored.AdminEmail, cfg.Operator.AdminEmail),
		FromEmail:    pick(stored.FromEmail, cfg.Operator.FromEmail),
		AdminSubject: pick(stored.AdminSubject, cfg.Operator.AdminSubject),
		CCEmail:      pick(stored.CCEmail, cfg.Operator.CCEmail),
		SiteURL:      cfg.Operator.SiteURL,
		RedirectURL:  pick(stored.RedirectURL, cfg.Operator.RedirectURL),
		Turnstile:    cfg.Turnstile,
	}

	ts := stored.Turnstile
	if ts.Enabled != nil {
		site.Turnstile.Enabled = *ts.Enabled
	}
	site.Turnstile.SiteKey = pick(ts.SiteKey, cfg.Turnstile.SiteKey)
	site.Turnstile.Secret = pick(ts.Secret, cfg.Turnstile.Secret)
	if ts.Mode == "managed" || ts.Mode == "invisible" {
		site.Turnstile.Mode = ts.Mode
	}
	return site
}

func pick(stored, fallback string) string {
	if strings.TrimSpace(stored) != "" {
		return stored
	}
	return fallback
}

func (s Site) Operator() submission.Operator {
	return submission.Operator{
		AdminEmail:       s.AdminEmail,
		FromEmail:        s.FromEmail,
		Subject:          s.AdminSubject,
		SiteURL:          s.SiteURL,
		RedirectURL:      s.RedirectURL,
		TurnstileEnabled: s.Turnstile.Enabled,
		TurnstileSecret:  s.Turnstile.Secret,
	}
}

func (s Site) Widget() markup.Turnstile {
	return markup.Turnstile{
		Enabled: s.Turnstile.Enabled,
		SiteKey: s.Turnstile.SiteKey,
		Mode:    s.Turnstile.Mode,
	}
}

// Settings is the effective configuration as shown to the admin UI; the
// Turnstile secret is never included.
func (s Site) Settings() model.OperatorSettings {
	enabled := s.Turnstile.Enabled
	return model.OperatorSettings{
		AdminEmail:   s.AdminEmail,
		FromEmail:    s.FromEmail,
		AdminSubject: s.AdminSubject,
		CCEmail:      s.CCEmail,
		RedirectURL:  s.RedirectURL,
		Turnstile: model.TurnstileSettings{
			Enabled: &enabled,
			SiteKey: s.Turnstile.SiteKey,
			Mode:    s.Turnstile.Mode,
		},
	}
}
