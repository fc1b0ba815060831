package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/model"
)

func TestLayerFallsBackToConfig(t *testing.T) {
	cfg := config.Config{
		Operator: config.OperatorConfig{
			AdminEmail:   "cfg@example.com",
			AdminSubject: "New Form Submission",
			SiteURL:      "https://example.com",
		},
		Turnstile: config.TurnstileConfig{Enabled: true, SiteKey: "cfg-key", Secret: "cfg-secret", Mode: "managed", Timeout: time.Second},
	}

	site := layer(cfg, model.OperatorSettings{})
	assert.Equal(t, "cfg@example.com", site.AdminEmail)
	assert.True(t, site.Turnstile.Enabled)
	assert.Equal(t, "cfg-secret", site.Operator().TurnstileSecret)

	disabled := false
	site = layer(cfg, model.OperatorSettings{
		AdminEmail: "ops@example.com",
		Turnstile:  model.TurnstileSettings{Enabled: &disabled, Mode: "invisible", Secret: "db-secret"},
	})
	assert.Equal(t, "ops@example.com", site.Operator().AdminEmail)
	assert.False(t, site.Operator().TurnstileEnabled)
	assert.Equal(t, "db-secret", site.Turnstile.Secret)
	assert.Equal(t, "invisible", site.Widget().Mode)
	assert.Equal(t, "cfg-key", site.Widget().SiteKey)

	shown := site.Settings()
	assert.Empty(t, shown.Turnstile.Secret)
	assert.False(t, *shown.Turnstile.Enabled)
}
