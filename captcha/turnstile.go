// Package captcha verifies bot-protection tokens against Cloudflare Turnstile.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var (
	ErrMissingToken = errors.New("missing verification token")
	ErrRejected     = errors.New("verification rejected")
)

type Turnstile struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewTurnstile(timeout time.Duration) *Turnstile {
	return &Turnstile{
		Endpoint:   DefaultEndpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token, the secret and the caller IP to the verification
// endpoint. Any transport failure counts as a failed verification.
func (t *Turnstile) Verify(ctx context.Context, secret, response, remoteIP string) error {
	if strings.TrimSpace(response) == "" {
		return ErrMissingToken
	}

	form := url.Values{
		"secret":   {secret},
		"response": {response},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("captcha.request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("captcha.send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("captcha.status: %d", resp.StatusCode)
	}

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("captcha.decode: %w", err)
	}
	if !body.Success {
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(body.ErrorCodes, ","))
	}
	return nil
}
