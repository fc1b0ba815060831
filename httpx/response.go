package httpx

import (
	"bytes"
	"net/http"

	"github.com/mbolis/quick-form/log"
)

// TokenResponse holds what the oauth bearer server wrote, so that a refused
// grant can be answered with the API's own failure body.
type TokenResponse struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func NewTokenResponse() *TokenResponse {
	return &TokenResponse{header: http.Header{}}
}

func (resp *TokenResponse) Header() http.Header {
	return resp.header
}

func (resp *TokenResponse) Write(body []byte) (int, error) {
	if resp.status == 0 {
		resp.status = http.StatusOK
	}
	return resp.body.Write(body)
}

func (resp *TokenResponse) WriteHeader(statusCode int) {
	if resp.status == 0 {
		resp.status = statusCode
	}
}

// Status defaults to 200 once anything was written.
func (resp *TokenResponse) Status() int {
	return resp.status
}

func (resp *TokenResponse) Granted() bool {
	return resp.status == http.StatusOK && resp.body.Len() > 0
}

// Forward copies the tokens to w, or answers 401 if the grant was refused.
func (resp *TokenResponse) Forward(w http.ResponseWriter, r *http.Request, code string) error {
	if !resp.Granted() {
		log.WithFields(log.Fields{"status": resp.status}).Debugf("%s: grant refused: %s", code, bytes.TrimSpace(resp.body.Bytes()))
		Fail(w, r, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return nil
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(resp.body.Bytes())
	return err
}
