// Package token issues and checks the submission token embedded in live forms.
// A token is scoped to the submit action and to one form; single use is
// enforced by the store through the token's ID.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

const SubmitAction = "df_frontend_submit"

var (
	ErrInvalid   = errors.New("invalid submission token")
	ErrWrongForm = errors.New("submission token issued for another form")
)

type Claims struct {
	Action string `json:"act"`
	FormID int    `json:"form_id"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (iss *Issuer) Issue(formID int) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("token.id: %w", err)
	}

	now := iss.now()
	claims := Claims{
		Action: SubmitAction,
		FormID: formID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(iss.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(iss.secret)
	if err != nil {
		return "", fmt.Errorf("token.sign: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, action and form scope. It does not mark
// the token as used.
func (iss *Issuer) Verify(raw string, formID int) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return iss.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(iss.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if claims.Action != SubmitAction || claims.ID == "" {
		return Claims{}, ErrInvalid
	}
	if claims.FormID != formID {
		return Claims{}, ErrWrongForm
	}
	return claims, nil
}

// Expiry is the instant after which the token is rejected anyway.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
