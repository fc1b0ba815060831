package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)

	raw, err := iss.Issue(7)
	require.NoError(t, err)

	claims, err := iss.Verify(raw, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.FormID)
	assert.Equal(t, SubmitAction, claims.Action)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expiry(), time.Minute)
}

func TestTokensAreUnique(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)
	a, err := iss.Issue(1)
	require.NoError(t, err)
	b, err := iss.Issue(1)
	require.NoError(t, err)

	ca, _ := iss.Verify(a, 1)
	cb, _ := iss.Verify(b, 1)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestVerifyRejects(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)
	raw, err := iss.Issue(7)
	require.NoError(t, err)

	_, err = iss.Verify(raw, 8)
	assert.ErrorIs(t, err, ErrWrongForm)

	_, err = NewIssuer("other", time.Hour).Verify(raw, 7)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = iss.Verify("garbage", 7)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = iss.Verify("", 7)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss := NewIssuer("s3cret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	raw, err := iss.Issue(1)
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Verify(raw, 1)
	assert.ErrorIs(t, err, ErrInvalid)
}
