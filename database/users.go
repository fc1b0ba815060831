package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("bad credentials")

// EnsureAdmin creates the admin user, or resets its password when it exists.
func (r *Repository) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("db.ensure_admin: empty username or password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "db.ensure_admin.hash")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO admin_user (username, password_hash) VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash`,
		username,
		hash,
	)
	return errors.Wrap(err, "db.ensure_admin")
}

// CheckPassword returns ErrBadCredentials for an unknown user or a wrong
// password.
func (r *Repository) CheckPassword(ctx context.Context, username, password string) error {
	var hash []byte
	err := r.db.
		QueryRowContext(ctx, `SELECT password_hash FROM admin_user WHERE username = ?`, username).
		Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBadCredentials
	}
	if err != nil {
		return errors.Wrap(err, "db.get_user")
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return ErrBadCredentials
	}
	return nil
}

func (r *Repository) StoreRefreshToken(ctx context.Context, username, tokenID, refreshTokenID string, ttl time.Duration) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO token (username, token_id, refresh_token_id, expiration) VALUES (?, ?, ?, ?)",
		username,
		tokenID,
		refreshTokenID,
		r.now().Add(ttl).UTC(),
	)
	return errors.Wrap(err, "db.insert_token")
}

// UseRefreshToken deletes a stored refresh token, failing with
// ErrBadCredentials when it is unknown or expired.
func (r *Repository) UseRefreshToken(ctx context.Context, username, tokenID, refreshTokenID string) error {
	var expiration time.Time
	err := r.db.
		QueryRowContext(ctx, `
			DELETE FROM token
			WHERE username = ?
				AND token_id = ?
				AND refresh_token_id = ?
			RETURNING expiration`,
			username,
			tokenID,
			refreshTokenID,
		).
		Scan(&expiration)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBadCredentials
	}
	if err != nil {
		return errors.Wrap(err, "db.delete_token")
	}

	if expiration.Before(r.now()) {
		return ErrBadCredentials
	}
	return nil
}
