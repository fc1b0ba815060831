package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ConsumeToken marks a submission token id as used. It reports false when the
// id was already consumed. Expired ids are purged on the way.
func (r *Repository) ConsumeToken(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	now := r.now().UTC()

	_, err := r.db.ExecContext(ctx, `DELETE FROM used_token WHERE expires_at < ?`, now)
	if err != nil {
		return false, errors.Wrap(err, "db.purge_tokens")
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO used_token (jti, expires_at) VALUES (?, ?)
		ON CONFLICT (jti) DO NOTHING`,
		jti,
		expiresAt.UTC(),
	)
	if err != nil {
		return false, errors.Wrap(err, "db.consume_token")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "db.consume_token.verify")
	}
	return n == 1, nil
}

// ReleaseToken forgets a consumed token id so the same token can be used
// again, after a submission that did not go through.
func (r *Repository) ReleaseToken(ctx context.Context, jti string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM used_token WHERE jti = ?`, jti)
	return errors.Wrap(err, "db.release_token")
}
