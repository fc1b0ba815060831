package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-form/model"
)

// LoadOperatorSettings returns the stored site settings, or zero settings
// when none were saved yet.
func (r *Repository) LoadOperatorSettings(ctx context.Context) (model.OperatorSettings, error) {
	s := model.OperatorSettings{}

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM setting WHERE id = 1`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, errors.Wrap(err, "db.get_settings")
	}

	err = json.Unmarshal([]byte(value), &s)
	return s, errors.Wrap(err, "db.get_settings.parse")
}

// SaveOperatorSettings replaces the stored site settings. An empty Turnstile
// secret keeps the one already stored.
func (r *Repository) SaveOperatorSettings(ctx context.Context, s model.OperatorSettings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "db.begin_tx")
	}
	defer tx.Rollback()

	if s.Turnstile.Secret == "" {
		var value string
		err = tx.QueryRowContext(ctx, `SELECT value FROM setting WHERE id = 1`).Scan(&value)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return errors.Wrap(err, "db.save_settings.get")
		default:
			prev := model.OperatorSettings{}
			if err = json.Unmarshal([]byte(value), &prev); err != nil {
				return errors.Wrap(err, "db.save_settings.parse")
			}
			s.Turnstile.Secret = prev.Turnstile.Secret
		}
	}

	value, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "db.save_settings.encode")
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO setting (id, value) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET value = excluded.value`,
		string(value),
	)
	if err != nil {
		return errors.Wrap(err, "db.save_settings")
	}

	return errors.Wrap(tx.Commit(), "db.save_settings.commit")
}
