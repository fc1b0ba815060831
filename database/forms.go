package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-form/model"
)

// Repository is the record store for forms, entries and site settings.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

func (r *Repository) CreateForm(ctx context.Context, name string) (int, error) {
	fields, err := model.EncodeFields(nil)
	if err != nil {
		return 0, errors.Wrap(err, "db.insert_form.encode_fields")
	}
	settings, err := model.EncodeSettings(model.Settings{})
	if err != nil {
		return 0, errors.Wrap(err, "db.insert_form.encode_settings")
	}

	var id int
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO form (name, fields, settings, created_at) VALUES (?, ?, ?, ?)
		RETURNING id`,
		name,
		string(fields),
		string(settings),
		r.now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "db.insert_form")
	}
	return id, nil
}

func (r *Repository) GetForm(ctx context.Context, id int) (model.Form, error) {
	form := model.Form{}
	var fields, settings string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, fields, settings, created_at
		FROM form
		WHERE id = ?`,
		id,
	).Scan(&form.ID, &form.Name, &fields, &settings, &form.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return form, model.ErrNotFound
	}
	if err != nil {
		return form, errors.Wrap(err, "db.get_form")
	}

	form.Fields, err = model.DecodeFields([]byte(fields))
	if err != nil {
		return form, errors.Wrapf(err, "db.get_form.decode_fields (form %d)", id)
	}
	form.Settings, err = model.DecodeSettings([]byte(settings))
	if err != nil {
		return form, errors.Wrapf(err, "db.get_form.decode_settings (form %d)", id)
	}
	return form, nil
}

// ListForms returns every form, newest first.
func (r *Repository) ListForms(ctx context.Context) ([]model.FormSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM form
		ORDER BY id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "db.get_forms")
	}
	defer rows.Close()

	forms := []model.FormSummary{}
	for rows.Next() {
		f := model.FormSummary{}
		if err = rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "db.get_forms.scan")
		}
		forms = append(forms, f)
	}
	return forms, errors.Wrap(rows.Err(), "db.get_forms.next")
}

// SaveFields replaces the whole field list of a form.
func (r *Repository) SaveFields(ctx context.Context, id int, fields []model.Field) error {
	data, err := model.EncodeFields(fields)
	if err != nil {
		return errors.Wrap(err, "db.update_form.encode_fields")
	}
	return r.updateForm(ctx, "db.update_form.fields", `UPDATE form SET fields = ? WHERE id = ?`, string(data), id)
}

// SaveSettings replaces the whole settings document of a form.
func (r *Repository) SaveSettings(ctx context.Context, id int, settings model.Settings) error {
	data, err := model.EncodeSettings(settings)
	if err != nil {
		return errors.Wrap(err, "db.update_form.encode_settings")
	}
	return r.updateForm(ctx, "db.update_form.settings", `UPDATE form SET settings = ? WHERE id = ?`, string(data), id)
}

func (r *Repository) updateForm(ctx context.Context, code, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, code)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, code+".verify")
	}
	if n < 1 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteForm removes a form together with its entries.
func (r *Repository) DeleteForm(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "db.begin_tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM entry WHERE form_id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "db.delete_form.entries")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM form WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "db.delete_form")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db.delete_form.verify")
	}
	if n < 1 {
		return model.ErrNotFound
	}

	return errors.Wrap(tx.Commit(), "db.delete_form.commit")
}
