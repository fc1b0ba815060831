package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-form/model"
)

const (
	maxUserAgentLen = 255
	maxIPLen        = 100
)

// EntryQuery selects a page of entries. A zero FormID matches every form.
type EntryQuery struct {
	FormID int
	Limit  int
	Offset int
}

// CreateEntry stores one submission. The request metadata is truncated, never
// validated.
func (r *Repository) CreateEntry(ctx context.Context, formID int, data model.EntryData, ip, userAgent string) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return 0, errors.Wrap(err, "db.insert_entry.encode")
	}

	var id int
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO entry (form_id, data, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		formID,
		string(payload),
		truncate(ip, maxIPLen),
		truncate(userAgent, maxUserAgentLen),
		r.now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "db.insert_entry")
	}
	return id, nil
}

func (r *Repository) GetEntry(ctx context.Context, id int) (model.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, form_id, data, ip_address, user_agent, created_at
		FROM entry
		WHERE id = ?`,
		id,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return e, model.ErrNotFound
	}
	return e, errors.Wrap(err, "db.get_entry")
}

// ListEntries returns one page of entries, newest first, and the total count
// matching the query.
func (r *Repository) ListEntries(ctx context.Context, q EntryQuery) ([]model.Entry, int, error) {
	where, args := "", []any{}
	if q.FormID > 0 {
		where = "WHERE form_id = ?"
		args = append(args, q.FormID)
	}

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entry `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.Wrap(err, "db.count_entries")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, form_id, data, ip_address, user_agent, created_at
		FROM entry `+where+`
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		append(args, limit, q.Offset)...,
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "db.get_entries")
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "db.get_entries.scan")
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "db.get_entries.next")
	}
	return entries, total, nil
}

func (r *Repository) DeleteEntry(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entry WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "db.delete_entry")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db.delete_entry.verify")
	}
	if n < 1 {
		return model.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (model.Entry, error) {
	e := model.Entry{}
	var data string
	err := row.Scan(&e.ID, &e.FormID, &data, &e.IP, &e.UserAgent, &e.CreatedAt)
	if err != nil {
		return e, err
	}
	if data != "" {
		if err = json.Unmarshal([]byte(data), &e.Data); err != nil {
			return e, errors.Wrapf(err, "entry %d: parse data", e.ID)
		}
	}
	if e.Data == nil {
		e.Data = model.EntryData{}
	}
	return e, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
