// Package submission runs one form submission from security checks to
// delivery: verify, sanitize and validate, notify, then store.
package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mbolis/quick-form/form"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/notify"
	"github.com/mbolis/quick-form/token"
)

type Store interface {
	GetForm(ctx context.Context, id int) (model.Form, error)
	CreateEntry(ctx context.Context, formID int, data model.EntryData, ip, userAgent string) (int, error)
	ConsumeToken(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
	ReleaseToken(ctx context.Context, jti string) error
}

type Tokens interface {
	Verify(raw string, formID int) (token.Claims, error)
}

type Captcha interface {
	Verify(ctx context.Context, secret, response, remoteIP string) error
}

// Observer is told the outcome of every run.
type Observer interface {
	ObserveSubmission(outcome string)
	ObserveStoreFailure()
}

// Operator is the site-wide configuration a run needs, loaded once per
// request by the caller.
type Operator struct {
	AdminEmail  string
	FromEmail   string
	Subject     string
	SiteURL     string
	RedirectURL string

	TurnstileEnabled bool
	TurnstileSecret  string
}

type Request struct {
	FormID int
	Token  string
	// Values holds the raw request parameters, keyed df_field_<id> and, for
	// multi-value fields, df_field_<id>[].
	Values          map[string][]string
	CaptchaResponse string
	IP              string
	UserAgent       string
}

type Result struct {
	Message     string
	RedirectURL string
	// EntryID is zero when no entry was stored.
	EntryID int
}

type Pipeline struct {
	Store    Store
	Notifier notify.Notifier
	Tokens   Tokens
	Captcha  Captcha
	Observer Observer
}

// Submit processes req. Failures are always *Error. Once the notification is
// sent the run succeeds, even if the entry cannot be stored.
func (p *Pipeline) Submit(ctx context.Context, op Operator, req Request) (Result, error) {
	res, err := p.submit(ctx, op, req)

	outcome := "success"
	if err != nil {
		outcome = err.Kind.String()
		entry := log.WithFields(log.Fields{"form_id": req.FormID, "outcome": outcome})
		if err.Err != nil {
			entry = entry.WithError(err.Err)
		}
		if err.Kind == KindDelivery || err.Kind == KindInternal {
			entry.Error("submission: " + err.Message)
		} else {
			entry.Debug("submission: " + err.Message)
		}
	}
	if p.Observer != nil {
		p.Observer.ObserveSubmission(outcome)
	}

	if err != nil {
		return res, err
	}
	return res, nil
}

func (p *Pipeline) submit(ctx context.Context, op Operator, req Request) (Result, *Error) {
	if req.FormID <= 0 {
		return Result{}, fail(KindInvalid, "Invalid form.", nil)
	}

	// security
	if strings.TrimSpace(req.Token) == "" {
		return Result{}, fail(KindSecurity, "Security check failed.", token.ErrInvalid)
	}
	claims, err := p.Tokens.Verify(req.Token, req.FormID)
	if err != nil {
		return Result{}, fail(KindSecurity, "Security check failed.", err)
	}
	if op.TurnstileEnabled {
		if p.Captcha == nil {
			return Result{}, fail(KindSecurity, "Bot verification failed.", errors.New("no verifier configured"))
		}
		if err = p.Captcha.Verify(ctx, op.TurnstileSecret, req.CaptchaResponse, req.IP); err != nil {
			return Result{}, fail(KindSecurity, "Bot verification failed.", err)
		}
	}

	f, err := p.Store.GetForm(ctx, req.FormID)
	if errors.Is(err, model.ErrNotFound) {
		return Result{}, fail(KindNotFound, "Form not found.", err)
	}
	if err != nil {
		return Result{}, fail(KindInternal, "Invalid form configuration.", err)
	}

	// sanitize & validate
	data, recipient, verr := collect(f.Fields, req.Values)
	if verr != nil {
		return Result{}, fail(KindValidation, verr.Message, verr)
	}

	fresh, err := p.Store.ConsumeToken(ctx, claims.ID, claims.Expiry())
	if err != nil {
		return Result{}, fail(KindInternal, "Security check failed.", err)
	}
	if !fresh {
		return Result{}, fail(KindSecurity, "This form was already submitted.", token.ErrInvalid)
	}

	// notify
	msg, err := p.message(f, op, data, recipient)
	if err == nil {
		err = p.Notifier.Send(ctx, msg)
	}
	if err != nil {
		p.release(ctx, f.ID, claims.ID)
		return Result{}, fail(KindDelivery, "Email could not be sent.", err)
	}

	// store
	res := Result{
		Message:     firstNonEmpty(f.Settings.SuccessMessage, DefaultSuccessMessage),
		RedirectURL: op.RedirectURL,
	}
	if f.Settings.StoreEntries {
		res.EntryID, err = p.Store.CreateEntry(ctx, f.ID, data, req.IP, req.UserAgent)
		if err != nil {
			log.WithFields(log.Fields{"form_id": f.ID}).WithError(err).
				Warn("submission: notification sent but entry not stored")
			if p.Observer != nil {
				p.Observer.ObserveStoreFailure()
			}
		}
	}
	return res, nil
}

// release gives the token back after a failed delivery, so the user can
// resubmit the same page.
func (p *Pipeline) release(ctx context.Context, formID int, jti string) {
	if err := p.Store.ReleaseToken(ctx, jti); err != nil {
		log.WithFields(log.Fields{"form_id": formID}).WithError(err).
			Warn("submission: token not released after failed delivery")
	}
}

// collect sanitizes and validates every field in order, stopping at the
// first error. It also returns the first valid email value submitted.
func collect(fields []model.Field, values map[string][]string) (model.EntryData, string, *form.FieldError) {
	data := model.EntryData{}
	recipient := ""

	for _, f := range fields {
		if f.Type == model.FieldSubheading {
			continue
		}

		raw, present := lookup(values, f.Key())
		if !present {
			if f.Required {
				return nil, "", form.RequiredError(f)
			}
			continue
		}

		v, err := form.Process(f, raw)
		if err != nil {
			var ferr *form.FieldError
			if errors.As(err, &ferr) {
				return nil, "", ferr
			}
			return nil, "", &form.FieldError{FieldID: f.ID, Label: form.Label(f), Message: err.Error()}
		}

		if f.Type == model.FieldEmail && recipient == "" && form.IsEmail(v.Text()) {
			recipient = v.Text()
		}

		data = append(data, model.Pair{Label: uniqueLabel(data, form.Label(f), f.ID), Value: v})
	}
	return data, recipient, nil
}

// uniqueLabel appends the field id to a label already in data, then a counter
// while the result is still taken.
func uniqueLabel(data model.EntryData, label, id string) string {
	if !data.Has(label) {
		return label
	}
	base := fmt.Sprintf("%s (%s)", label, id)
	candidate := base
	for n := 2; data.Has(candidate); n++ {
		candidate = fmt.Sprintf("%s %d", base, n)
	}
	return candidate
}

func lookup(values map[string][]string, key string) ([]string, bool) {
	if raw, ok := values[key]; ok {
		return raw, true
	}
	raw, ok := values[key+"[]"]
	return raw, ok
}

func (p *Pipeline) message(f model.Form, op Operator, data model.EntryData, submitted string) (notify.Message, error) {
	to := submitted
	if to == "" && form.IsEmail(f.Settings.ToEmail) {
		to = f.Settings.ToEmail
	}
	if to == "" {
		to = op.AdminEmail
	}
	if to == "" {
		return notify.Message{}, errors.New("no recipient configured")
	}

	var cc []string
	if op.AdminEmail != "" && !strings.EqualFold(op.AdminEmail, to) {
		cc = []string{op.AdminEmail}
	}

	body, err := ComposeHTML(data)
	if err != nil {
		return notify.Message{}, err
	}

	return notify.Message{
		FromEmail: senderAddress(firstNonEmpty(f.Settings.FromEmail, op.FromEmail), op.SiteURL),
		FromName:  f.Name,
		To:        to,
		Cc:        cc,
		Subject:   firstNonEmpty(f.Settings.Subject, op.Subject, DefaultSubject),
		HTML:      body,
	}, nil
}
