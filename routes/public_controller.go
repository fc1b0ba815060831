package routes

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/markup"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/submission"
)

const maxSubmissionSize = 1 << 20

func submitPath(formID int) string {
	return fmt.Sprintf("/api/forms/%d/submissions", formID)
}

func PublicFormPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, err := app.GetForm(r.Context(), formID)
		if errors.Is(err, model.ErrNotFound) {
			log.Debugf("get_form: not found (%d)", formID)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			markup.NotFound(w)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		site, err := app.Site(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_settings", err)
			return
		}

		tok, err := app.Tokens.Issue(formID)
		if err != nil {
			httpx.LogInternalError(w, r, "token.issue", err)
			return
		}

		var page bytes.Buffer
		err = markup.Page(&page, form, markup.Options{
			Token:     tok,
			Action:    submitPath(formID),
			Turnstile: site.Widget(),
		})
		if err != nil {
			httpx.LogInternalError(w, r, "markup.page", err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		page.WriteTo(w)
	}
}

// PublicIssueToken hands out a fresh submission token, for pages that embed
// the form markup themselves.
func PublicIssueToken(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		_, err = app.GetForm(r.Context(), formID)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "get_form", formID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		tok, err := app.Tokens.Issue(formID)
		if err != nil {
			httpx.LogInternalError(w, r, "token.issue", err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		render.JSON(w, r, map[string]any{
			"token":  tok,
			"action": submitPath(formID),
		})
	}
}

func PublicSubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		err = r.ParseMultipartForm(maxSubmissionSize)
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid request.")
			return
		}

		site, err := app.Site(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_settings", err)
			return
		}

		res, err := app.Pipeline.Submit(r.Context(), site.Operator(), submission.Request{
			FormID:          formID,
			Token:           r.PostFormValue("_df_token"),
			Values:          r.PostForm,
			CaptchaResponse: r.PostFormValue("cf-turnstile-response"),
			IP:              clientIP(r),
			UserAgent:       r.UserAgent(),
		})
		if err != nil {
			var serr *submission.Error
			if errors.As(err, &serr) {
				httpx.Fail(w, r, serr.Status(), serr.Message)
				return
			}
			httpx.LogInternalError(w, r, "submission", err)
			return
		}

		var data map[string]any
		if res.RedirectURL != "" {
			data = map[string]any{"redirect_url": res.RedirectURL}
		}
		httpx.Ok(w, r, res.Message, data)
	}
}

// clientIP reads the address set by middleware.RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
