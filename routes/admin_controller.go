package routes

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/form"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/markup"
	"github.com/mbolis/quick-form/model"
)

func urlID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
		return 0, false
	}
	return id, true
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		name := form.SanitizeText(body.Name)
		if name == "" {
			httpx.LogStatusMsg(w, r, http.StatusUnprocessableEntity, log.DebugLevel, "create_form.name", "Form name is required.")
			return
		}

		id, err := app.CreateForm(r.Context(), name)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_form", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": id,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.ListForms(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}

		f, err := app.GetForm(r.Context(), id)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "get_form", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		render.JSON(w, r, f)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}

		err := app.DeleteForm(r.Context(), id)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "delete_form", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SaveFields replaces the whole field list. Every schema problem is reported.
func SaveFields(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}

		var body struct {
			Fields []form.FieldInput `json:"fields"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		fields, err := form.AcceptFields(body.Fields)
		if err != nil {
			log.Debugf("save_fields.accept: %s", err)
			httpx.FailAll(w, r, http.StatusUnprocessableEntity, "Invalid fields.", form.Problems(err))
			return
		}

		err = app.SaveFields(r.Context(), id, fields)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "save_fields", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.fields", err)
			return
		}

		httpx.Ok(w, r, "Fields saved.", map[string]any{"fields": fields})
	}
}

func SaveStyles(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}

		var body map[string]any
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		f, err := app.GetForm(r.Context(), id)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "save_styles", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		f.Settings.Styles = form.MergeStyles(body, f.Settings.Styles)
		err = app.Repository.SaveSettings(r.Context(), id, f.Settings)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.styles", err)
			return
		}

		httpx.Ok(w, r, "Styles saved.", map[string]any{"styles": f.Settings.Styles})
	}
}

func SaveSettings(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}

		var settings model.Settings
		err := render.DecodeJSON(r.Body, &settings)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		f, err := app.GetForm(r.Context(), id)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "save_settings", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		settings = form.SanitizeSettings(settings)
		settings.Styles = f.Settings.Styles
		err = app.Repository.SaveSettings(r.Context(), id, settings)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.settings", err)
			return
		}

		httpx.Ok(w, r, "Settings saved.", map[string]any{"settings": settings})
	}
}

func PreviewForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}

		f, err := app.GetForm(r.Context(), id)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "preview_form", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		var out bytes.Buffer
		err = markup.Form(&out, f, markup.Options{Preview: true})
		if err != nil {
			httpx.LogInternalError(w, r, "markup.form", err)
			return
		}

		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			render.JSON(w, r, map[string]any{"html": out.String()})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		out.WriteTo(w)
	}
}
