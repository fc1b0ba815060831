package routes

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/database"
	"github.com/mbolis/quick-form/export"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func ListEntries(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := queryInt(r, "form_id", 0)
		if err != nil || formID < 0 {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.form_id")
			return
		}
		page, err := queryInt(r, "page", 1)
		if err != nil || page < 1 {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.page")
			return
		}
		limit, err := queryInt(r, "limit", defaultPageSize)
		if err != nil || limit < 1 || limit > maxPageSize {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.limit")
			return
		}

		entries, total, err := app.ListEntries(r.Context(), database.EntryQuery{
			FormID: formID,
			Limit:  limit,
			Offset: (page - 1) * limit,
		})
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_entries", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"entries": entries,
			"total":   total,
			"page":    page,
			"pages":   (total + limit - 1) / limit,
		})
	}
}

func GetEntry(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}

		e, err := app.GetEntry(r.Context(), id)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "get_entry", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_entry", err)
			return
		}

		render.JSON(w, r, e)
	}
}

func DeleteEntry(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}

		err := app.DeleteEntry(r.Context(), id)
		if errors.Is(err, model.ErrNotFound) {
			httpx.LogNotFound(w, r, "delete_entry", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_entry", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportEntries downloads up to export.MaxEntries entries, newest first.
func ExportEntries(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "export.format", "Invalid export format.")
			return
		}
		formID, err := queryInt(r, "form_id", 0)
		if err != nil || formID < 0 {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.form_id")
			return
		}

		entries, _, err := app.ListEntries(r.Context(), database.EntryQuery{
			FormID: formID,
			Limit:  export.MaxEntries,
		})
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_entries", err)
			return
		}

		var out bytes.Buffer
		err = export.Write(&out, format, entries)
		if err != nil {
			httpx.LogInternalError(w, r, "export.write", err)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
		out.WriteTo(w)
	}
}
