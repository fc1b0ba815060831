package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/form"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/submission"
)

// GetOperatorSettings shows the settings in effect; the Turnstile secret is
// never sent back.
func GetOperatorSettings(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		site, err := app.Site(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_settings", err)
			return
		}

		render.JSON(w, r, site.Settings())
	}
}

func SaveOperatorSettings(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings model.OperatorSettings
		err := render.DecodeJSON(r.Body, &settings)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		settings = form.SanitizeOperator(settings)
		err = app.SaveOperatorSettings(r.Context(), settings)
		if err != nil {
			httpx.LogInternalError(w, r, "db.save_settings", err)
			return
		}

		httpx.Ok(w, r, "Settings saved.", settings.Redacted())
	}
}

func SendTestEmail(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		site, err := app.Site(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_settings", err)
			return
		}

		op := site.Operator()
		if !form.IsEmail(op.AdminEmail) {
			httpx.LogStatusMsg(w, r, http.StatusUnprocessableEntity, log.DebugLevel, "test_email.admin_email", "Admin email is not set or invalid.")
			return
		}

		msg := submission.TestMessage(op, form.EmailList(site.CCEmail))
		err = app.Notifier.Send(r.Context(), msg)
		if err != nil {
			log.Errorf("test_email.send: %s", err)
			httpx.Fail(w, r, http.StatusInternalServerError, "Email could not be sent.")
			return
		}

		httpx.Ok(w, r, "Test email sent to "+op.AdminEmail+".", nil)
	}
}
