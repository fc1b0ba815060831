package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/routes/middlewares"
)

const maxBodySize = 2 << 20

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	root.Get(`/forms/{id:^\d+$}`, PublicFormPage(app))
	root.Method(http.MethodGet, "/metrics", app.Metrics.Handler())
	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.Use(middleware.RequestSize(maxBodySize))

	api.Route("/forms", func(r chi.Router) {
		r.Use(publicCORS().Handler)

		r.Get(`/{id:^\d+$}/token`, PublicIssueToken(app))
		r.Post(`/{id:^\d+$}/submissions`, PublicSubmitForm(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	api.With(middlewares.Admin(app.Config.TokenSecret)).Mount("/admin", adminRouter(app))

	return api
}

func adminRouter(app app.App) http.Handler {
	r := chi.NewRouter()

	r.Post("/forms", CreateForm(app))
	r.Get("/forms", ListForms(app))
	r.Get(`/forms/{id:^\d+$}`, GetForm(app))
	r.Delete(`/forms/{id:^\d+$}`, DeleteForm(app))
	r.Put(`/forms/{id:^\d+$}/fields`, SaveFields(app))
	r.Put(`/forms/{id:^\d+$}/styles`, SaveStyles(app))
	r.Put(`/forms/{id:^\d+$}/settings`, SaveSettings(app))
	r.Get(`/forms/{id:^\d+$}/preview`, PreviewForm(app))

	r.Get("/entries", ListEntries(app))
	r.Get("/entries/export", ExportEntries(app))
	r.Get(`/entries/{id:^\d+$}`, GetEntry(app))
	r.Delete(`/entries/{id:^\d+$}`, DeleteEntry(app))

	r.Get("/settings", GetOperatorSettings(app))
	r.Put("/settings", SaveOperatorSettings(app))
	r.Post("/settings/test-email", SendTestEmail(app))

	return r
}

// publicCORS lets forms embedded on other sites fetch tokens and submit.
func publicCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300,
	})
}
