package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/captcha"
	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/database"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/metrics"
	"github.com/mbolis/quick-form/notify"
	"github.com/mbolis/quick-form/routes"
	"github.com/mbolis/quick-form/submission"
	"github.com/mbolis/quick-form/token"
)

func main() {
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	if cfg.AdminUser != "" {
		err = repo.EnsureAdmin(context.Background(), cfg.AdminUser, cfg.AdminPassword)
		if err != nil {
			log.Fatal("main.db.ensure_admin:", err)
		}
	}

	notifier, err := notify.New(cfg.Mail)
	if err != nil {
		log.Fatal("main.notify:", err)
	}

	tokens := token.NewIssuer(cfg.TokenSecret, cfg.SubmitTokenTTL)
	m := metrics.New()

	app := app.App{
		Repository:   repo,
		BearerServer: httpx.NewBearerServer(repo, cfg),
		Config:       cfg,
		Tokens:       tokens,
		Notifier:     notifier,
		Metrics:      m,
		Pipeline: &submission.Pipeline{
			Store:    repo,
			Notifier: notifier,
			Tokens:   tokens,
			Captcha:  captcha.NewTurnstile(cfg.Turnstile.Timeout),
			Observer: m,
		},
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
