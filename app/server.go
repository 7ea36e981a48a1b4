// Package app serves the invoice preview UI: a local, read-only index
// of the PDF artifacts generated for each configured client.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelofallars/hourbill/internal/config"
)

type App struct {
	host string
	port int

	slog   *slog.Logger
	router chi.Router

	cfg *config.Config
}

func New(slog *slog.Logger, cfg *config.Config) *App {
	app := &App{
		host: "localhost",
		port: 3000,

		router: chi.NewRouter(),
		slog:   slog,

		cfg: cfg,
	}

	app.RegisterRoutes()

	return app
}

func (a *App) WithHost(host string) *App {
	a.host = host
	return a
}

func (a *App) WithPort(port uint) *App {
	a.port = int(port)
	return a
}

func (a *App) Serve() error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	server := http.Server{
		Addr:    addr,
		Handler: a.router,

		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	a.slog.Info("preview server started listening", "addr", addr)

	return server.ListenAndServe()
}
