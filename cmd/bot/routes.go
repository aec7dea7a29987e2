package main

import (
	"net/http"

	"github.com/AdamBeresnev/tourney-bot/internal/httputil"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const livenessText = "Tournament bot is running!"

// newRouter serves the hosting platform's liveness probes. It shares no state
// with the command path.
func newRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.GetHead)

	r.NotFound(httputil.NotFound)
	r.MethodNotAllowed(httputil.MethodNotAllowed)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httputil.Text(w, http.StatusOK, livenessText)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.Text(w, http.StatusOK, "OK")
	})

	return r
}
