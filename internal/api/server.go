// Package api exposes the ledger over a local HTTP JSON interface. The
// handlers only validate, translate, and format for display; all ledger
// semantics live in the service package.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/koenbroumels/zelf-bar-dienst/internal/service"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	settings *service.SettingsService
	items    *service.ItemService
	payments *service.PaymentService
}

// NewServer creates a Server over the given services.
func NewServer(settings *service.SettingsService, items *service.ItemService, payments *service.PaymentService) *Server {
	return &Server{settings: settings, items: items, payments: payments}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(requestMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Get("/prices", s.handleGetPrices)

		r.Post("/items", s.handleCreateItem)
		r.Get("/items", s.handleListItems)

		r.Post("/batches", s.handleSettle)
		r.Get("/batches", s.handleListBatches)
		r.Delete("/batches/{batchID}", s.handleReverse)
		r.Get("/batches/{batchID}/export", s.handleExport)
	})

	return r
}
