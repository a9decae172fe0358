// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mwielgat/cartolina/internal/config"
	"github.com/mwielgat/cartolina/internal/exchange"
	"github.com/mwielgat/cartolina/internal/middleware"
	"github.com/mwielgat/cartolina/internal/store"
)

// Router assembles the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter wires the handler set and middleware from configuration.
func NewRouter(s *store.Store, ex *exchange.Service, cfg *config.APIConfig) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	if len(cfg.CORSOrigins) > 0 {
		mwConfig.CORSAllowedOrigins = cfg.CORSOrigins
	}
	if cfg.RateLimitReqs > 0 {
		mwConfig.RateLimitRequests = cfg.RateLimitReqs
	}
	if cfg.RateLimitWindow > 0 {
		mwConfig.RateLimitWindow = cfg.RateLimitWindow
	}

	return &Router{
		handler:       NewHandler(s, ex, cfg),
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup configures all routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Get("/", router.handler.Root)

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/api/health", router.handler.Health)
		r.Handle("/metrics", promhttp.Handler())
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/register", router.handler.Register)
		r.Get("/", router.handler.ListUsers)
		r.Get("/{id}", router.handler.GetUser)
		r.Patch("/{id}", router.handler.UpdateUser)
		r.Delete("/{id}", router.handler.DeleteUser)
	})

	r.Route("/api/postcards", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/request", router.handler.RequestPostcard)
		r.Patch("/send/{pc_id}", router.handler.SendPostcard)
		r.Patch("/receive/{pc_id}", router.handler.ReceivePostcard)
		r.Get("/", router.handler.ListPostcards)
		r.Get("/{pc_id}", router.handler.GetPostcard)
	})

	r.Route("/api/transactions", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.ListTransactions)
	})

	r.Route("/api/stats", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/overview", router.handler.StatsOverview)
	})

	return r
}
