package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Get("/health", h.health)
	router.Post("/api/auth/login", h.login)
	router.Post("/api/auth/refresh", h.refresh)

	// websocket endpoint does its own token check (query parameter)
	if h.realtimeHandler != nil {
		router.Handle("/ws", h.realtimeHandler)
	}

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)

		r.Route("/api/clients", func(r chi.Router) {
			r.Get("/", h.listClients)
			r.Post("/", h.createClient)
			r.Get("/{id}", h.getClient)
			r.Put("/{id}", h.updateClient)
			r.Delete("/{id}", h.deleteClient)
		})

		r.Route("/api/quotas", func(r chi.Router) {
			r.Get("/{client_id}", h.getQuota)
			r.Put("/{client_id}", h.updateQuota)
		})

		r.Route("/api/copies", func(r chi.Router) {
			r.Post("/", h.recordCopy)
			r.Get("/history", h.copyHistory)
		})

		r.Route("/api/dumps", func(r chi.Router) {
			r.Get("/", h.listDumps)
			r.Post("/upload", h.uploadDump)
		})

		r.Route("/api/sync", func(r chi.Router) {
			r.Post("/push", h.syncPush)
			r.Get("/pull", h.syncPull)
		})
	})

	return router
}
