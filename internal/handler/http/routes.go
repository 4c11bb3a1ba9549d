package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// order routes require a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/orders", h.createOrder)
		r.Get("/api/orders/received", h.ordersReceived)
		r.Post("/api/orders/{id}/validate", h.validateOrder)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
