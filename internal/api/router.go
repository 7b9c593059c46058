package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/cafe-backend/internal/api/middleware"
	"github.com/example/cafe-backend/internal/auth"
)

// NewRouter wires the HTTP surface. Auth endpoints and catalog reads
// are public; everything touching a member's cart, trades, or reviews
// sits behind token authentication.
func NewRouter(handlers *Handlers, authHandlers *AuthHandlers, reviewHandlers *ReviewHandlers, resolver *auth.Resolver) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandlers.Register)
		r.Post("/auth/login", authHandlers.Login)
		r.Post("/auth/refresh", authHandlers.Refresh)

		r.Get("/items", handlers.ListItems)
		r.Get("/items/{itemID}", handlers.GetItem)
		r.Get("/items/{itemID}/reviews", reviewHandlers.ListReviews)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(resolver))

			r.Get("/auth/me", authHandlers.Me)

			r.Get("/cart", handlers.ShowCart)
			r.Post("/cart/items", handlers.AddToCart)
			r.Put("/cart/items/{itemID}", handlers.EditCartItem)

			r.Post("/trades", handlers.Checkout)
			r.Get("/trades", handlers.ListTrades)
			r.Get("/trades/{tradeUUID}", handlers.GetTrade)

			r.Post("/items/{itemID}/reviews", reviewHandlers.CreateReview)
			r.Put("/reviews/{reviewID}", reviewHandlers.UpdateReview)
			r.Delete("/reviews/{reviewID}", reviewHandlers.DeleteReview)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleAdmin))
				r.Post("/items", handlers.CreateItem)
			})
		})
	})

	return r
}
