package routers

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lernhub/checkout-recon/internal/di"
	http2 "github.com/lernhub/checkout-recon/internal/infrastructure/api/http"
	"github.com/lernhub/checkout-recon/internal/infrastructure/api/middlewares"
)

func NewRouter(container *di.Container) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)

	// Set up v1 routes with a path prefix
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/checkout", func(r chi.Router) {
			r.Use(middlewares.IdentityMiddleware(container.UserInteractor))
			ch := container.CheckoutHandler
			r.Get("/return", ch.ResolveReturn)
			r.Get("/updates", container.UpdatesHandler.Stream)
		})
		r.Route("/users", func(r chi.Router) {
			r.Route(fmt.Sprintf("/{%s}", http2.UserIDParam), func(r chi.Router) {
				r.Use(middlewares.UserValidationMiddleware(container.UserInteractor))
				r.Route("/purchases", func(r chi.Router) {
					ph := container.PurchasesHandler
					r.Get("/", ph.ListForUser)
				})
			})
		})
	})

	return router
}
