package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Post("/user/signup", h.SignupHandler)
		r.Post("/user/login", h.LoginHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/user", h.GetUserHandler)
			r.Patch("/user/funds", h.DepositFundsHandler)

			r.Get("/cards", h.ListCardsHandler)
			r.Post("/cards/", h.CreateCardHandler)
			r.Get("/packs", h.ListPacksHandler)

			r.Get("/cart", h.GetCartHandler)
			r.Post("/cart", h.AddCartItemHandler)
			r.Put("/cart", h.UpdateCartItemHandler)
			r.Delete("/cart", h.ClearCartHandler)
			r.Delete("/cart/card/{id}", h.RemoveCartItemHandler)
			r.Post("/cart/checkout", h.CheckoutHandler)

			r.Get("/inventory", h.ListInventoryHandler)
		})
	})
}
