package api

import (
	"nbrates/internal/currency/handler"
	appmw "nbrates/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(currencyHandler *handler.Handler, jwtSecret string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Route("/api/v1/currencies", func(r chi.Router) {
		r.Get("/", currencyHandler.ListCurrencies)
		r.Get("/current", currencyHandler.ListCurrent)
		r.Get("/history", currencyHandler.ListHistory)

		r.Group(func(r chi.Router) {
			r.Use(appmw.RequireAuth(jwtSecret))
			r.Post("/favorite", currencyHandler.AddFavorite)
			r.Delete("/favorite/{currencyID:[0-9]+}", currencyHandler.RemoveFavorite)
			r.Get("/favorite/current", currencyHandler.ListCurrentFavorites)
		})
	})
	return router
}
