package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemsvc/pkg/app"
	"github.com/ghuser/itemsvc/pkg/auth"
	"github.com/ghuser/itemsvc/services/item/application/handlers"
	appsvcs "github.com/ghuser/itemsvc/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router. Every
// route requires a bearer token.
func ItemRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBearer(a.Auth, a.Logger))
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs, a.Errors).Execute)
			r.Get("/", handlers.NewListItemsHandler(svcs, a.Errors).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs, a.Errors).Execute)
			r.Patch("/{id}", handlers.NewPatchItemHandler(svcs, a.Errors).Execute)
		})
	})
}
