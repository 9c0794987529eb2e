// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkmart/admin-api/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	linkHandler *handlers.LinkHandler,
	categoryHandler *handlers.CategoryHandler,
	productHandler *handlers.ProductHandler,
	adminHandler *handlers.AdminHandler,
	marketplaceHandler *handlers.MarketplaceHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Link CRUD and bulk reorder. The positions route is registered
		// before {id} so chi does not treat "positions" as a link ID.
		r.Post("/links", linkHandler.CreateLink)
		r.Put("/links/positions", linkHandler.BulkUpdatePositions)
		r.Get("/links/{id}", linkHandler.GetLink)
		r.Patch("/links/{id}", linkHandler.UpdateLink)
		r.Delete("/links/{id}", linkHandler.DeleteLink)
		r.Put("/links/{id}/price", linkHandler.UpdateLinkPrice)

		// Product CRUD, bulk repricing, and nested link listing.
		r.Post("/products", productHandler.CreateProduct)
		r.Put("/products/prices", productHandler.BulkUpdatePrices)
		r.Get("/products/{id}", productHandler.GetProduct)
		r.Patch("/products/{id}", productHandler.UpdateProduct)
		r.Delete("/products/{id}", productHandler.DeleteProduct)
		r.Get("/products/{productId}/links", linkHandler.ListProductLinks)

		// Category tree.
		r.Get("/categories", categoryHandler.GetTree)
		r.Post("/categories", categoryHandler.CreateCategory)
		r.Patch("/categories/{id}", categoryHandler.UpdateCategory)
		r.Delete("/categories/{id}", categoryHandler.DeleteCategory)

		// Admin accounts and bulk archival.
		r.Get("/admins", adminHandler.ListAdmins)
		r.Post("/admins", adminHandler.CreateAdmin)
		r.Post("/admins/archive", adminHandler.BulkArchiveAdmins)
		r.Get("/admins/{id}", adminHandler.GetAdmin)
		r.Patch("/admins/{id}", adminHandler.UpdateAdmin)

		// Marketplaces.
		r.Get("/marketplaces", marketplaceHandler.ListMarketplaces)
		r.Post("/marketplaces", marketplaceHandler.CreateMarketplace)
		r.Patch("/marketplaces/{id}", marketplaceHandler.UpdateMarketplace)
	})

	return r
}
