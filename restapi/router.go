// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/tzleads/contact-backend/internal/services"
	"github.com/tzleads/contact-backend/restapi/modules/dataset"
	"github.com/tzleads/contact-backend/restapi/modules/research"
	"github.com/tzleads/contact-backend/restapi/modules/search"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint
func SetupRoutes(app *fiber.App, finder *services.ContactFinder, schema graphql.Schema) {
	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Operation modes
	api.Post("/search", search.Post(finder))
	api.Post("/research", research.Post(finder))
	api.Post("/load", dataset.Load(finder))
	api.Post("/export", dataset.Export(finder))
	api.Post("/report", dataset.Report(finder))
	api.Get("/stats", dataset.Stats(finder))
	api.Get("/organizations", dataset.List(finder))
}
