// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/securecorp/secreport/internal/services"
	"github.com/securecorp/secreport/restapi/modules/reports"
	"github.com/securecorp/secreport/restapi/modules/settings"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, delivery *services.ReportDelivery, schema graphql.Schema) {

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Report generation and delivery
	api.Post("/generate-report", reports.GenerateReport(delivery))

	// Catalog and diagnostics
	api.Get("/config", settings.GetConfig(delivery.Svc.Cfg, delivery.Svc.Catalog))
	api.Get("/test-email", settings.TestEmail(delivery.Mail))

	log.Println("API routes initialized successfully")
}
