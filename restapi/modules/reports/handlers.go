// Package reports implements the REST API handlers for report generation.
package reports

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/securecorp/secreport/internal/services"
	"github.com/securecorp/secreport/model"
)

// GenerateReport handles POST requests for generating and delivering a report.
// The PDF is always written to disk before delivery is attempted; a delivery
// failure degrades the response status but never discards the artifact.
func GenerateReport(delivery *services.ReportDelivery) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ReportRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(model.ReportResponse{
				Status:  "error",
				Message: "Invalid request body: " + err.Error(),
			})
		}

		resp, err := delivery.GenerateAndDeliver(c.Context(), req)
		if err != nil {
			status := fiber.StatusInternalServerError
			if model.IsRequestError(err) {
				status = fiber.StatusBadRequest
			}
			var re *model.RenderError
			if errors.As(err, &re) {
				delivery.Svc.Log.Errorf("Report rendering failed: %v", err)
			}
			return c.Status(status).JSON(model.ReportResponse{
				Status:  "error",
				Message: err.Error(),
			})
		}

		return c.JSON(resp)
	}
}
