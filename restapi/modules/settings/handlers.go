// Package settings exposes the report catalog and service configuration to
// clients.
package settings

import (
	"github.com/gofiber/fiber/v2"
	"github.com/securecorp/secreport/config"
)

// MailChecker verifies mail transport connectivity.
type MailChecker interface {
	TestConnection() error
}

// GetConfig returns the report catalog so clients can build request forms
// without hardcoding the available options.
func GetConfig(cfg config.AppConfig, catalog *config.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"company_name": cfg.CompanyName,
			"app_name":     cfg.AppName,
			"report_types": catalog.ReportTypes,
			"focus_areas":  catalog.FocusAreas,
			"time_periods": config.TimePeriods,
		})
	}
}

// TestEmail verifies SMTP connectivity without sending a message.
func TestEmail(mail MailChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := mail.TestConnection(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "SMTP connection verified",
		})
	}
}
