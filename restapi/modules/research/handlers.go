// Package research implements the REST API handlers for the research operation mode.
package research

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tzleads/contact-backend/internal/services"
)

// Request is the body for POST /api/v1/research
type Request struct {
	Service string `json:"service,omitempty"`
}

// Post handles POST requests to re-research organizations below Tier A
func Post(finder *services.ContactFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req Request
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"message": "Invalid request body: " + err.Error(),
				})
			}
		}

		outcomes, err := finder.Research(c.Context(), req.Service)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"sources": outcomes,
			"stats":   finder.Stats(),
		})
	}
}
