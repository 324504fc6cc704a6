// Package search implements the REST API handlers for the search operation mode.
package search

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tzleads/contact-backend/internal/services"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/util"
)

// Request is the body for POST /api/v1/search
type Request struct {
	Type     string   `json:"type"`
	Location string   `json:"location"`
	Keywords []string `json:"keywords,omitempty"`
	Limit    int      `json:"limit"`
	Service  string   `json:"service,omitempty"`
}

// Post handles POST requests to search the configured sources
func Post(finder *services.ContactFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req Request

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid request body: " + err.Error(),
			})
		}

		if util.IsEmpty(req.Type) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "type is required",
			})
		}
		if req.Limit <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "limit must be positive",
			})
		}

		q := model.Query{
			Type:     model.OrgType(req.Type),
			Location: req.Location,
			Keywords: req.Keywords,
			Limit:    req.Limit,
		}

		outcomes, err := finder.Search(c.Context(), q, req.Service)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
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
