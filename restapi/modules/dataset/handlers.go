// Package dataset implements the REST API handlers for loading, exporting and
// summarizing the organization dataset.
package dataset

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tzleads/contact-backend/export"
	"github.com/tzleads/contact-backend/internal/services"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/util"
)

// LoadRequest is the body for POST /api/v1/load
type LoadRequest struct {
	File string `json:"file"`
}

// ExportRequest is the body for POST /api/v1/export and /api/v1/report
type ExportRequest struct {
	File   string `json:"file"`
	Format string `json:"format,omitempty"` // csv, json or report
	Filter struct {
		NoWebsite bool   `json:"no_website,omitempty"`
		Tier      string `json:"tier,omitempty"`
		Type      string `json:"type,omitempty"`
	} `json:"filter,omitempty"`
}

// Load handles POST requests to replace the dataset from a CSV file
func Load(finder *services.ContactFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoadRequest
		if err := c.BodyParser(&req); err != nil || util.IsEmpty(req.File) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "file is required",
			})
		}
		if !util.FileExists(req.File) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": "input file not found: " + req.File,
			})
		}

		loaded, err := finder.Load(req.File)
		if err != nil {
			status := fiber.StatusInternalServerError
			if errors.Is(err, export.ErrInputFile) {
				status = fiber.StatusUnprocessableEntity
			}
			return c.Status(status).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"loaded":  loaded,
			"stats":   finder.Stats(),
		})
	}
}

// Export handles POST requests to serialize a filtered snapshot to a file
func Export(finder *services.ContactFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ExportRequest
		if err := c.BodyParser(&req); err != nil || util.IsEmpty(req.File) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "file is required",
			})
		}

		if err := finder.Export(req.File, req.Format, buildFilters(req)...); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		return c.JSON(fiber.Map{"success": true, "file": req.File})
	}
}

// Report handles POST requests to write the textual research report
func Report(finder *services.ContactFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ExportRequest
		if err := c.BodyParser(&req); err != nil || util.IsEmpty(req.File) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "file is required",
			})
		}

		if err := finder.Export(req.File, "report", buildFilters(req)...); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		return c.JSON(fiber.Map{"success": true, "file": req.File})
	}
}

// Stats handles GET requests for the dataset summary
func Stats(finder *services.ContactFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(finder.Stats())
	}
}

// List handles GET requests for the full organization snapshot
func List(finder *services.ContactFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"organizations": finder.Organizations(),
			"total":         len(finder.Organizations()),
		})
	}
}

func buildFilters(req ExportRequest) []export.Filter {
	var filters []export.Filter
	if req.Filter.NoWebsite {
		filters = append(filters, export.NoWebsiteOnly())
	}
	if req.Filter.Tier != "" {
		filters = append(filters, export.ByTier(model.Tier(req.Filter.Tier)))
	}
	if req.Filter.Type != "" {
		filters = append(filters, export.ByType(model.OrgType(req.Filter.Type)))
	}
	return filters
}
