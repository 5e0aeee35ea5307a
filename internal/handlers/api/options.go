package api

import (
	"github.com/gofiber/fiber/v3"

	"trendboard/internal/middleware"
	"trendboard/internal/models"
	"trendboard/internal/validation"
)

// Options lists the selectable values, the date bounds, the default
// selection and any load warnings.
func (h *DataHandler) Options(c fiber.Ctx) error {
	ds := middleware.DatasetFrom(c)
	if ds == nil {
		return Fail(c, fiber.StatusServiceUnavailable, "dataset not loaded")
	}

	opts := validation.OptionsFrom(ds)
	resp := models.OptionsResponse{
		DatasetID:  ds.ID,
		Products:   opts.Products,
		Categories: opts.Categories,
		Locations:  opts.Locations,
		Records:    len(ds.Records),
		Warnings:   ds.Warnings,
	}
	if !ds.Empty() {
		resp.From = opts.From.Format(models.DateLayout)
		resp.To = opts.To.Format(models.DateLayout)
		defaults, err := validation.Resolve(validation.Input{}, opts, validation.Defaults{
			Products:  h.cfg.DefaultProducts,
			Locations: h.cfg.DefaultLocations,
		})
		if err != nil {
			return Fail(c, fiber.StatusInternalServerError, err.Error())
		}
		resp.Defaults = defaults.Response()
	}
	if resp.Warnings == nil {
		resp.Warnings = []models.LoadWarning{}
	}

	return respond(c, resp)
}
