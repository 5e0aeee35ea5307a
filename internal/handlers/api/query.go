package api

import (
	"github.com/gofiber/fiber/v3"

	"trendboard/internal/config"
	"trendboard/internal/corpus"
	"trendboard/internal/validation"
)

// DataHandler serves the JSON views of the dataset. Routes must run
// RequireDatasetJSON first.
type DataHandler struct {
	cfg *config.Config
}

// NewDataHandler creates a new API data handler.
func NewDataHandler(cfg *config.Config) *DataHandler {
	return &DataHandler{cfg: cfg}
}

// resolve validates the selection parameters against ds.
func (h *DataHandler) resolve(c fiber.Ctx, ds *corpus.Dataset) (validation.Resolved, error) {
	return validation.Resolve(validation.InputFrom(validation.ArgsLookup(c.Request().URI().QueryArgs())), validation.OptionsFrom(ds), validation.Defaults{
		Products:  h.cfg.DefaultProducts,
		Locations: h.cfg.DefaultLocations,
	})
}
