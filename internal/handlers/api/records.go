package api

import (
	"github.com/gofiber/fiber/v3"

	"trendboard/internal/analytics"
	"trendboard/internal/metrics"
	"trendboard/internal/middleware"
	"trendboard/internal/models"
)

// Records returns the filtered view itself, in load order.
func (h *DataHandler) Records(c fiber.Ctx) error {
	ds := middleware.DatasetFrom(c)
	if ds == nil {
		return Fail(c, fiber.StatusServiceUnavailable, "dataset not loaded")
	}

	resp := models.RecordsResponse{DatasetID: ds.ID, Records: []models.Record{}}
	if ds.Empty() {
		metrics.RecordQuery(metrics.OutcomeEmpty)
		return respond(c, resp)
	}

	resolved, err := h.resolve(c, ds)
	if err != nil {
		metrics.RecordQuery(metrics.OutcomeInvalid)
		return Fail(c, fiber.StatusBadRequest, err.Error())
	}

	resp.Selection = resolved.Response()
	resp.Records = analytics.Filter(ds.Records, resolved.Selection())
	resp.Count = len(resp.Records)
	if resp.Count == 0 {
		metrics.RecordQuery(metrics.OutcomeEmpty)
	} else {
		metrics.RecordQuery(metrics.OutcomeOK)
	}

	return respond(c, resp)
}
