package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"trendboard/internal/analytics"
	"trendboard/internal/metrics"
	"trendboard/internal/middleware"
	"trendboard/internal/models"
)

// aggregateResponse carries the KPIs for one selection. Summary is nil when
// the selection matches nothing.
type aggregateResponse struct {
	DatasetID uuid.UUID                `json:"dataset_id"`
	Selection models.SelectionResponse `json:"selection"`
	Empty     bool                     `json:"empty"`
	Message   string                   `json:"message,omitempty"`
	Summary   *analytics.Summary       `json:"summary,omitempty"`
}

// Aggregate computes every KPI and breakdown for the requested selection.
func (h *DataHandler) Aggregate(c fiber.Ctx) error {
	ds := middleware.DatasetFrom(c)
	if ds == nil {
		return Fail(c, fiber.StatusServiceUnavailable, "dataset not loaded")
	}

	if ds.Empty() {
		metrics.RecordQuery(metrics.OutcomeEmpty)
		return respond(c, aggregateResponse{
			DatasetID: ds.ID,
			Empty:     true,
			Message:   "No data available.",
		})
	}

	resolved, err := h.resolve(c, ds)
	if err != nil {
		metrics.RecordQuery(metrics.OutcomeInvalid)
		return Fail(c, fiber.StatusBadRequest, err.Error())
	}

	resp := aggregateResponse{
		DatasetID: ds.ID,
		Selection: resolved.Response(),
	}

	policy := analytics.GrowthPolicy{MinBase: h.cfg.GrowthMinBase, Cap: h.cfg.GrowthCap}
	summary, err := analytics.Aggregate(ds.Records, resolved.Selection(), policy)
	switch {
	case errors.Is(err, analytics.ErrEmptyView):
		metrics.RecordQuery(metrics.OutcomeEmpty)
		resp.Empty = true
		resp.Message = "No data matches the selected filters."
	case err != nil:
		metrics.RecordQuery(metrics.OutcomeError)
		return Fail(c, fiber.StatusInternalServerError, "failed to aggregate")
	default:
		metrics.RecordQuery(metrics.OutcomeOK)
		resp.Summary = summary
	}

	return respond(c, resp)
}
