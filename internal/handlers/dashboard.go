package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"trendboard/internal/analytics"
	"trendboard/internal/config"
	"trendboard/internal/metrics"
	"trendboard/internal/middleware"
	"trendboard/internal/validation"
)

// DashboardHandler renders the single-page dashboard.
type DashboardHandler struct {
	cfg    *config.Config
	policy analytics.GrowthPolicy
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{
		cfg:    cfg,
		policy: analytics.GrowthPolicy{MinBase: cfg.GrowthMinBase, Cap: cfg.GrowthCap},
	}
}

// Index renders filters, KPIs and the breakdown tables for the current
// query string. It expects RequireDataset to have run.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	ds := middleware.DatasetFrom(c)
	if ds == nil {
		return fiber.ErrServiceUnavailable
	}

	data := NewBranding(h.cfg).Page("")
	data["Warnings"] = ds.Warnings
	data["DatasetID"] = ds.ID

	if ds.Empty() {
		metrics.RecordQuery(metrics.OutcomeEmpty)
		data["EmptyMessage"] = "No data available."
		return c.Render("dashboard", data)
	}

	opts := validation.OptionsFrom(ds)
	resolved, err := validation.Resolve(validation.InputFrom(validation.ArgsLookup(c.Request().URI().QueryArgs())), opts, validation.Defaults{
		Products:  h.cfg.DefaultProducts,
		Locations: h.cfg.DefaultLocations,
	})
	if err != nil {
		metrics.RecordQuery(metrics.OutcomeInvalid)
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	data["Options"] = opts
	data["Selection"] = resolved
	data["SelectedProducts"] = selected(resolved.Products)
	data["SelectedCategories"] = selected(resolved.Categories)
	data["SelectedLocations"] = selected(resolved.Locations)

	summary, err := analytics.Aggregate(ds.Records, resolved.Selection(), h.policy)
	if err != nil {
		if errors.Is(err, analytics.ErrEmptyView) {
			metrics.RecordQuery(metrics.OutcomeEmpty)
			data["EmptyMessage"] = "No data matches the selected filters."
			return c.Render("dashboard", data)
		}
		metrics.RecordQuery(metrics.OutcomeError)
		return err
	}

	metrics.RecordQuery(metrics.OutcomeOK)
	data["Summary"] = summary
	data["HeatMax"] = summary.CityProduct.Max()
	return c.Render("dashboard", data)
}
