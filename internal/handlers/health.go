package handlers

import (
	"github.com/gofiber/fiber/v3"

	"trendboard/internal/config"
	"trendboard/internal/corpus"
	"trendboard/internal/models"
)

// HealthHandler reports liveness and readiness.
type HealthHandler struct {
	corpus *corpus.Corpus
	cfg    *config.Config
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(corp *corpus.Corpus, cfg *config.Config) *HealthHandler {
	return &HealthHandler{corpus: corp, cfg: cfg}
}

// Live always answers 200 and says whether a dataset is cached.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	resp := models.HealthResponse{Status: "ok"}
	if ds, ok := h.corpus.Cached(h.cfg.DataRoot); ok {
		id := ds.ID
		resp.Loaded = true
		resp.DatasetID = &id
		resp.Records = len(ds.Records)
	}
	return c.JSON(resp)
}

// Ready loads the dataset if needed and answers 503 when the data root is
// missing.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ds, err := h.corpus.Load(c.Context(), h.cfg.DataRoot)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.HealthResponse{Status: err.Error()})
	}
	id := ds.ID
	return c.JSON(models.HealthResponse{
		Status:    "ok",
		Loaded:    true,
		DatasetID: &id,
		Records:   len(ds.Records),
	})
}
