package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"trendboard/internal/corpus"
	"trendboard/internal/metrics"
)

const datasetKey = "dataset"

// DatasetMiddleware loads the dataset for a data root before the handler runs.
type DatasetMiddleware struct {
	corpus *corpus.Corpus
	root   string
}

// NewDatasetMiddleware creates a new dataset middleware instance.
func NewDatasetMiddleware(c *corpus.Corpus, root string) *DatasetMiddleware {
	return &DatasetMiddleware{corpus: c, root: root}
}

// RequireDataset stores the dataset in the request locals. Load failures go
// to the app's error handler; a missing root becomes a 503.
func (m *DatasetMiddleware) RequireDataset(c fiber.Ctx) error {
	ds, err := m.corpus.Load(c.Context(), m.root)
	if err != nil {
		metrics.RecordQuery(metrics.OutcomeError)
		return loadError(err)
	}

	c.Locals(datasetKey, ds)
	return c.Next()
}

// RequireDatasetJSON is RequireDataset for API routes: failures are answered
// with the JSON error envelope.
func (m *DatasetMiddleware) RequireDatasetJSON(c fiber.Ctx) error {
	ds, err := m.corpus.Load(c.Context(), m.root)
	if err != nil {
		metrics.RecordQuery(metrics.OutcomeError)
		e := loadError(err)
		return c.Status(e.Code).JSON(fiber.Map{
			"status": "error",
			"error":  e.Message,
		})
	}

	c.Locals(datasetKey, ds)
	return c.Next()
}

// DatasetFrom returns the dataset stored by RequireDataset, or nil.
func DatasetFrom(c fiber.Ctx) *corpus.Dataset {
	ds, _ := c.Locals(datasetKey).(*corpus.Dataset)
	return ds
}

func loadError(err error) *fiber.Error {
	var cfgErr *corpus.ConfigurationError
	if errors.As(err, &cfgErr) {
		return fiber.NewError(fiber.StatusServiceUnavailable, fmt.Sprintf("Folder '%s' not found.", cfgErr.Root))
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dataset.")
}
