// Package corpus loads Google Trends exports from a directory tree into one
// unified dataset of mention records.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trendboard/internal/config"
	"trendboard/internal/models"
)

// Dataset is the unified, read-only result of loading a data root.
type Dataset struct {
	ID       uuid.UUID
	Root     string
	Records  []models.Record
	Files    int // Files that contributed at least one record
	Warnings []models.LoadWarning
	LoadedAt time.Time
}

// Empty reports whether no file yielded any rows.
func (d *Dataset) Empty() bool {
	return len(d.Records) == 0
}

// Bounds returns the earliest and latest record dates.
func (d *Dataset) Bounds() (time.Time, time.Time) {
	if d.Empty() {
		return time.Time{}, time.Time{}
	}
	lo, hi := d.Records[0].Date, d.Records[0].Date
	for _, r := range d.Records[1:] {
		if r.Date.Before(lo) {
			lo = r.Date
		}
		if r.Date.After(hi) {
			hi = r.Date
		}
	}
	return lo, hi
}

// Products returns the distinct products, sorted.
func (d *Dataset) Products() []string {
	return d.distinct(func(r models.Record) string { return r.Product })
}

// Categories returns the distinct categories, sorted.
func (d *Dataset) Categories() []string {
	return d.distinct(func(r models.Record) string { return r.Category })
}

// Locations returns the distinct locations, sorted.
func (d *Dataset) Locations() []string {
	return d.distinct(func(r models.Record) string { return r.Location })
}

func (d *Dataset) distinct(field func(models.Record) string) []string {
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		seen[field(r)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Corpus assembles datasets and caches them per root for the life of the
// process.
type Corpus struct {
	normalizer *Normalizer
	logger     *zap.Logger

	mu    sync.Mutex
	cache map[string]*Dataset
}

// New creates a corpus that normalizes files through catalog.
func New(catalog *config.Catalog, logger *zap.Logger) *Corpus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Corpus{
		normalizer: NewNormalizer(catalog),
		logger:     logger,
		cache:      make(map[string]*Dataset),
	}
}

// Load returns the dataset for root, building it on first use.
// A missing root returns a *ConfigurationError and nothing is cached.
// Files that fail to parse are skipped and reported in Dataset.Warnings.
func (c *Corpus) Load(ctx context.Context, root string) (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ds, ok := c.cache[root]; ok {
		return ds, nil
	}

	ds, err := c.build(ctx, root)
	if err != nil {
		return nil, err
	}
	c.cache[root] = ds
	return ds, nil
}

// Cached returns the dataset for root if it has already been loaded.
func (c *Corpus) Cached(root string) (*Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ds, ok := c.cache[root]
	return ds, ok
}

// Invalidate drops the cached dataset for root so the next Load rebuilds it.
func (c *Corpus) Invalidate(root string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, root)
}

func (c *Corpus) build(ctx context.Context, root string) (*Dataset, error) {
	entries, err := Scan(root)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{ID: uuid.New(), Root: root}
	for entry, err := range entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if err != nil {
			c.warn(ds, entry.Path, err)
			continue
		}

		batches, err := c.normalizer.Normalize(entry)
		if err != nil {
			c.warn(ds, entry.Path, err)
			continue
		}
		if len(batches) > 0 {
			ds.Files++
		}
		for _, b := range batches {
			ds.Records = append(ds.Records, b.Records...)
		}
	}
	ds.LoadedAt = time.Now()

	c.logger.Info("corpus loaded",
		zap.String("root", root),
		zap.Stringer("dataset", ds.ID),
		zap.Int("records", len(ds.Records)),
		zap.Int("files", ds.Files),
		zap.Int("warnings", len(ds.Warnings)),
	)

	return ds, nil
}

func (c *Corpus) warn(ds *Dataset, path string, err error) {
	msg := err.Error()
	var pe *ParseError
	if errors.As(err, &pe) && pe.Path == path {
		// Path is already part of the entry
		msg = pe.Err.Error()
		if pe.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", pe.Line, msg)
		}
	}
	ds.Warnings = append(ds.Warnings, models.LoadWarning{Path: path, Message: msg})
	c.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
}
