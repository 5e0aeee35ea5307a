package analytics

import (
	"cmp"
	"slices"
	"time"

	"trendboard/internal/models"
)

// GrowthPolicy controls how growth percentages are damped.
type GrowthPolicy struct {
	// MinBase is the smallest Start value that is scored at all. Below it the
	// growth is reported as 0 and the product cannot be a top mover.
	MinBase int64
	// Cap bounds the growth to [-Cap, Cap] percent.
	Cap float64
}

// DefaultGrowthPolicy ignores bases under 20 mentions and caps at ±1000%.
var DefaultGrowthPolicy = GrowthPolicy{MinBase: 20, Cap: 1000}

// ProductGrowth is one row of the growth table.
type ProductGrowth struct {
	Product string  `json:"product"`
	Start   int64   `json:"start"`
	End     int64   `json:"end"`
	Percent float64 `json:"growth_pct"`
}

// Percent scores the change from start to end. The rules apply in order:
// a start below MinBase scores 0; a zero start scores 100 if end is positive;
// otherwise the relative change is clamped to the cap.
func (p GrowthPolicy) Percent(start, end int64) float64 {
	if start < p.MinBase {
		return 0
	}
	if start == 0 {
		if end > 0 {
			return 100
		}
		return 0
	}
	change := float64(end-start) / float64(start) * 100
	switch {
	case change > p.Cap:
		return p.Cap
	case change < -p.Cap:
		return -p.Cap
	}
	return change
}

// Growth compares each product's summed mentions on the earliest and the
// latest date of the whole view. Only products with records on at least one
// of those two dates get a row; a missing side counts 0. Rows are sorted by
// product.
func Growth(view []models.Record, policy GrowthPolicy) []ProductGrowth {
	if len(view) == 0 {
		return nil
	}

	first, last := dateBounds(view)
	rows := make(map[string]*ProductGrowth)
	row := func(product string) *ProductGrowth {
		g, ok := rows[product]
		if !ok {
			g = &ProductGrowth{Product: product}
			rows[product] = g
		}
		return g
	}
	for _, r := range view {
		d := models.Day(r.Date)
		if d.Equal(first) {
			row(r.Product).Start += r.Mentions
		}
		if d.Equal(last) {
			row(r.Product).End += r.Mentions
		}
	}

	out := make([]ProductGrowth, 0, len(rows))
	for _, g := range rows {
		g.Percent = policy.Percent(g.Start, g.End)
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b ProductGrowth) int {
		return cmp.Compare(a.Product, b.Product)
	})
	return out
}

// TopMovers returns the products with the highest and lowest non-zero growth.
// The first row wins a tie. Both are nil when no product has non-zero growth.
func TopMovers(growth []ProductGrowth) (top, bottom *ProductGrowth) {
	for i := range growth {
		g := &growth[i]
		if g.Percent == 0 {
			continue
		}
		if top == nil || g.Percent > top.Percent {
			top = g
		}
		if bottom == nil || g.Percent < bottom.Percent {
			bottom = g
		}
	}
	if top == nil {
		return nil, nil
	}
	t, b := *top, *bottom
	return &t, &b
}

func dateBounds(view []models.Record) (time.Time, time.Time) {
	lo := models.Day(view[0].Date)
	hi := lo
	for _, r := range view[1:] {
		d := models.Day(r.Date)
		if d.Before(lo) {
			lo = d
		}
		if d.After(hi) {
			hi = d
		}
	}
	return lo, hi
}
