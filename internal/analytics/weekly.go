package analytics

import (
	"slices"
	"time"

	"trendboard/internal/models"
)

// TrendGrid holds weekly mentions per product: Cells[week][product].
type TrendGrid struct {
	Weeks    []time.Time `json:"weeks"`
	Products []string    `json:"products"`
	Cells    [][]int64   `json:"cells"`
}

// Series returns the weekly values for one product, or nil if it is absent.
func (g TrendGrid) Series(product string) []int64 {
	j, ok := slices.BinarySearch(g.Products, product)
	if !ok {
		return nil
	}
	out := make([]int64, len(g.Weeks))
	for i := range g.Weeks {
		out[i] = g.Cells[i][j]
	}
	return out
}

// WeekEnding returns the Sunday on or after d, which labels d's week.
func WeekEnding(d time.Time) time.Time {
	d = models.Day(d)
	return d.AddDate(0, 0, (7-int(d.Weekday()))%7)
}

// WeeklyTrend buckets mentions into weeks ending on Sunday. Only weeks with at
// least one record appear; every product in the view has a value for each of
// them.
func WeeklyTrend(view []models.Record) TrendGrid {
	sums := make(map[time.Time]map[string]int64)
	products := make(map[string]struct{})
	for _, r := range view {
		week := WeekEnding(r.Date)
		if sums[week] == nil {
			sums[week] = make(map[string]int64)
		}
		sums[week][r.Product] += r.Mentions
		products[r.Product] = struct{}{}
	}

	g := TrendGrid{Products: sortedKeys(products)}
	for week := range sums {
		g.Weeks = append(g.Weeks, week)
	}
	slices.SortFunc(g.Weeks, func(a, b time.Time) int { return a.Compare(b) })

	g.Cells = make([][]int64, len(g.Weeks))
	for i, week := range g.Weeks {
		g.Cells[i] = make([]int64, len(g.Products))
		for j, product := range g.Products {
			g.Cells[i][j] = sums[week][product]
		}
	}
	return g
}
