package analytics

import (
	"cmp"
	"slices"
	"sort"

	"trendboard/internal/models"
)

// Grid is a pivot of summed mentions. Rows and Columns are sorted and every
// cell is present; missing combinations are 0.
type Grid struct {
	Rows    []string  `json:"rows"`
	Columns []string  `json:"columns"`
	Cells   [][]int64 `json:"cells"`
}

// Value returns the cell for (row, col), or 0 when either is absent.
func (g Grid) Value(row, col string) int64 {
	i, ok := slices.BinarySearch(g.Rows, row)
	if !ok {
		return 0
	}
	j, ok := slices.BinarySearch(g.Columns, col)
	if !ok {
		return 0
	}
	return g.Cells[i][j]
}

// Max returns the largest cell, or 0 for an empty grid.
func (g Grid) Max() int64 {
	var m int64
	for _, row := range g.Cells {
		for _, v := range row {
			m = max(m, v)
		}
	}
	return m
}

// ShareGrid is a Grid whose rows have been turned into percentages.
type ShareGrid struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Cells   [][]float64 `json:"cells"`
}

// Ranked is a product and its summed mentions.
type Ranked struct {
	Product  string `json:"product"`
	Mentions int64  `json:"mentions"`
}

// CityRanking holds the best products for one location.
type CityRanking struct {
	Location string   `json:"location"`
	Top      []Ranked `json:"top"`
}

// TotalMentions sums mentions over the view.
func TotalMentions(view []models.Record) int64 {
	var total int64
	for _, r := range view {
		total += r.Mentions
	}
	return total
}

// TopLocation returns the location with the most mentions. Ties go to the
// alphabetically first location.
func TopLocation(view []models.Record) (string, error) {
	if len(view) == 0 {
		return "", ErrEmptyView
	}

	totals := make(map[string]int64)
	for _, r := range view {
		totals[r.Location] += r.Mentions
	}

	locations := sortedKeys(totals)
	best := locations[0]
	for _, loc := range locations[1:] {
		if totals[loc] > totals[best] {
			best = loc
		}
	}
	return best, nil
}

// CityProductGrid sums mentions per (location, product).
func CityProductGrid(view []models.Record) Grid {
	return pivot(view,
		func(r models.Record) string { return r.Location },
		func(r models.Record) string { return r.Product },
	)
}

// CityCategoryShare sums mentions per (location, category) and scales each
// row to percentages. A location with no mentions gets a row of zeros.
func CityCategoryShare(view []models.Record) ShareGrid {
	g := pivot(view,
		func(r models.Record) string { return r.Location },
		func(r models.Record) string { return r.Category },
	)

	share := ShareGrid{Rows: g.Rows, Columns: g.Columns, Cells: make([][]float64, len(g.Rows))}
	for i, row := range g.Cells {
		var total int64
		for _, v := range row {
			total += v
		}
		share.Cells[i] = make([]float64, len(row))
		if total == 0 {
			continue
		}
		for j, v := range row {
			share.Cells[i][j] = float64(v) / float64(total) * 100
		}
	}
	return share
}

// TopPerCity ranks each location's products by summed mentions, descending,
// and keeps the first n. Equal counts are ordered by product name.
func TopPerCity(view []models.Record, n int) []CityRanking {
	g := CityProductGrid(view)

	// Only products the location actually has records for are ranked
	present := make(map[[2]string]bool)
	for _, r := range view {
		present[[2]string{r.Location, r.Product}] = true
	}

	rankings := make([]CityRanking, 0, len(g.Rows))
	for i, loc := range g.Rows {
		var ranked []Ranked
		for j, product := range g.Columns {
			if present[[2]string{loc, product}] {
				ranked = append(ranked, Ranked{Product: product, Mentions: g.Cells[i][j]})
			}
		}
		// Columns are sorted, so a stable sort keeps ties alphabetical
		sort.SliceStable(ranked, func(a, b int) bool {
			return ranked[a].Mentions > ranked[b].Mentions
		})
		if len(ranked) > n {
			ranked = ranked[:n]
		}
		rankings = append(rankings, CityRanking{Location: loc, Top: ranked})
	}
	return rankings
}

func pivot(view []models.Record, rowKey, colKey func(models.Record) string) Grid {
	sums := make(map[string]map[string]int64)
	cols := make(map[string]struct{})
	for _, r := range view {
		row, col := rowKey(r), colKey(r)
		if sums[row] == nil {
			sums[row] = make(map[string]int64)
		}
		sums[row][col] += r.Mentions
		cols[col] = struct{}{}
	}

	g := Grid{Rows: sortedKeys(sums), Columns: sortedKeys(cols)}
	g.Cells = make([][]int64, len(g.Rows))
	for i, row := range g.Rows {
		g.Cells[i] = make([]int64, len(g.Columns))
		for j, col := range g.Columns {
			g.Cells[i][j] = sums[row][col]
		}
	}
	return g
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp.Compare[string])
	return keys
}
