package analytics

import (
	"trendboard/internal/models"
)

// TopN is the number of products ranked per city.
const TopN = 3

// Summary is everything the dashboard shows for one selection.
type Summary struct {
	Records       int             `json:"records"`
	TotalMentions int64           `json:"total_mentions"`
	Growth        []ProductGrowth `json:"growth"`
	TopGrowing    *ProductGrowth  `json:"top_growing"`
	TopDeclining  *ProductGrowth  `json:"top_declining"`
	TopLocation   string          `json:"top_location"`
	CityProduct   Grid            `json:"city_product"`
	CityCategory  ShareGrid       `json:"city_category_share"`
	TopPerCity    []CityRanking   `json:"top_per_city"`
	Weekly        TrendGrid       `json:"weekly"`
}

// Aggregate filters records by sel and computes every KPI over the view.
// It returns ErrEmptyView when nothing matches.
func Aggregate(records []models.Record, sel Selection, policy GrowthPolicy) (*Summary, error) {
	return Summarize(Filter(records, sel), policy)
}

// Summarize computes every KPI over an already filtered view.
func Summarize(view []models.Record, policy GrowthPolicy) (*Summary, error) {
	if len(view) == 0 {
		return nil, ErrEmptyView
	}

	topLocation, err := TopLocation(view)
	if err != nil {
		return nil, err
	}

	growth := Growth(view, policy)
	top, bottom := TopMovers(growth)

	return &Summary{
		Records:       len(view),
		TotalMentions: TotalMentions(view),
		Growth:        growth,
		TopGrowing:    top,
		TopDeclining:  bottom,
		TopLocation:   topLocation,
		CityProduct:   CityProductGrid(view),
		CityCategory:  CityCategoryShare(view),
		TopPerCity:    TopPerCity(view, TopN),
		Weekly:        WeeklyTrend(view),
	}, nil
}
