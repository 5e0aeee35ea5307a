// Package analytics filters the unified dataset and derives the dashboard KPIs
// from a filtered view. Every function returns new values and never modifies
// its input.
package analytics

import (
	"errors"
	"time"

	"trendboard/internal/models"
)

// ErrEmptyView is returned when a view has no records. It is a "no data"
// state for the user, not a fault.
var ErrEmptyView = errors.New("no data matches the selected filters")

// Set is a set of allowed values for one categorical column.
type Set map[string]struct{}

// NewSet builds a set from values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is a member.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Selection is the user's filter: three membership constraints and an
// inclusive date interval. An empty set admits nothing.
type Selection struct {
	Products   Set
	Categories Set
	Locations  Set
	From       time.Time
	To         time.Time
}

// Match reports whether r satisfies every constraint of the selection.
func (s Selection) Match(r models.Record) bool {
	if !s.Products.Has(r.Product) || !s.Categories.Has(r.Category) || !s.Locations.Has(r.Location) {
		return false
	}
	d := models.Day(r.Date)
	return !d.Before(models.Day(s.From)) && !d.After(models.Day(s.To))
}

// Filter returns the records matching sel, in their original order.
func Filter(records []models.Record, sel Selection) []models.Record {
	view := make([]models.Record, 0)
	for _, r := range records {
		if sel.Match(r) {
			view = append(view, r)
		}
	}
	return view
}
