// Package validation turns raw dashboard query parameters into a filter
// selection.
package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"trendboard/internal/analytics"
	"trendboard/internal/models"
)

// MaxNameLength bounds a single product, category or location name.
const MaxNameLength = 100

var (
	ErrInvalidDate  = errors.New("dates must be formatted as YYYY-MM-DD")
	ErrInvalidRange = errors.New("start date must not be after end date")
	ErrInvalidName  = errors.New("invalid name in selection")
)

// Options are the values a selection can draw from, usually taken from the
// loaded dataset.
type Options struct {
	Products   []string
	Categories []string
	Locations  []string
	From       time.Time
	To         time.Time
}

// Defaults controls how many products and locations are preselected when the
// user has not chosen any.
type Defaults struct {
	Products  int
	Locations int
}

// Input holds raw query parameters. A nil field means the parameter was
// absent and the default applies; an empty string selects nothing.
type Input struct {
	Products   *string
	Categories *string
	Locations  *string
	From       *string
	To         *string
}

// Resolved is a validated selection together with the lists it was built
// from, for rendering the filter form.
type Resolved struct {
	Products   []string
	Categories []string
	Locations  []string
	From       time.Time
	To         time.Time
}

// Selection converts r into the filter engine's form.
func (r Resolved) Selection() analytics.Selection {
	return analytics.Selection{
		Products:   analytics.NewSet(r.Products...),
		Categories: analytics.NewSet(r.Categories...),
		Locations:  analytics.NewSet(r.Locations...),
		From:       r.From,
		To:         r.To,
	}
}

// Resolve validates in against opts, filling absent parameters with the
// dashboard defaults: the first products and locations (sorted), every
// category and the full date range.
func Resolve(in Input, opts Options, defaults Defaults) (Resolved, error) {
	var (
		r   Resolved
		err error
	)

	if r.Products, err = listOrDefault(in.Products, head(opts.Products, defaults.Products)); err != nil {
		return Resolved{}, err
	}
	if r.Categories, err = listOrDefault(in.Categories, opts.Categories); err != nil {
		return Resolved{}, err
	}
	if r.Locations, err = listOrDefault(in.Locations, head(opts.Locations, defaults.Locations)); err != nil {
		return Resolved{}, err
	}
	if r.From, err = dateOrDefault(in.From, opts.From); err != nil {
		return Resolved{}, err
	}
	if r.To, err = dateOrDefault(in.To, opts.To); err != nil {
		return Resolved{}, err
	}
	if r.From.After(r.To) {
		return Resolved{}, ErrInvalidRange
	}

	return r, nil
}

// ParseList splits a comma-separated parameter, trimming blanks and dropping
// duplicates while keeping the first occurrence.
func ParseList(raw string) ([]string, error) {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !ValidateName(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// ValidateName checks a single selection value: non-empty, bounded and free
// of control characters.
func ValidateName(name string) bool {
	if name == "" || len(name) > MaxNameLength {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// ParseDate parses a YYYY-MM-DD query date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

func listOrDefault(raw *string, fallback []string) ([]string, error) {
	if raw == nil {
		return slices.Clone(fallback), nil
	}
	return ParseList(*raw)
}

func dateOrDefault(raw *string, fallback time.Time) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return fallback, nil
	}
	return ParseDate(*raw)
}

func head(values []string, n int) []string {
	if n < 0 || n >= len(values) {
		return values
	}
	return values[:n]
}
