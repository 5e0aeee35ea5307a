package models

import "time"

// UnknownCategory is assigned to products missing from the catalog.
const UnknownCategory = "Unknown"

// DateLayout is the calendar date format used in query parameters and API output.
const DateLayout = "2006-01-02"

// Record is one row of the unified dataset: mentions of a product in a
// location on a given day.
type Record struct {
	Date     time.Time `json:"date"`
	Mentions int64     `json:"mentions"`
	Product  string    `json:"product"`
	Category string    `json:"category"`
	Location string    `json:"location"`
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LoadWarning describes a file or folder that was skipped while loading.
type LoadWarning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
