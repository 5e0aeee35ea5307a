// Package testutil provides test utilities and helpers.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trendboard/internal/models"
)

// Row is one data row of a Trends export: date and mentions as written.
type Row struct {
	Date     string
	Mentions string
}

// TrendsCSV renders rows in the Google Trends export layout: a category line,
// a blank line, the column header, then the data.
func TrendsCSV(product string, rows ...Row) string {
	var b strings.Builder
	b.WriteString("Category: All categories\n\n")
	b.WriteString("Week," + product + ": (Worldwide)\n")
	for _, r := range rows {
		b.WriteString(r.Date + "," + r.Mentions + "\n")
	}
	return b.String()
}

// WriteFile writes content to root/folder/name and returns the full path.
func WriteFile(t *testing.T, root, folder, name, content string) string {
	t.Helper()

	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create folder %s: %v", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteTrends writes a well-formed export for product to root/folder/name.
func WriteTrends(t *testing.T, root, folder, name string, rows ...Row) string {
	t.Helper()
	product, _, _ := strings.Cut(name, "_")
	return WriteFile(t, root, folder, name, TrendsCSV(product, rows...))
}

// ThreeWeeks is a small, valid set of rows.
var ThreeWeeks = []Row{
	{"2024-01-07", "40"},
	{"2024-01-14", "55"},
	{"2024-01-21", "61"},
}

// Date parses a YYYY-MM-DD date or fails the test.
func Date(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// Rec builds a record for aggregation tests.
func Rec(t testing.TB, date, product, category, location string, mentions int64) models.Record {
	t.Helper()
	return models.Record{
		Date:     Date(t, date),
		Mentions: mentions,
		Product:  product,
		Category: category,
		Location: location,
	}
}
