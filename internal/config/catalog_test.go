package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendboard/internal/models"
)

func TestDefaultCatalog_Category(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		product string
		want    string
	}{
		{"CheckSuit", "Suits"},
		{"TrenchCoat", "Coats"},
		{"Jumpsuit", "Jumpsuits"},
		{"CottonPolo", "Polos"},
		{"checksuit", models.UnknownCategory},
		{"Sandals", models.UnknownCategory},
		{"", models.UnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			if got := c.Category(tt.product); got != tt.want {
				t.Errorf("Category(%q) = %q, want %q", tt.product, got, tt.want)
			}
		})
	}
}

func TestDefaultCatalog_Expand(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, []string{"London", "Birmingham"}, c.Expand("UK"))
	assert.Equal(t, []string{"Madrid", "Barcelona"}, c.Expand("Spain"))
	assert.Equal(t, []string{"France"}, c.Expand("France"))
	assert.True(t, c.IsAlias("UK"))
	assert.False(t, c.IsAlias("France"))
}

func TestCatalog_ExpandReturnsCopy(t *testing.T) {
	c := DefaultCatalog()

	cities := c.Expand("UK")
	cities[0] = "Leeds"

	assert.Equal(t, "London", c.Expand("UK")[0])
}

func TestDefaultCatalog_Size(t *testing.T) {
	c := DefaultCatalog()
	products := c.Products()

	assert.Len(t, products, 30)
	assert.IsIncreasing(t, products)

	categories := map[string]bool{}
	for _, p := range products {
		categories[c.Category(p)] = true
	}
	assert.Len(t, categories, 16)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	c, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Suits", c.Category("CheckSuit"))
}

func TestLoadCatalog_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
product_categories:
  Sandals: Footwear
location_aliases:
  Italy: [Milan, Rome]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, "Footwear", c.Category("Sandals"))
	assert.Equal(t, models.UnknownCategory, c.Category("CheckSuit"))
	assert.Equal(t, []string{"Milan", "Rome"}, c.Expand("Italy"))
	assert.Equal(t, []string{"UK"}, c.Expand("UK"))
}

func TestLoadCatalog_PartialOverrideKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("location_aliases:\n  Italy: [Milan]\n"), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, "Suits", c.Category("CheckSuit"))
	assert.Equal(t, []string{"Milan"}, c.Expand("Italy"))
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "product_categories: [unclosed"},
		{"empty alias", "location_aliases:\n  UK: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadCatalog(path)
			assert.Error(t, err)
		})
	}
}
