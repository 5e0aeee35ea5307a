package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"trendboard/internal/models"
)

// CatalogFile is the YAML shape of the optional catalog override.
// Either table may be omitted, in which case the built-in one is kept.
type CatalogFile struct {
	ProductCategories map[string]string   `yaml:"product_categories"`
	LocationAliases   map[string][]string `yaml:"location_aliases"`
}

// Catalog holds the product to category table and the location alias table.
// It is read-only once constructed.
type Catalog struct {
	categories map[string]string
	aliases    map[string][]string
}

var defaultProductCategories = map[string]string{
	"CheckSuit": "Suits", "BlackTuxedo": "Suits",
	"WoolOvercoat": "Coats", "TrenchCoat": "Coats", "PufferJacket": "Coats",
	"LinenBlazer": "Blazers", "VelvetBlazer": "Blazers",
	"OversizedGraphicTee": "T-shirts", "CrewNeckTee": "T-shirts",
	"AviatorSunglasses": "Accessories", "WoolScarf": "Accessories",
	"CrewNeckSweatshirt": "Sweatshirts", "OversizedSweatshirt": "Sweatshirts",
	"Cardigans": "Knitwear", "Pullovers": "Knitwear",
	"DenimShirt": "Shirts",
	"CargoJoggers": "Pants", "Palazzo": "Pants", "BlackJeans": "Pants",
	"FloralMaxiDress": "Dress", "SatinDress": "Dress",
	"GymLeggings": "Sportswear", "SportsBra": "Sportswear",
	"BabyBodysuit": "Kidswear",
	"WoolSweater": "Sweaters", "FuzzySweater": "Sweaters",
	"CropTop": "Tops", "OffShoulderTop": "Tops",
	"CottonPolo": "Polos",
	"Jumpsuit": "Jumpsuits",
}

var defaultLocationAliases = map[string][]string{
	"UK":    {"London", "Birmingham"},
	"Spain": {"Madrid", "Barcelona"},
}

// NewCatalog builds a catalog from the given tables. The tables are copied.
func NewCatalog(categories map[string]string, aliases map[string][]string) *Catalog {
	c := &Catalog{
		categories: maps.Clone(categories),
		aliases:    make(map[string][]string, len(aliases)),
	}
	if c.categories == nil {
		c.categories = map[string]string{}
	}
	for tag, cities := range aliases {
		c.aliases[tag] = slices.Clone(cities)
	}
	return c
}

// DefaultCatalog returns the built-in tables.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultProductCategories, defaultLocationAliases)
}

// LoadCatalog reads the catalog override at path.
// Returns the default catalog without error if the file doesn't exist.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Catalog file is optional
			return DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	categories := file.ProductCategories
	if categories == nil {
		categories = defaultProductCategories
	}
	aliases := file.LocationAliases
	if aliases == nil {
		aliases = defaultLocationAliases
	}
	for tag, cities := range aliases {
		if len(cities) == 0 {
			return nil, fmt.Errorf("catalog %s: alias %q has no cities", path, tag)
		}
	}

	return NewCatalog(categories, aliases), nil
}

// Category resolves a product to its category, or models.UnknownCategory.
func (c *Catalog) Category(product string) string {
	if category, ok := c.categories[product]; ok {
		return category
	}
	return models.UnknownCategory
}

// Expand returns the cities a location tag stands for. Tags that are not
// aliases expand to themselves.
func (c *Catalog) Expand(tag string) []string {
	if cities, ok := c.aliases[tag]; ok {
		return slices.Clone(cities)
	}
	return []string{tag}
}

// IsAlias reports whether tag is an alias group.
func (c *Catalog) IsAlias(tag string) bool {
	_, ok := c.aliases[tag]
	return ok
}

// Products returns every mapped product, sorted.
func (c *Catalog) Products() []string {
	return slices.Sorted(maps.Keys(c.categories))
}
