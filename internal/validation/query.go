package validation

import (
	"trendboard/internal/corpus"
	"trendboard/internal/models"
)

// Query parameter names shared by the dashboard and the API.
const (
	ParamProducts   = "products"
	ParamCategories = "categories"
	ParamLocations  = "locations"
	ParamFrom       = "from"
	ParamTo         = "to"
)

// Lookup returns a query parameter and whether it was present at all.
type Lookup func(key string) (string, bool)

// QueryArgs is the part of a parsed query string a Lookup needs. fasthttp's
// Args satisfies it.
type QueryArgs interface {
	Has(key string) bool
	Peek(key string) []byte
}

// ArgsLookup adapts args to a Lookup.
func ArgsLookup(args QueryArgs) Lookup {
	return func(key string) (string, bool) {
		if !args.Has(key) {
			return "", false
		}
		return string(args.Peek(key)), true
	}
}

// InputFrom reads the selection parameters through lookup.
func InputFrom(lookup Lookup) Input {
	get := func(key string) *string {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		return &v
	}
	return Input{
		Products:   get(ParamProducts),
		Categories: get(ParamCategories),
		Locations:  get(ParamLocations),
		From:       get(ParamFrom),
		To:         get(ParamTo),
	}
}

// OptionsFrom collects the selectable values of a dataset.
func OptionsFrom(ds *corpus.Dataset) Options {
	from, to := ds.Bounds()
	return Options{
		Products:   ds.Products(),
		Categories: ds.Categories(),
		Locations:  ds.Locations(),
		From:       from,
		To:         to,
	}
}

// Response renders r for JSON output.
func (r Resolved) Response() models.SelectionResponse {
	return models.SelectionResponse{
		Products:   r.Products,
		Categories: r.Categories,
		Locations:  r.Locations,
		From:       r.From.Format(models.DateLayout),
		To:         r.To.Format(models.DateLayout),
	}
}
