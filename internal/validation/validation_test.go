package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func testOptions(t *testing.T) Options {
	return Options{
		Products:   []string{"A", "B", "C", "D", "E", "F", "G"},
		Categories: []string{"Coats", "Suits"},
		Locations:  []string{"Birmingham", "France", "London"},
		From:       date(t, "2024-01-07"),
		To:         date(t, "2024-06-30"),
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "CheckSuit", true},
		{"with space", "New York", true},
		{"with hyphen", "T-shirts", true},
		{"unicode", "Málaga", true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", MaxNameLength+1), false},
		{"max length", strings.Repeat("a", MaxNameLength), true},
		{"control char", "Check\x00Suit", false},
		{"newline", "Check\nSuit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateName(tt.input); got != tt.want {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "CheckSuit", []string{"CheckSuit"}},
		{"several", "CheckSuit,TrenchCoat", []string{"CheckSuit", "TrenchCoat"}},
		{"spaces trimmed", " CheckSuit , TrenchCoat ", []string{"CheckSuit", "TrenchCoat"}},
		{"duplicates dropped", "B,A,B", []string{"B", "A"}},
		{"blanks dropped", ",,A,,", []string{"A"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseList(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseList_InvalidName(t *testing.T) {
	_, err := ParseList("A,B\x01")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"07/01/2024", "2024-13-01", "yesterday"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestResolve_Defaults(t *testing.T) {
	opts := testOptions(t)

	got, err := Resolve(Input{}, opts, Defaults{Products: 5, Locations: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, got.Products)
	assert.Equal(t, []string{"Coats", "Suits"}, got.Categories)
	assert.Equal(t, []string{"Birmingham", "France", "London"}, got.Locations)
	assert.Equal(t, opts.From, got.From)
	assert.Equal(t, opts.To, got.To)

	// Defaults never alias the options
	got.Products[0] = "Z"
	assert.Equal(t, "A", opts.Products[0])
}

func TestResolve_Explicit(t *testing.T) {
	in := Input{
		Products:   ptr("G"),
		Categories: ptr("Suits"),
		Locations:  ptr(""),
		From:       ptr("2024-02-01"),
		To:         ptr("2024-02-29"),
	}

	got, err := Resolve(in, testOptions(t), Defaults{Products: 5, Locations: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"G"}, got.Products)
	assert.Equal(t, []string{"Suits"}, got.Categories)
	assert.Empty(t, got.Locations)
	assert.Equal(t, date(t, "2024-02-01"), got.From)
	assert.Equal(t, date(t, "2024-02-29"), got.To)

	sel := got.Selection()
	assert.True(t, sel.Products.Has("G"))
	assert.False(t, sel.Products.Has("A"))
	assert.Empty(t, sel.Locations)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"bad from", Input{From: ptr("01/02/2024")}, ErrInvalidDate},
		{"bad to", Input{To: ptr("soon")}, ErrInvalidDate},
		{"inverted", Input{From: ptr("2024-03-01"), To: ptr("2024-02-01")}, ErrInvalidRange},
		{"bad product", Input{Products: ptr("A\tB")}, ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.in, testOptions(t), Defaults{Products: 5, Locations: 5})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInputFrom(t *testing.T) {
	params := map[string]string{"products": "A,B", "locations": "", "from": "2024-01-07"}
	in := InputFrom(func(key string) (string, bool) {
		v, ok := params[key]
		return v, ok
	})

	require.NotNil(t, in.Products)
	assert.Equal(t, "A,B", *in.Products)
	require.NotNil(t, in.Locations)
	assert.Equal(t, "", *in.Locations)
	assert.Nil(t, in.Categories)
	assert.Nil(t, in.To)
	require.NotNil(t, in.From)
}

func TestResolved_Response(t *testing.T) {
	r := Resolved{
		Products: []string{"A"},
		From:     date(t, "2024-01-07"),
		To:       date(t, "2024-02-04"),
	}

	resp := r.Response()
	assert.Equal(t, "2024-01-07", resp.From)
	assert.Equal(t, "2024-02-04", resp.To)
	assert.Equal(t, []string{"A"}, resp.Products)
}

type fakeArgs map[string]string

func (a fakeArgs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

func (a fakeArgs) Peek(key string) []byte {
	return []byte(a[key])
}

func TestArgsLookup(t *testing.T) {
	lookup := ArgsLookup(fakeArgs{"categories": "", "to": "2024-02-01"})

	v, ok := lookup("categories")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	v, ok = lookup("to")
	assert.True(t, ok)
	assert.Equal(t, "2024-02-01", v)

	_, ok = lookup("products")
	assert.False(t, ok)
}
