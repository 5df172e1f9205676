package catalog

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// Source produces the raw list of countries for a catalog. Implementations
// are called exactly once per Load.
type Source interface {
	Load(ctx context.Context) ([]model.Country, error)
}

// Catalog is an immutable, ordered set of countries with unique codes.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	countries []model.Country
	byCode    map[string]int
}

// Empty returns a catalog with no countries.
func Empty() *Catalog {
	return &Catalog{byCode: map[string]int{}}
}

// New builds a catalog from countries, preserving their order.
//
// Every record is validated and its code normalized to upper case. A
// duplicate code anywhere in the input rejects the whole input.
func New(countries []model.Country) (*Catalog, error) {
	c := &Catalog{
		countries: make([]model.Country, 0, len(countries)),
		byCode:    make(map[string]int, len(countries)),
	}

	for i, country := range countries {
		if err := country.Validate(); err != nil {
			return nil, fmt.Errorf("invalid country at index %d: %w", i, err)
		}
		country.Alpha2Code = country.Code()

		if prev, exists := c.byCode[country.Alpha2Code]; exists {
			return nil, fmt.Errorf("duplicate country code %s at index %d (first seen at %d)",
				country.Alpha2Code, i, prev)
		}
		c.byCode[country.Alpha2Code] = len(c.countries)
		c.countries = append(c.countries, country)
	}

	return c, nil
}

// Load reads src once and builds a catalog from it.
//
// On failure the returned catalog is empty (never nil) and the error
// describes the cause, so callers can surface the message and keep going.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	countries, err := src.Load(ctx)
	if err != nil {
		return Empty(), fmt.Errorf("failed to load country catalog: %w", err)
	}

	c, err := New(countries)
	if err != nil {
		return Empty(), fmt.Errorf("failed to load country catalog: %w", err)
	}
	return c, nil
}

// Countries returns the catalog contents in their original order.
// The returned slice is a copy and may be modified by the caller.
func (c *Catalog) Countries() []model.Country {
	out := make([]model.Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// Len returns the number of countries in the catalog.
func (c *Catalog) Len() int {
	return len(c.countries)
}

// Lookup finds a country by code, ignoring case. The boolean is false when
// no country in the catalog has that code.
func (c *Catalog) Lookup(code string) (model.Country, bool) {
	idx, ok := c.byCode[model.NormalizeCode(code)]
	if !ok {
		return model.Country{}, false
	}
	return c.countries[idx], true
}

// Search returns the countries matching query; see the package-level Search.
func (c *Catalog) Search(query string) []model.Country {
	return Search(c.Countries(), query)
}
