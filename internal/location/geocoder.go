package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/shinji-kodama/countrylist/internal/model"
)

const (
	// earthRadiusKm is the mean Earth radius used to turn central angles
	// into surface distances.
	earthRadiusKm = 6371.0088

	// DefaultMaxDistanceKm is the cutoff beyond which a fix is considered
	// to be outside every known country.
	DefaultMaxDistanceKm = 2500.0
)

// ErrNoCountry is returned when no country lies within the cutoff.
var ErrNoCountry = errors.New("no country near location")

// Geocoder turns a coordinate into a two-letter country code.
type Geocoder interface {
	CountryCode(ctx context.Context, at model.Coordinate) (string, error)
}

// GeocoderFunc adapts a function to the Geocoder interface.
type GeocoderFunc func(ctx context.Context, at model.Coordinate) (string, error)

// CountryCode calls f(ctx, at).
func (f GeocoderFunc) CountryCode(ctx context.Context, at model.Coordinate) (string, error) {
	return f(ctx, at)
}

// centroid is a country code paired with its precomputed s2 position.
type centroid struct {
	code string
	ll   s2.LatLng
}

// NearestCountryGeocoder reverse-geocodes by nearest country centroid.
// Countries without a centroid are skipped. Safe for concurrent use.
type NearestCountryGeocoder struct {
	centroids   []centroid
	maxDistance s1.Angle
}

// NewNearestCountryGeocoder indexes the centroids of countries. A
// non-positive maxDistanceKm selects DefaultMaxDistanceKm.
func NewNearestCountryGeocoder(countries []model.Country, maxDistanceKm float64) *NearestCountryGeocoder {
	if maxDistanceKm <= 0 {
		maxDistanceKm = DefaultMaxDistanceKm
	}

	g := &NearestCountryGeocoder{
		centroids:   make([]centroid, 0, len(countries)),
		maxDistance: s1.Angle(maxDistanceKm / earthRadiusKm),
	}
	for _, c := range countries {
		coord, ok := c.Centroid()
		if !ok {
			continue
		}
		g.centroids = append(g.centroids, centroid{
			code: c.Code(),
			ll:   s2.LatLngFromDegrees(coord.Latitude, coord.Longitude),
		})
	}
	return g
}

// Len returns the number of indexed centroids.
func (g *NearestCountryGeocoder) Len() int {
	return len(g.centroids)
}

// CountryCode returns the code of the country whose centroid is nearest to
// at. Equidistant candidates resolve to the lexically smallest code.
func (g *NearestCountryGeocoder) CountryCode(ctx context.Context, at model.Coordinate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := at.Validate(); err != nil {
		return "", fmt.Errorf("invalid coordinate: %w", err)
	}

	query := s2.LatLngFromDegrees(at.Latitude, at.Longitude)

	best := -1
	var bestDist s1.Angle
	for i, c := range g.centroids {
		d := query.Distance(c.ll)
		if best < 0 || d < bestDist || (d == bestDist && c.code < g.centroids[best].code) {
			best, bestDist = i, d
		}
	}

	if best < 0 || bestDist > g.maxDistance {
		return "", ErrNoCountry
	}
	return g.centroids[best].code, nil
}

// DistanceKm returns the great-circle distance between two coordinates.
func DistanceKm(a, b model.Coordinate) float64 {
	la := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	lb := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return la.Distance(lb).Radians() * earthRadiusKm
}
