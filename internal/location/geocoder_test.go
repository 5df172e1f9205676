package location

import (
	"context"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/shinji-kodama/countrylist/internal/catalog"
	"github.com/shinji-kodama/countrylist/internal/model"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type GeocoderSuite struct {
	g *NearestCountryGeocoder
}

var _ = Suite(&GeocoderSuite{})

func (s *GeocoderSuite) SetUpSuite(c *C) {
	cat, err := catalog.Load(context.Background(), catalog.EmbeddedSource{})
	c.Assert(err, IsNil)
	s.g = NewNearestCountryGeocoder(cat.Countries(), DefaultMaxDistanceKm)
	c.Assert(s.g.Len(), Equals, cat.Len())
}

func (s *GeocoderSuite) TestCapitals(c *C) {
	cities := []struct {
		name string
		at   model.Coordinate
		code string
	}{
		{"London", model.Coordinate{Latitude: 51.5074, Longitude: -0.1278}, "GB"},
		{"Paris", model.Coordinate{Latitude: 48.8566, Longitude: 2.3522}, "FR"},
		{"Berlin", model.Coordinate{Latitude: 52.52, Longitude: 13.405}, "DE"},
		{"New Delhi", model.Coordinate{Latitude: 28.6139, Longitude: 77.209}, "IN"},
		{"New York", model.Coordinate{Latitude: 40.7128, Longitude: -74.006}, "US"},
		{"Tokyo", model.Coordinate{Latitude: 35.6762, Longitude: 139.6503}, "JP"},
		{"Sydney", model.Coordinate{Latitude: -33.8688, Longitude: 151.2093}, "AU"},
		{"Beijing", model.Coordinate{Latitude: 39.9042, Longitude: 116.4074}, "CN"},
	}

	for _, city := range cities {
		code, err := s.g.CountryCode(context.Background(), city.at)
		c.Assert(err, IsNil, Commentf("%s", city.name))
		c.Assert(code, Equals, city.code, Commentf("%s", city.name))
	}
}

func (s *GeocoderSuite) TestRemoteLocations(c *C) {
	for _, at := range []model.Coordinate{
		{Latitude: 0, Longitude: -150},  // mid-Pacific
		{Latitude: -80, Longitude: 0},   // Antarctica
		{Latitude: -50, Longitude: -30}, // South Atlantic
	} {
		_, err := s.g.CountryCode(context.Background(), at)
		c.Assert(err, Equals, ErrNoCountry, Commentf("%+v", at))
	}
}

func (s *GeocoderSuite) TestInvalidCoordinate(c *C) {
	_, err := s.g.CountryCode(context.Background(), model.Coordinate{Latitude: 120})
	c.Assert(err, ErrorMatches, "invalid coordinate: latitude .*")
}

func (s *GeocoderSuite) TestCancelledContext(c *C) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.g.CountryCode(ctx, model.Coordinate{Latitude: 51.5, Longitude: 0})
	c.Assert(err, Equals, context.Canceled)
}

func (s *GeocoderSuite) TestTieBreaksOnCode(c *C) {
	g := NewNearestCountryGeocoder([]model.Country{
		{Name: "East", Alpha2Code: "BB", LatLng: []float64{0, 10}},
		{Name: "West", Alpha2Code: "aa", LatLng: []float64{0, -10}},
	}, 0)

	code, err := g.CountryCode(context.Background(), model.Coordinate{})
	c.Assert(err, IsNil)
	c.Assert(code, Equals, "AA")
}

func (s *GeocoderSuite) TestSkipsCountriesWithoutCentroid(c *C) {
	g := NewNearestCountryGeocoder([]model.Country{
		{Name: "Nowhere", Alpha2Code: "NW"},
		{Name: "Broken", Alpha2Code: "BR", LatLng: []float64{1}},
	}, 0)
	c.Assert(g.Len(), Equals, 0)

	_, err := g.CountryCode(context.Background(), model.Coordinate{})
	c.Assert(err, Equals, ErrNoCountry)
}

func (s *GeocoderSuite) TestDistanceKm(c *C) {
	london := model.Coordinate{Latitude: 51.5074, Longitude: -0.1278}
	paris := model.Coordinate{Latitude: 48.8566, Longitude: 2.3522}

	d := DistanceKm(london, paris)
	c.Assert(d > 330 && d < 360, Equals, true, Commentf("got %.1f km", d))
	c.Assert(DistanceKm(london, london), Equals, 0.0)
}
