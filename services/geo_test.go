package services

import (
	"testing"

	"MenuMate/models"

	"github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMiles(t *testing.T) {
	bursley, _ := models.LookupHall("Bursley")
	southQuad, _ := models.LookupHall("South Quad")
	a, b := hallLocation(bursley), hallLocation(southQuad)

	assert.Equal(t, 0.0, DistanceMiles(a, a))
	assert.Equal(t, DistanceMiles(a, b), DistanceMiles(b, a))
	// Bursley sits on North Campus, a little over two miles from South Quad.
	assert.InDelta(t, 2.4, DistanceMiles(a, b), 0.3)
}

func TestDistanceMilesRounding(t *testing.T) {
	origin := models.GeoLocation{Latitude: 0, Longitude: 0}
	// One degree of longitude at the equator is about 69.09 miles.
	d := DistanceMiles(origin, models.GeoLocation{Latitude: 0, Longitude: 1})
	assert.Equal(t, 69.1, d)
}

func TestHallCatalog(t *testing.T) {
	catalog := HallCatalog(nil)
	require.Len(t, catalog, 6)
	for _, info := range catalog {
		assert.Nil(t, info.Distance)
		lat, lon := geohash.Decode(info.Geohash)
		assert.InDelta(t, info.Latitude, lat, 1e-6)
		assert.InDelta(t, info.Longitude, lon, 1e-6)
	}

	markley, _ := models.LookupHall("Markley")
	here := hallLocation(markley)
	for _, info := range HallCatalog(&here) {
		require.NotNil(t, info.Distance)
		if info.Name == "Markley" {
			assert.Equal(t, 0.0, *info.Distance)
		}
	}
}
