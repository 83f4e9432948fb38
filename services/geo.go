package services

import (
	"math"

	"MenuMate/models"

	"github.com/mmcloughlin/geohash"
)

const (
	earthRadiusMeters = 6371e3
	metersPerMile     = 1609.34
)

// haversine returns the great-circle distance in meters.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) + math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// DistanceMiles is the distance between two points in miles, rounded to
// one decimal.
func DistanceMiles(a, b models.GeoLocation) float64 {
	miles := haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude) / metersPerMile
	return math.Round(miles*10) / 10
}

func hallLocation(h models.DiningHall) models.GeoLocation {
	return models.GeoLocation{Latitude: h.Latitude, Longitude: h.Longitude}
}

// HallInfo is a hall in the catalog response.
type HallInfo struct {
	models.DiningHall
	Geohash  string   `json:"geohash"`
	Distance *float64 `json:"distance"`
}

// HallCatalog lists the halls with their geohash, and the distance to loc
// when one is given.
func HallCatalog(loc *models.GeoLocation) []HallInfo {
	halls := models.DiningHalls()
	out := make([]HallInfo, 0, len(halls))
	for _, h := range halls {
		info := HallInfo{DiningHall: h, Geohash: geohash.Encode(h.Latitude, h.Longitude)}
		if loc != nil {
			d := DistanceMiles(*loc, hallLocation(h))
			info.Distance = &d
		}
		out = append(out, info)
	}
	return out
}
