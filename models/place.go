package models

import "strings"

// DiningHall is one of the fixed dining facilities served by the menu site.
type DiningHall struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoLocation is a caller-supplied position.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var diningHalls = []DiningHall{
	newDiningHall("Bursley", 42.296152151463275, -83.71031104510504),
	newDiningHall("East Quad", 42.27308724683324, -83.73523173347121),
	newDiningHall("Markley", 42.28105576454475, -83.72888983161529),
	newDiningHall("Mosher-Jordan", 42.28014917899281, -83.73153330135683),
	newDiningHall("North Quad", 42.280668689896245, -83.74012628743262),
	newDiningHall("South Quad", 42.273867238346284, -83.74207111626943),
}

func newDiningHall(name string, lat, lon float64) DiningHall {
	return DiningHall{Name: name, Slug: Slugify(name), Latitude: lat, Longitude: lon}
}

// DiningHalls returns the six halls in their natural order. The slice is a copy.
func DiningHalls() []DiningHall {
	out := make([]DiningHall, len(diningHalls))
	copy(out, diningHalls)
	return out
}

// LookupHall finds a hall by its display name.
func LookupHall(name string) (DiningHall, bool) {
	for _, h := range diningHalls {
		if h.Name == name {
			return h, true
		}
	}
	return DiningHall{}, false
}

// Slugify turns a hall name into the path segment used by the menu site.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
