package geo

import (
	"math"

	"github.com/pharmacare/storefront/internal/models"
)

// earthRadiusKm is the mean radius used by the haversine formula.
const earthRadiusKm = 6371

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers. Pure and symmetric: DistanceKm(a, b) == DistanceKm(b, a).
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// NearestStore returns the store closest to the given point, or nil when the
// list is empty. Ties keep the earliest store in the slice.
func NearestStore(lat, lng float64, stores []models.Store) *models.Store {
	if len(stores) == 0 {
		return nil
	}

	nearest := &stores[0]
	minDist := DistanceKm(lat, lng, nearest.Lat, nearest.Lng)

	for i := 1; i < len(stores); i++ {
		d := DistanceKm(lat, lng, stores[i].Lat, stores[i].Lng)
		if d < minDist {
			minDist = d
			nearest = &stores[i]
		}
	}

	return nearest
}
