package geo

import (
	"testing"

	"github.com/pharmacare/storefront/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{40.7128, -74.0060, 34.0522, -118.2437},
		{41.8781, -87.6298, 12.9103105, 80.1938566},
		{0, 0, 51.5074, -0.1278},
	}

	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		require.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	require.Equal(t, 0.0, DistanceKm(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestDistanceKnownValue(t *testing.T) {
	// NYC to LA is roughly 3936 km great-circle.
	d := DistanceKm(40.7128, -74.0060, 34.0522, -118.2437)
	require.InDelta(t, 3936, d, 10)
}

func TestNearestStorePicksMinimum(t *testing.T) {
	// Stores roughly 5, 2 and 8 km north of the origin point.
	stores := []models.Store{
		{ID: 1, Name: "far", Lat: 0.045, Lng: 0},
		{ID: 2, Name: "near", Lat: 0.018, Lng: 0},
		{ID: 3, Name: "farther", Lat: 0.072, Lng: 0},
	}

	got := NearestStore(0, 0, stores)
	require.NotNil(t, got)
	require.Equal(t, uint(2), got.ID)
}

func TestNearestStoreEmptyList(t *testing.T) {
	require.Nil(t, NearestStore(40.0, -74.0, nil))
}

func TestNearestStoreTieKeepsFirst(t *testing.T) {
	stores := []models.Store{
		{ID: 1, Lat: 0.01, Lng: 0},
		{ID: 2, Lat: 0.01, Lng: 0},
	}

	got := NearestStore(0, 0, stores)
	require.NotNil(t, got)
	require.Equal(t, uint(1), got.ID)
}
