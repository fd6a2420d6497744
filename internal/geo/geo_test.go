package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		for _, p := range [][2]float64{{0, 0}, {46.0, 7.0}, {-33.9, 151.2}, {89.9, -179.9}} {
			assert.Equal(t, 0.0, DistanceMeters(p[0], p[1], p[0], p[1]))
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][4]float64{
			{46.0, 7.0, 46.001, 7.001},
			{-6.2, 106.816, -6.9175, 107.6191},
			{51.5, -0.12, 40.7, -74.0},
		}
		for _, p := range pairs {
			assert.InDelta(t, DistanceMeters(p[0], p[1], p[2], p[3]), DistanceMeters(p[2], p[3], p[0], p[1]), 1e-6)
		}
	})

	t.Run("equator thousandth of a degree", func(t *testing.T) {
		assert.InDelta(t, 111.19, DistanceMeters(0, 0, 0, 0.001), 0.05)
	})

	t.Run("known city pair", func(t *testing.T) {
		// Jakarta to Bandung, roughly 120 km
		d := DistanceMeters(-6.2, 106.816, -6.9175, 107.6191)
		assert.Greater(t, d, 100000.0)
		assert.Less(t, d, 140000.0)
	})
}

func TestBearingDegrees(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"north", 0, 0, 1, 0, 0},
		{"east", 0, 0, 0, 1, 90},
		{"south", 1, 0, 0, 0, 180},
		{"west", 0, 1, 0, 0, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BearingDegrees(tt.lat1, tt.lon1, tt.lat2, tt.lon2), 1e-9)
		})
	}

	t.Run("range", func(t *testing.T) {
		for lat := -80.0; lat <= 80; lat += 20 {
			for lon := -170.0; lon <= 170; lon += 34 {
				b := BearingDegrees(10, 20, lat, lon)
				assert.GreaterOrEqual(t, b, 0.0)
				assert.Less(t, b, 360.0)
			}
		}
	})
}

func TestProject(t *testing.T) {
	t.Run("reference longitude maps to zero", func(t *testing.T) {
		for _, lat := range []float64{-60, -10, 0, 33.3, 70} {
			x, _ := ProjectDefault(lat, 0)
			assert.Equal(t, 0.0, x)
		}
	})

	t.Run("equator origin", func(t *testing.T) {
		x, y := ProjectDefault(0, 0)
		assert.Equal(t, 0.0, x)
		assert.InDelta(t, 0.0, y, 1e-12)
	})

	t.Run("reference longitude shift", func(t *testing.T) {
		x, _ := Project(10, 15, 15)
		assert.InDelta(t, 0.0, x, 1e-12)
		x, _ = Project(10, 16, 15)
		assert.InDelta(t, math.Pi/180, x, 1e-12)
	})

	t.Run("injective away from poles", func(t *testing.T) {
		seen := map[[2]float64][2]float64{}
		for lat := -80.0; lat <= 80; lat += 7.5 {
			for lon := -175.0; lon <= 175; lon += 12.5 {
				x, y := ProjectDefault(lat, lon)
				key := [2]float64{x, y}
				if prev, ok := seen[key]; ok {
					t.Fatalf("(%v,%v) and (%v,%v) project to the same point", prev[0], prev[1], lat, lon)
				}
				seen[key] = [2]float64{lat, lon}
			}
		}
	})

	t.Run("poles stay finite", func(t *testing.T) {
		_, yn := ProjectDefault(90, 0)
		_, ys := ProjectDefault(-90, 0)
		assert.False(t, math.IsInf(yn, 0) || math.IsNaN(yn))
		assert.False(t, math.IsInf(ys, 0) || math.IsNaN(ys))
		assert.Greater(t, yn, 0.0)
		assert.InDelta(t, -yn, ys, 1e-9)
	})
}

func TestBounds(t *testing.T) {
	bb := Bounds([]float64{1, -2, 3}, []float64{0.5, 4, -1})
	assert.Equal(t, -2.0, bb.MinX())
	assert.Equal(t, 3.0, bb.MaxX())
	assert.Equal(t, -1.0, bb.MinY())
	assert.Equal(t, 4.0, bb.MaxY())
	assert.Equal(t, 5.0, bb.SpanX())
	assert.Equal(t, 5.0, bb.SpanY())
}
