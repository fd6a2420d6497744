// Package geo holds the spherical math used to turn GPS fixes into planar
// coordinates: great-circle distance, initial bearing and a Mercator-style
// projection.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	EarthRadius = 6371000.0 // meters
	maxLat      = 89.9999
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceMeters returns the haversine distance between two points given in degrees.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// BearingDegrees returns the initial compass bearing from point 1 to point 2, in [0, 360).
func BearingDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLon := radians(lon2 - lon1)

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)

	b := math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
	if b >= 360 {
		b = 0
	}
	return b
}

// Project maps (lat, lon) onto the Mercator plane. refLon is in degrees.
// Latitude is clamped to ±89.9999° so the poles stay finite.
func Project(lat, lon, refLon float64) (x, y float64) {
	lat = math.Max(-maxLat, math.Min(maxLat, lat))
	sinPhi := math.Sin(radians(lat))
	x = radians(lon) - radians(refLon)
	y = math.Log((1+sinPhi)/(1-sinPhi)) / 2
	return x, y
}

// ProjectDefault projects with the reference longitude at 0.
func ProjectDefault(lat, lon float64) (x, y float64) {
	return Project(lat, lon, 0)
}

// BoundingBox is the extent of a set of projected points.
type BoundingBox struct {
	orb.Bound
}

// Bounds computes the bounding box of xs/ys. Both slices must have the same length.
func Bounds(xs, ys []float64) BoundingBox {
	mp := make(orb.MultiPoint, len(xs))
	for i := range xs {
		mp[i] = orb.Point{xs[i], ys[i]}
	}
	return BoundingBox{Bound: mp.Bound()}
}

func (b BoundingBox) MinX() float64 { return b.Min[0] }
func (b BoundingBox) MaxX() float64 { return b.Max[0] }
func (b BoundingBox) MinY() float64 { return b.Min[1] }
func (b BoundingBox) MaxY() float64 { return b.Max[1] }

// SpanX is the planar width of the box.
func (b BoundingBox) SpanX() float64 { return b.Max[0] - b.Min[0] }

// SpanY is the planar height of the box.
func (b BoundingBox) SpanY() float64 { return b.Max[1] - b.Min[1] }
