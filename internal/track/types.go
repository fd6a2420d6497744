// Package track loads GPS tracks and derives the per-point kinematics and
// summary metrics that the renderer draws.
package track

import "time"

// --- Structs ---

// RawPoint is one GPS fix as read from the track file.
type RawPoint struct {
	Lat, Lon, Ele float64
	Time          time.Time
}

// ProjectedPoint is a RawPoint with its planar position and the kinematics
// relative to the previous point. For the first point Speed and Distance are 0.
type ProjectedPoint struct {
	RawPoint
	X, Y     float64
	Speed    float64 // m/s
	Distance float64 // meters from the previous point
}

// Metrics summarises a whole track. Speeds are in m/s, distances and
// elevations in meters, durations in seconds.
type Metrics struct {
	TotalDistance    float64
	AverageSpeed     float64
	MaxSpeed         float64
	SmoothedMaxSpeed float64
	TotalClimb       float64
	ActiveDuration   float64
	ElapsedDuration  float64
	MinElevation     float64
	MaxElevation     float64
}
