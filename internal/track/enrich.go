package track

import (
	"math"
	"time"

	"gpx_overlay_image/internal/errs"
	"gpx_overlay_image/internal/geo"
)

const (
	speedWindow       = 5
	activeMinDistance = 3.0  // meters; shorter hops are GPS jitter while stationary
	climbMaxDelta     = 0.25 // meters; larger positive deltas are not counted
)

// accumulator carries the running state of the enrichment fold.
type accumulator struct {
	window    [speedWindow]float64
	windowPos int

	prevEle        float64
	climb          float64
	active         float64
	distance       float64
	speedSum       float64
	maxSpeed       float64
	smoothedMax    float64
	minEle, maxEle float64
}

func newAccumulator(first RawPoint) accumulator {
	return accumulator{
		prevEle: first.Ele,
		minEle:  first.Ele,
		maxEle:  first.Ele,
	}
}

// push replaces the oldest speed in the window and returns the window mean.
func (a *accumulator) push(speed float64) float64 {
	a.window[a.windowPos] = speed
	a.windowPos = (a.windowPos + 1) % speedWindow
	var sum float64
	for _, s := range a.window {
		sum += s
	}
	return sum / speedWindow
}

// step folds cur (with its predecessor prev) into the accumulator and
// returns the enriched point.
func (a *accumulator) step(prev, cur RawPoint) (ProjectedPoint, error) {
	dt := cur.Time.Sub(prev.Time).Seconds()
	if dt <= 0 {
		return ProjectedPoint{}, errs.Malformed("timestamps not increasing at %s (previous %s)",
			cur.Time.Format(time.RFC3339), prev.Time.Format(time.RFC3339))
	}

	dist := geo.DistanceMeters(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
	speed := dist / dt

	a.smoothedMax = math.Max(a.smoothedMax, a.push(speed))
	if dist > activeMinDistance {
		a.active += dt
	}
	if delta := cur.Ele - a.prevEle; delta > 0 && delta < climbMaxDelta {
		a.climb += delta
	}
	a.prevEle = cur.Ele

	a.distance += dist
	a.speedSum += speed
	a.maxSpeed = math.Max(a.maxSpeed, speed)
	a.minEle = math.Min(a.minEle, cur.Ele)
	a.maxEle = math.Max(a.maxEle, cur.Ele)

	return project(cur, speed, dist), nil
}

func project(p RawPoint, speed, dist float64) ProjectedPoint {
	x, y := geo.ProjectDefault(p.Lat, p.Lon)
	return ProjectedPoint{RawPoint: p, X: x, Y: y, Speed: speed, Distance: dist}
}

func validate(i int, p RawPoint) error {
	for _, v := range []float64{p.Lat, p.Lon, p.Ele} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Malformed("track point %d has non-finite coordinates (%v, %v, %v)", i, p.Lat, p.Lon, p.Ele)
		}
	}
	return nil
}

// Enrich projects every point and computes the track metrics in one forward pass.
func Enrich(points []RawPoint) ([]ProjectedPoint, Metrics, error) {
	if len(points) < 2 {
		return nil, Metrics{}, errs.Malformed("track needs at least 2 points, got %d", len(points))
	}
	if err := validate(0, points[0]); err != nil {
		return nil, Metrics{}, err
	}

	out := make([]ProjectedPoint, len(points))
	out[0] = project(points[0], 0, 0)
	acc := newAccumulator(points[0])

	for i := 1; i < len(points); i++ {
		if err := validate(i, points[i]); err != nil {
			return nil, Metrics{}, err
		}
		p, err := acc.step(points[i-1], points[i])
		if err != nil {
			return nil, Metrics{}, err
		}
		out[i] = p
	}

	return out, acc.metrics(points), nil
}

func (a *accumulator) metrics(points []RawPoint) Metrics {
	return Metrics{
		TotalDistance:    a.distance,
		AverageSpeed:     a.speedSum / float64(len(points)),
		MaxSpeed:         a.maxSpeed,
		SmoothedMaxSpeed: a.smoothedMax,
		TotalClimb:       a.climb,
		ActiveDuration:   a.active,
		ElapsedDuration:  points[len(points)-1].Time.Sub(points[0].Time).Seconds(),
		MinElevation:     a.minEle,
		MaxElevation:     a.maxEle,
	}
}
