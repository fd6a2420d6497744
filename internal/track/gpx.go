package track

import (
	"errors"
	"io/fs"
	"os"

	"github.com/tkrajina/gpxgo/gpx"

	"gpx_overlay_image/internal/errs"
)

// --- GPX Parsing ---

// LoadGPX reads every track point of every track and segment in file order.
func LoadGPX(filePath string) ([]RawPoint, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.FileNotFound("unreadable GPX file %s", filePath)
		}
		return nil, errs.FileNotFound("unreadable GPX file %s: %v", filePath, err)
	}

	gpxFile, err := gpx.ParseFile(filePath)
	if err != nil {
		return nil, errs.Malformed("failed to parse GPX file %s: %v", filePath, err)
	}
	return pointsFromGPX(gpxFile)
}

// ParseGPX parses an in-memory GPX document.
func ParseGPX(data []byte) ([]RawPoint, error) {
	gpxFile, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, errs.Malformed("failed to parse GPX: %v", err)
	}
	return pointsFromGPX(gpxFile)
}

func pointsFromGPX(gpxFile *gpx.GPX) ([]RawPoint, error) {
	var points []RawPoint
	var known []bool
	for _, trk := range gpxFile.Tracks {
		for _, segment := range trk.Segments {
			for _, p := range segment.Points {
				if p.Timestamp.IsZero() {
					return nil, errs.Malformed("track point %d has no timestamp", len(points))
				}
				var ele float64
				if p.Elevation.NotNull() {
					ele = p.Elevation.Value()
				}
				points = append(points, RawPoint{Lat: p.Latitude, Lon: p.Longitude, Ele: ele, Time: p.Timestamp})
				known = append(known, p.Elevation.NotNull())
			}
		}
	}
	fillElevation(points, known)
	return points, nil
}

// fillElevation gives points without an elevation the first known value
// (for a leading gap) or the last known one (anywhere else).
func fillElevation(points []RawPoint, known []bool) {
	firstIdx := -1
	for i := range points {
		if known[i] {
			firstIdx = i
			break
		}
	}
	if firstIdx == -1 {
		return
	}

	last := points[firstIdx].Ele
	for i := range points {
		if known[i] {
			last = points[i].Ele
		} else {
			points[i].Ele = last
		}
	}
}
