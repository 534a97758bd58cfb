package domain

import (
	"fmt"

	"github.com/couchcryptid/auroral-oval/internal/contour"
)

// Coord is a magnetic longitude/latitude pair in degrees.
type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Ring is an ordered loop of coordinates. The first coordinate is not
// repeated at the end.
type Ring []Coord

// Bounds returns the bounding box of the ring.
func (r Ring) Bounds() BBox {
	var b BBox
	for i, c := range r {
		if i == 0 {
			b = BBox{MinLon: c.Lon, MinLat: c.Lat, MaxLon: c.Lon, MaxLat: c.Lat}
			continue
		}
		b.MinLon = min(b.MinLon, c.Lon)
		b.MinLat = min(b.MinLat, c.Lat)
		b.MaxLon = max(b.MaxLon, c.Lon)
		b.MaxLat = max(b.MaxLat, c.Lat)
	}
	return b
}

// BBox is an axis-aligned box in magnetic coordinates.
type BBox struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// MapVertex converts a contour vertex of a field slice to coordinates. The
// vertex row (offset by rowOffset, the slice's first row in the full grid)
// indexes the longitude axis and the vertex column indexes the latitude axis.
func MapVertex(g Grid, p contour.Point, rowOffset int) (Coord, error) {
	lon, err := g.Lon.At(p.Y + float64(rowOffset))
	if err != nil {
		return Coord{}, fmt.Errorf("longitude: %w", err)
	}
	lat, err := g.Lat.At(p.X)
	if err != nil {
		return Coord{}, fmt.Errorf("latitude: %w", err)
	}
	return Coord{Lon: lon, Lat: lat}, nil
}

// TraceHalves contours slice at threshold and maps the southern and northern
// boundary paths to coordinates, without seam correction.
func TraceHalves(g Grid, slice Field, threshold float64, rowOffset int) (south, north Ring, err error) {
	lo, hi := slice.Range()
	if !(threshold > lo && threshold < hi) {
		return nil, nil, fmt.Errorf("%w: %g not in (%g, %g)", ErrThresholdOutOfRange, threshold, lo, hi)
	}

	paths := contour.Trace(slice, threshold)
	if len(paths) != 2 {
		return nil, nil, fmt.Errorf("%w: want 2, got %d at threshold %g", ErrWrongPathCount, len(paths), threshold)
	}

	south, err = mapPath(g, paths[0], rowOffset)
	if err != nil {
		return nil, nil, fmt.Errorf("southern path: %w", err)
	}
	north, err = mapPath(g, paths[1], rowOffset)
	if err != nil {
		return nil, nil, fmt.Errorf("northern path: %w", err)
	}
	return south, north, nil
}

func mapPath(g Grid, p contour.Path, rowOffset int) (Ring, error) {
	out := make(Ring, 0, len(p.Points))
	for _, pt := range p.Points {
		c, err := MapVertex(g, pt, rowOffset)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// PatchSeam adds a full rotation to the last vertex of each path when the
// paths come from the east half (rowOffset != 0). That vertex lies on the
// wrapped final row, whose longitude reads 0 instead of 360. Other vertices
// are left alone. The paths are modified in place.
func PatchSeam(south, north Ring, rowOffset int) {
	if rowOffset == 0 {
		return
	}
	if n := len(south); n > 0 {
		south[n-1].Lon += FullRotation
	}
	if n := len(north); n > 0 {
		north[n-1].Lon += FullRotation
	}
}

// Stitch joins the southern path and the reversed northern path into one
// ring. It assumes both paths run in the same direction so the ends meet.
func Stitch(south, north Ring) Ring {
	ring := make(Ring, 0, len(south)+len(north))
	ring = append(ring, south...)
	for i := len(north) - 1; i >= 0; i-- {
		ring = append(ring, north[i])
	}
	return ring
}

// ExtractBoundary returns the closed boundary ring of the oval at threshold
// for one half of the grid. rowOffset is the row of the full grid at which
// slice starts.
func ExtractBoundary(g Grid, slice Field, threshold float64, rowOffset int) (Ring, error) {
	south, north, err := TraceHalves(g, slice, threshold, rowOffset)
	if err != nil {
		return nil, err
	}
	PatchSeam(south, north, rowOffset)
	return Stitch(south, north), nil
}

