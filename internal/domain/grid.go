package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// FullRotation is the longitude period in degrees.
	FullRotation = 360.0

	// DegreesPerHour converts a magnetic hour angle to degrees of longitude.
	DegreesPerHour = FullRotation / 24
)

// Axis is an ordered set of coordinate samples.
type Axis []float64

// At linearly interpolates the axis at a fractional index.
func (a Axis) At(index float64) (float64, error) {
	n := len(a)
	if n == 0 || math.IsNaN(index) || index < 0 || index > float64(n-1) {
		return 0, fmt.Errorf("%w: index %g, axis length %d", ErrIndexOutOfRange, index, n)
	}
	i := int(index)
	if i == n-1 {
		return a[i], nil
	}
	frac := index - float64(i)
	if frac == 0 {
		return a[i], nil
	}
	return a[i] + frac*(a[i+1]-a[i]), nil
}

// Bounds returns the smallest and largest sample.
func (a Axis) Bounds() (lo, hi float64) {
	if len(a) == 0 {
		return 0, 0
	}
	return floats.Min(a), floats.Max(a)
}

// GridSpec describes the two sampled ranges. Stops are exclusive.
type GridSpec struct {
	LonStart, LonStop, LonStep float64
	LatStart, LatStop, LatStep float64
}

// DefaultGridSpec returns the 4 degree by 0.25 degree grid the oval tables
// were tuned for.
func DefaultGridSpec() GridSpec {
	return GridSpec{
		LonStart: 0, LonStop: 364, LonStep: 4,
		LatStart: 25, LatStop: 90, LatStep: 0.25,
	}
}

// Grid holds the longitude (row) and latitude (column) axes of a field.
type Grid struct {
	Lon Axis
	Lat Axis
}

// BuildGrid samples both axes of spec. Longitudes are shifted by the hour
// angle and wrapped into [0, 360).
func BuildGrid(spec GridSpec, hour float64) Grid {
	lon := arange(spec.LonStart, spec.LonStop, spec.LonStep)
	shift := hour * DegreesPerHour
	for i, v := range lon {
		lon[i] = wrapLongitude(v + shift)
	}
	return Grid{
		Lon: lon,
		Lat: arange(spec.LatStart, spec.LatStop, spec.LatStep),
	}
}

// Dims reports the field shape implied by the grid.
func (g Grid) Dims() (rows, cols int) {
	return len(g.Lon), len(g.Lat)
}

// Seam is the row at which the grid is split into west and east halves.
func (g Grid) Seam() int {
	return len(g.Lon) / 2
}

func wrapLongitude(v float64) float64 {
	v = math.Mod(v, FullRotation)
	if v < 0 {
		v += FullRotation
	}
	return v
}

// arange returns start, start+step, ... up to but excluding stop.
func arange(start, stop, step float64) Axis {
	if step <= 0 || stop <= start {
		return Axis{}
	}
	n := int(math.Ceil((stop - start) / step))
	out := make(Axis, n)
	if n == 1 {
		out[0] = start
		return out
	}
	floats.Span(out, start, start+float64(n-1)*step)
	return out
}
