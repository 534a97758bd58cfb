package domain

import (
	"errors"
	"fmt"
	"math"
)

// KpLevels is the number of Kp index values covered by the model tables.
const KpLevels = 10

// Model holds the Kp-indexed empirical tables of the oval.
type Model struct {
	// CentroidLat is the magnetic latitude of the oval centre, indexed by Kp.
	CentroidLat []float64 `yaml:"centroid_lat"`
	// MidnightWidth is the oval half-width in degrees, indexed by Kp.
	MidnightWidth []float64 `yaml:"midnight_width"`

	MidnightBrightness float64 `yaml:"midnight_brightness"`
	NoonBrightness     float64 `yaml:"noon_brightness"`
}

// DefaultModel returns the published tables with unit brightness.
func DefaultModel() Model {
	return Model{
		CentroidLat:        []float64{70.0, 68.8, 67.8, 66.5, 65.5, 64.2, 63.1, 61.0, 58.5, 55.0},
		MidnightWidth:      []float64{1.5, 2.8, 4.2, 5.5, 7.0, 8.2, 9.9, 12.0, 15.0, 18.5},
		MidnightBrightness: 1,
		NoonBrightness:     1,
	}
}

// Validate checks table lengths and that widths and brightness are positive.
func (m Model) Validate() error {
	if len(m.CentroidLat) != KpLevels {
		return fmt.Errorf("centroid_lat: want %d entries, got %d", KpLevels, len(m.CentroidLat))
	}
	if len(m.MidnightWidth) != KpLevels {
		return fmt.Errorf("midnight_width: want %d entries, got %d", KpLevels, len(m.MidnightWidth))
	}
	for kp, w := range m.MidnightWidth {
		if !(w > 0) {
			return fmt.Errorf("midnight_width[%d]: must be positive, got %g", kp, w)
		}
	}
	if !(m.MidnightBrightness > 0) || !(m.NoonBrightness > 0) {
		return errors.New("brightness must be positive")
	}
	return nil
}

// OvalParams are the model coefficients for one Kp index.
type OvalParams struct {
	Centroid           float64
	NoonWidth          float64
	MidnightWidth      float64
	NoonBrightness     float64
	MidnightBrightness float64
}

// Params looks up the coefficients for kp.
func (m Model) Params(kp int) (OvalParams, error) {
	if kp < 0 || kp >= len(m.CentroidLat) || kp >= len(m.MidnightWidth) {
		return OvalParams{}, fmt.Errorf("%w: %d", ErrKpOutOfRange, kp)
	}
	h2 := m.MidnightWidth[kp]
	return OvalParams{
		Centroid:           m.CentroidLat[kp],
		NoonWidth:          h2 / 3,
		MidnightWidth:      h2,
		NoonBrightness:     m.NoonBrightness,
		MidnightBrightness: m.MidnightBrightness,
	}, nil
}

// Intensity evaluates the oval at a wrapped longitude and a latitude, both
// in degrees.
func (p OvalParams) Intensity(lon, lat float64) float64 {
	h1, h2 := p.NoonWidth, p.MidnightWidth
	h0 := (h1 + h2) / 2
	rh := (h2 - h1) / (h2 + h1)

	f1, f2 := p.NoonBrightness, p.MidnightBrightness
	f0 := (f1 + f2) / 2
	rf := (f2 - f1) / (f2 + f1)

	c := math.Cos(lon * math.Pi / 180)
	h := h0 * (1 - rh*c)
	d := (lat - p.Centroid) / h
	return f0 * (1 - rf*c) * math.Exp(-d*d)
}

// EvaluateOval computes the intensity field over g for the given Kp index.
func EvaluateOval(g Grid, m Model, kp int) (Field, error) {
	p, err := m.Params(kp)
	if err != nil {
		return Field{}, err
	}
	rows, cols := g.Dims()
	data := make([]float64, 0, rows*cols)
	for _, lon := range g.Lon {
		for _, lat := range g.Lat {
			data = append(data, p.Intensity(lon, lat))
		}
	}
	return NewField(rows, cols, data), nil
}
