package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Half names one side of the split grid.
type Half string

const (
	West Half = "west"
	East Half = "east"
)

// polygonNamespace scopes the deterministic polygon IDs.
var polygonNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:auroral-oval:polygon"))

// Style is the fill style of a polygon. Color is an aabbggrr hex string as
// used by KML.
type Style struct {
	Color   string `json:"color"`
	Outline bool   `json:"outline"`
}

// Band is a named threshold with its fill style.
type Band struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
	Style     Style   `json:"style"`
}

// DefaultBands returns the low and high intensity bands.
func DefaultBands(low, high float64) []Band {
	return []Band{
		{Name: "low", Threshold: low, Style: Style{Color: "bf7faa00"}},
		{Name: "high", Threshold: high, Style: Style{Color: "bf7faaff"}},
	}
}

// TimeSpan is the validity window of a polygon or document.
type TimeSpan struct {
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`
}

// Polygon is one exported boundary.
type Polygon struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Half      Half     `json:"half"`
	Threshold float64  `json:"threshold"`
	Style     Style    `json:"style"`
	Span      TimeSpan `json:"time_span"`
	Ring      Ring     `json:"ring"`
}

// Document is the full set of polygons written in one run.
type Document struct {
	Name        string    `json:"name"`
	Span        TimeSpan  `json:"time_span"`
	Kp          int       `json:"kp"`
	Hour        float64   `json:"hour"`
	GeneratedAt time.Time `json:"generated_at"`
	Polygons    []Polygon `json:"polygons"`
}

// NewDocument creates an empty document stamped with the current time.
func NewDocument(name string, span TimeSpan, kp int, hour float64) Document {
	return Document{
		Name:        name,
		Span:        span,
		Kp:          kp,
		Hour:        hour,
		GeneratedAt: clock.Now().UTC(),
	}
}

// AddPolygon appends a polygon for band and half. Its ID is derived from the
// document parameters so reruns with equal inputs reproduce it.
func (d *Document) AddPolygon(band Band, half Half, ring Ring) Polygon {
	p := Polygon{
		ID:        polygonID(band, half, d.Kp, d.Hour, d.Span),
		Name:      band.Name,
		Half:      half,
		Threshold: band.Threshold,
		Style:     band.Style,
		Span:      d.Span,
		Ring:      ring,
	}
	d.Polygons = append(d.Polygons, p)
	return p
}

func polygonID(band Band, half Half, kp int, hour float64, span TimeSpan) string {
	key := fmt.Sprintf("%s|%s|%g|%d|%g|%s|%s",
		band.Name, half, band.Threshold, kp, hour,
		span.Begin.UTC().Format(time.RFC3339Nano), span.End.UTC().Format(time.RFC3339Nano))
	return uuid.NewSHA1(polygonNamespace, []byte(key)).String()
}
