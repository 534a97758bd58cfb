// Package geojson renders oval documents as a GeoJSON FeatureCollection.
package geojson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/couchcryptid/auroral-oval/internal/adapter/artifact"
	"github.com/couchcryptid/auroral-oval/internal/domain"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Writer writes the document to a GeoJSON file.
// It implements pipeline.Exporter.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Name() string { return "geojson" }

func (w *Writer) Export(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return artifact.Write(w.path, func(out io.Writer) error {
		return Encode(out, doc)
	})
}

// Encode writes doc as an indented FeatureCollection, one polygon feature per
// boundary in document order.
func Encode(w io.Writer, doc domain.Document) error {
	fc, err := FeatureCollection(doc)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	return nil
}

// FeatureCollection converts doc. The collection bbox covers every ring.
func FeatureCollection(doc domain.Document) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(doc.Polygons))}
	var bounds *geom.Bounds
	for _, p := range doc.Polygons {
		f, err := feature(doc, p)
		if err != nil {
			return nil, err
		}
		if bounds == nil {
			bounds = f.BBox.Clone()
		} else {
			bounds.Extend(f.Geometry)
		}
		fc.Features = append(fc.Features, f)
	}
	fc.BBox = bounds
	return fc, nil
}

func feature(doc domain.Document, p domain.Polygon) (*geojson.Feature, error) {
	poly, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{closedRing(p.Ring)})
	if err != nil {
		return nil, fmt.Errorf("polygon %s: %w", p.ID, err)
	}
	return &geojson.Feature{
		ID:       p.ID,
		BBox:     poly.Bounds(),
		Geometry: poly,
		Properties: map[string]any{
			"name":         p.Name,
			"half":         string(p.Half),
			"threshold":    p.Threshold,
			"color":        p.Style.Color,
			"outline":      p.Style.Outline,
			"begin":        p.Span.Begin.UTC().Format(time.RFC3339),
			"end":          p.Span.End.UTC().Format(time.RFC3339),
			"kp":           doc.Kp,
			"hour":         doc.Hour,
			"generated_at": doc.GeneratedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

// closedRing returns the ring as go-geom coordinates with the first vertex
// repeated at the end, as GeoJSON linear rings require.
func closedRing(r domain.Ring) []geom.Coord {
	coords := make([]geom.Coord, 0, len(r)+1)
	for _, c := range r {
		coords = append(coords, geom.Coord{c.Lon, c.Lat})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		coords = append(coords, geom.Coord{r[0].Lon, r[0].Lat})
	}
	return coords
}
