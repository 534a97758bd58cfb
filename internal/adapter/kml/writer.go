// Package kml renders oval documents as KML and reads KML artifacts back.
package kml

import (
	"context"
	"encoding/hex"
	"fmt"
	"image/color"
	"io"

	"github.com/couchcryptid/auroral-oval/internal/adapter/artifact"
	"github.com/couchcryptid/auroral-oval/internal/domain"
	gokml "github.com/twpayne/go-kml"
)

// Writer writes the document to a KML file.
// It implements pipeline.Exporter.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Name() string { return "kml" }

// Export writes the artifact atomically. The context is checked once before
// the file is created.
func (w *Writer) Export(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return artifact.Write(w.path, func(out io.Writer) error {
		return Encode(out, doc)
	})
}

// Encode renders doc as an indented KML document. Each band gets one shared
// style; every polygon becomes a placemark with a closed outer ring.
func Encode(w io.Writer, doc domain.Document) error {
	folder := gokml.Document(
		gokml.Name(doc.Name),
		timeSpan(doc.Span),
	)

	styles := map[string]*gokml.SharedElement{}
	for _, p := range doc.Polygons {
		if _, ok := styles[p.Name]; ok {
			continue
		}
		style, err := sharedStyle(p.Name, p.Style)
		if err != nil {
			return err
		}
		styles[p.Name] = style
		folder.Add(style)
	}

	for _, p := range doc.Polygons {
		folder.Add(gokml.Placemark(
			gokml.Name(p.Name),
			gokml.StyleURL(styles[p.Name].URL()),
			timeSpan(p.Span),
			gokml.Polygon(
				gokml.OuterBoundaryIs(
					gokml.LinearRing(
						gokml.Coordinates(closedRing(p.Ring)...),
					),
				),
			),
		))
	}

	if err := gokml.KML(folder).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("encode kml: %w", err)
	}
	return nil
}

func sharedStyle(band string, s domain.Style) (*gokml.SharedElement, error) {
	c, err := parseColor(s.Color)
	if err != nil {
		return nil, fmt.Errorf("style %s: %w", band, err)
	}
	return gokml.SharedStyle(band+"-style",
		gokml.PolyStyle(
			gokml.Color(c),
			gokml.Outline(s.Outline),
		),
	), nil
}

func timeSpan(s domain.TimeSpan) *gokml.CompoundElement {
	return gokml.TimeSpan(
		gokml.Begin(s.Begin.UTC()),
		gokml.End(s.End.UTC()),
	)
}

// closedRing returns the ring with its first vertex repeated at the end.
func closedRing(r domain.Ring) []gokml.Coordinate {
	coords := make([]gokml.Coordinate, 0, len(r)+1)
	for _, c := range r {
		coords = append(coords, gokml.Coordinate{Lon: c.Lon, Lat: c.Lat})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		coords = append(coords, gokml.Coordinate{Lon: r[0].Lon, Lat: r[0].Lat})
	}
	return coords
}

// parseColor decodes a KML aabbggrr hex string.
func parseColor(s string) (color.RGBA, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 4 {
		return color.RGBA{}, fmt.Errorf("invalid kml color %q", s)
	}
	return color.RGBA{A: b[0], B: b[1], G: b[2], R: b[3]}, nil
}
