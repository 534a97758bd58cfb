package kml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/auroral-oval/internal/domain"
)

// Span is a KML TimeSpan as written in the file.
type Span struct {
	Begin string `xml:"begin"`
	End   string `xml:"end"`
}

// Placemark is one polygon placemark read back from a KML file.
type Placemark struct {
	Name     string
	StyleURL string
	Span     Span
	Ring     domain.Ring
}

// Artifact is the subset of a KML document the generator writes.
type Artifact struct {
	Name       string
	Span       Span
	Styles     map[string]string // style id -> polygon color
	Placemarks []Placemark
}

type kmlPlacemark struct {
	Name     string `xml:"name"`
	StyleURL string `xml:"styleUrl"`
	TimeSpan Span   `xml:"TimeSpan"`
	Polygon  *struct {
		Coordinates string `xml:"outerBoundaryIs>LinearRing>coordinates"`
	} `xml:"Polygon"`
}

type kmlStyle struct {
	ID    string `xml:"id,attr"`
	Color string `xml:"PolyStyle>color"`
}

type kmlRoot struct {
	XMLName  xml.Name `xml:"kml"`
	Document struct {
		Name       string         `xml:"name"`
		TimeSpan   Span           `xml:"TimeSpan"`
		Styles     []kmlStyle     `xml:"Style"`
		Placemarks []kmlPlacemark `xml:"Placemark"`
	} `xml:"Document"`
}

// ReadFile decodes the KML artifact at path.
func ReadFile(path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a KML document. Coordinates are "lon,lat[,alt]" tuples
// separated by whitespace; altitude is ignored.
func Decode(r io.Reader) (Artifact, error) {
	var root kmlRoot
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return Artifact{}, fmt.Errorf("decode kml: %w", err)
	}

	a := Artifact{
		Name:   strings.TrimSpace(root.Document.Name),
		Span:   trimSpan(root.Document.TimeSpan),
		Styles: make(map[string]string, len(root.Document.Styles)),
	}
	for _, s := range root.Document.Styles {
		a.Styles[s.ID] = strings.TrimSpace(s.Color)
	}
	for i, pm := range root.Document.Placemarks {
		p := Placemark{
			Name:     strings.TrimSpace(pm.Name),
			StyleURL: strings.TrimSpace(pm.StyleURL),
			Span:     trimSpan(pm.TimeSpan),
		}
		if pm.Polygon != nil {
			ring, err := parseCoordinates(pm.Polygon.Coordinates)
			if err != nil {
				return Artifact{}, fmt.Errorf("placemark %d (%s): %w", i, p.Name, err)
			}
			p.Ring = ring
		}
		a.Placemarks = append(a.Placemarks, p)
	}
	return a, nil
}

func parseCoordinates(s string) (domain.Ring, error) {
	var ring domain.Ring
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			return nil, fmt.Errorf("coordinate %q: want lon,lat", tuple)
		}
		lon, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", tuple, err)
		}
		lat, err := strconv.ParseFloat(vals[1], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", tuple, err)
		}
		ring = append(ring, domain.Coord{Lon: lon, Lat: lat})
	}
	return ring, nil
}

func trimSpan(s Span) Span {
	return Span{Begin: strings.TrimSpace(s.Begin), End: strings.TrimSpace(s.End)}
}
