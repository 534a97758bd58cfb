package kml

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/auroral-oval/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() domain.Document {
	span := domain.TimeSpan{
		Begin: time.Date(2003, 11, 11, 21, 0, 0, 0, time.UTC),
		End:   time.Date(2003, 11, 11, 5, 47, 44, 0, time.UTC),
	}
	doc := domain.Document{Name: "Auroral oval Kp 9", Span: span, Kp: 9}
	east := domain.Ring{{Lon: 180, Lat: 55}, {Lon: 360, Lat: 55}, {Lon: 360, Lat: 72}, {Lon: 180, Lat: 72}}
	west := domain.Ring{{Lon: 0, Lat: 54.5}, {Lon: 180, Lat: 55}, {Lon: 180, Lat: 72}, {Lon: 0, Lat: 71.5}}
	for _, band := range domain.DefaultBands(0.7, 0.8) {
		doc.AddPolygon(band, domain.East, east)
		doc.AddPolygon(band, domain.West, west)
	}
	return doc
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("bf7faaff")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xbf), c.A)
	assert.Equal(t, uint8(0x7f), c.B)
	assert.Equal(t, uint8(0xaa), c.G)
	assert.Equal(t, uint8(0xff), c.R)

	for _, bad := range []string{"", "bf7faa", "zz7faa00", "bf7faa0000"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestClosedRing(t *testing.T) {
	open := domain.Ring{{Lon: 0, Lat: 1}, {Lon: 1, Lat: 1}, {Lon: 1, Lat: 2}}
	coords := closedRing(open)
	require.Len(t, coords, 4)
	assert.Equal(t, coords[0], coords[3])

	closed := append(open, open[0])
	assert.Len(t, closedRing(closed), 4)
	assert.Empty(t, closedRing(nil))
}

func TestEncodeDecode(t *testing.T) {
	doc := testDocument()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))
	out := buf.String()
	assert.Contains(t, out, "<color>bf7faa00</color>")
	assert.Contains(t, out, "<color>bf7faaff</color>")
	assert.Contains(t, out, "<outline>")
	assert.NotContains(t, out, "<outline>1</outline>")
	assert.NotContains(t, out, "<outline>true</outline>")

	a, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Auroral oval Kp 9", a.Name)
	assert.Equal(t, Span{Begin: "2003-11-11T21:00:00Z", End: "2003-11-11T05:47:44Z"}, a.Span)
	assert.Equal(t, map[string]string{"low-style": "bf7faa00", "high-style": "bf7faaff"}, a.Styles)

	require.Len(t, a.Placemarks, 4)
	var names []string
	for i, pm := range a.Placemarks {
		names = append(names, pm.Name)
		assert.Equal(t, a.Span, pm.Span)
		assert.Equal(t, "#"+pm.Name+"-style", pm.StyleURL)

		want := append(domain.Ring{}, doc.Polygons[i].Ring...)
		want = append(want, want[0])
		if diff := cmp.Diff(want, pm.Ring); diff != "" {
			t.Fatalf("placemark %d ring mismatch (-want +got):\n%s", i, diff)
		}
	}
	assert.Equal(t, []string{"low", "low", "high", "high"}, names)
}

func TestEncode_InvalidColor(t *testing.T) {
	doc := testDocument()
	doc.Polygons[0].Style.Color = "red"

	var buf bytes.Buffer
	err := Encode(&buf, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "style low")
}

func TestDecode_BadCoordinates(t *testing.T) {
	src := `<kml><Document><Placemark><name>low</name><Polygon><outerBoundaryIs><LinearRing>
<coordinates>0,50 x,51</coordinates></LinearRing></outerBoundaryIs></Polygon></Placemark></Document></kml>`
	_, err := Decode(bytes.NewBufferString(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placemark 0 (low)")
}

func TestWriter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oval.kml")
	w := NewWriter(path)
	assert.Equal(t, "kml", w.Name())

	require.NoError(t, w.Export(context.Background(), testDocument()))

	a, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, a.Placemarks, 4)
}

func TestWriter_ExportCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oval.kml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, NewWriter(path).Export(ctx, testDocument()), context.Canceled)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
