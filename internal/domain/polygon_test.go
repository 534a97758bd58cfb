package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpan() TimeSpan {
	return TimeSpan{
		Begin: time.Date(2003, 11, 11, 21, 0, 0, 0, time.UTC),
		End:   time.Date(2003, 11, 11, 5, 47, 44, 0, time.UTC),
	}
}

func TestNewDocument_UsesClock(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(now))
	defer SetClock(nil)

	doc := NewDocument("oval", testSpan(), 9, 0)
	assert.Equal(t, now, doc.GeneratedAt)
	assert.Equal(t, 9, doc.Kp)
	assert.Empty(t, doc.Polygons)
}

func TestDefaultBands(t *testing.T) {
	bands := DefaultBands(lowThreshold, highThreshold)
	require.Len(t, bands, 2)
	assert.Equal(t, Band{Name: "low", Threshold: 0.7, Style: Style{Color: "bf7faa00"}}, bands[0])
	assert.Equal(t, Band{Name: "high", Threshold: 0.8, Style: Style{Color: "bf7faaff"}}, bands[1])
}

func TestDocument_AddPolygon(t *testing.T) {
	bands := DefaultBands(lowThreshold, highThreshold)
	ring := Ring{{Lon: 0, Lat: 50}, {Lon: 10, Lat: 50}, {Lon: 10, Lat: 60}}

	doc := NewDocument("oval", testSpan(), 9, 0)
	east := doc.AddPolygon(bands[0], East, ring)
	west := doc.AddPolygon(bands[0], West, ring)

	require.Len(t, doc.Polygons, 2)
	assert.Equal(t, "low", east.Name)
	assert.Equal(t, East, east.Half)
	assert.Equal(t, doc.Span, east.Span)
	assert.Equal(t, "bf7faa00", east.Style.Color)
	assert.NotEqual(t, east.ID, west.ID)

	_, err := uuid.Parse(east.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), uuid.MustParse(east.ID).Version())

	t.Run("IDs are reproducible", func(t *testing.T) {
		again := NewDocument("other name", testSpan(), 9, 0)
		p := again.AddPolygon(bands[0], East, nil)
		assert.Equal(t, east.ID, p.ID)
	})

	t.Run("IDs depend on parameters", func(t *testing.T) {
		other := NewDocument("oval", testSpan(), 8, 0)
		p := other.AddPolygon(bands[0], East, ring)
		assert.NotEqual(t, east.ID, p.ID)
	})
}

func TestRing_Bounds(t *testing.T) {
	r := Ring{{Lon: 190, Lat: 51}, {Lon: 360, Lat: 49}, {Lon: 250, Lat: 66}}
	assert.Equal(t, BBox{MinLon: 190, MinLat: 49, MaxLon: 360, MaxLat: 66}, r.Bounds())
	assert.Equal(t, BBox{}, Ring{}.Bounds())
}
