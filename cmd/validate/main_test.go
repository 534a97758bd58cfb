package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/auroral-oval/internal/adapter/kml"
	"github.com/couchcryptid/auroral-oval/internal/domain"
	"github.com/couchcryptid/auroral-oval/internal/observability"
	"github.com/couchcryptid/auroral-oval/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oval.kml")
	params := pipeline.Params{
		Name: "Auroral oval Kp 9",
		Kp:   9,
		Span: domain.TimeSpan{
			Begin: time.Date(2003, 11, 11, 21, 0, 0, 0, time.UTC),
			End:   time.Date(2003, 11, 11, 5, 47, 44, 0, time.UTC),
		},
		Bands: domain.DefaultBands(0.7, 0.8),
		Model: domain.DefaultModel(),
		Grid:  domain.DefaultGridSpec(),
	}
	p := pipeline.New(params, slog.Default(), observability.NewMetricsForTesting(), kml.NewWriter(path))
	_, err := p.Run(context.Background())
	require.NoError(t, err)
	return path
}

func TestRun_GeneratedArtifactPasses(t *testing.T) {
	assert.Equal(t, 0, run(writeArtifact(t)))
}

func TestRun_MissingFile(t *testing.T) {
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "missing.kml")))
}

func TestRun_TruncatedArtifactFails(t *testing.T) {
	path := writeArtifact(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0o644))

	assert.Equal(t, 1, run(path))
}

func validArtifact() kml.Artifact {
	span := kml.Span{Begin: "2003-11-11T21:00:00Z", End: "2003-11-11T05:47:44Z"}
	ring := domain.Ring{{Lon: 0, Lat: 55}, {Lon: 180, Lat: 55}, {Lon: 180, Lat: 70}, {Lon: 0, Lat: 55}}
	a := kml.Artifact{
		Name:   "test",
		Span:   span,
		Styles: map[string]string{"low-style": "bf7faa00", "high-style": "bf7faaff"},
	}
	for _, name := range []string{"low", "low", "high", "high"} {
		a.Placemarks = append(a.Placemarks, kml.Placemark{
			Name:     name,
			StyleURL: "#" + name + "-style",
			Span:     span,
			Ring:     ring,
		})
	}
	return a
}

func TestValidateInventory(t *testing.T) {
	assert.True(t, validateInventory(validArtifact()).passed())

	a := validArtifact()
	a.Placemarks = a.Placemarks[:3]
	p := validateInventory(a)
	assert.False(t, p.passed())
	assert.Contains(t, p.errors[0], "want 4, got 3")

	a = validArtifact()
	a.Placemarks[0].StyleURL = "#missing"
	assert.False(t, validateInventory(a).passed())

	a = validArtifact()
	a.Placemarks[3].Name = "medium"
	assert.False(t, validateInventory(a).passed())
}

func TestValidateTimeSpans(t *testing.T) {
	assert.True(t, validateTimeSpans(validArtifact()).passed())

	a := validArtifact()
	a.Placemarks[2].Span.End = "2003-11-12T00:00:00Z"
	p := validateTimeSpans(a)
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "placemark 2 (high)")

	a = validArtifact()
	a.Span.Begin = "2003-11-11T21:00:00.000"
	for i := range a.Placemarks {
		a.Placemarks[i].Span.Begin = a.Span.Begin
	}
	p = validateTimeSpans(a)
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "document begin")
}

func TestValidateRings(t *testing.T) {
	assert.True(t, validateRings(validArtifact(), 25, 89.75).passed())

	tests := []struct {
		name   string
		mutate func(*kml.Artifact)
		want   string
	}{
		{
			name:   "too short",
			mutate: func(a *kml.Artifact) { a.Placemarks[0].Ring = a.Placemarks[0].Ring[:3] },
			want:   "3 coordinates",
		},
		{
			name: "open",
			mutate: func(a *kml.Artifact) {
				a.Placemarks[1].Ring = domain.Ring{{Lon: 0, Lat: 55}, {Lon: 180, Lat: 55}, {Lon: 180, Lat: 70}, {Lon: 0, Lat: 70}}
			},
			want: "not closed",
		},
		{
			name: "latitude",
			mutate: func(a *kml.Artifact) {
				a.Placemarks[2].Ring = domain.Ring{{Lon: 0, Lat: 20}, {Lon: 180, Lat: 55}, {Lon: 180, Lat: 70}, {Lon: 0, Lat: 20}}
			},
			want: "latitude 20",
		},
		{
			name: "longitude",
			mutate: func(a *kml.Artifact) {
				a.Placemarks[3].Ring = domain.Ring{{Lon: -4, Lat: 55}, {Lon: 180, Lat: 55}, {Lon: 180, Lat: 70}, {Lon: -4, Lat: 55}}
			},
			want: "longitude -4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArtifact()
			a.Placemarks = append([]kml.Placemark(nil), a.Placemarks...)
			tt.mutate(&a)
			p := validateRings(a, 25, 89.75)
			require.False(t, p.passed())
			assert.Contains(t, p.errors[0], tt.want)
		})
	}
}
