package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/auroral-oval/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testDocument() domain.Document {
	span := domain.TimeSpan{
		Begin: time.Date(2003, 11, 11, 21, 0, 0, 0, time.UTC),
		End:   time.Date(2003, 11, 11, 5, 47, 44, 0, time.UTC),
	}
	doc := domain.Document{
		Name:        "test oval",
		Span:        span,
		Kp:          9,
		GeneratedAt: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	}
	ring := domain.Ring{{Lon: 0, Lat: 60}, {Lon: 180, Lat: 60}, {Lon: 180, Lat: 70}, {Lon: 0, Lat: 70}}
	for _, band := range domain.DefaultBands(0.7, 0.8) {
		doc.AddPolygon(band, domain.East, ring)
		doc.AddPolygon(band, domain.West, ring)
	}
	return doc
}

func TestSerializeToMessage(t *testing.T) {
	doc := testDocument()
	poly := doc.Polygons[1]

	msg, err := serializeToMessage(doc, poly)
	require.NoError(t, err)

	assert.Equal(t, []byte(poly.ID), msg.Key)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "band", msg.Headers[0].Key)
	assert.Equal(t, []byte("low"), msg.Headers[0].Value)
	assert.Equal(t, "half", msg.Headers[1].Key)
	assert.Equal(t, []byte("west"), msg.Headers[1].Value)
	assert.Equal(t, "generated_at", msg.Headers[2].Key)
	assert.Equal(t, []byte("2026-10-14T12:00:00Z"), msg.Headers[2].Value)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &rec))
	assert.Equal(t, poly.ID, rec["id"])
	assert.Equal(t, "test oval", rec["document"])
	assert.Equal(t, 9.0, rec["kp"])
	assert.Len(t, rec["ring"], 4)
}

func TestWriter_Export(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: slog.Default()}
	assert.Equal(t, "kafka", w.Name())

	doc := testDocument()
	require.NoError(t, w.Export(context.Background(), doc))
	require.Len(t, fw.msgs, 4)
	for i, msg := range fw.msgs {
		assert.Equal(t, []byte(doc.Polygons[i].ID), msg.Key)
	}

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}

func TestWriter_ExportEmptyDocument(t *testing.T) {
	fw := &fakeWriter{err: errors.New("should not be called")}
	w := &Writer{writer: fw, logger: slog.Default()}
	require.NoError(t, w.Export(context.Background(), domain.Document{}))
}

func TestWriter_ExportError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker unavailable")}
	w := &Writer{writer: fw, logger: slog.Default()}

	err := w.Export(context.Background(), testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish polygons")
}
