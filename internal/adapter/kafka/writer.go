package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/auroral-oval/internal/config"
	"github.com/couchcryptid/auroral-oval/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes polygon records to a Kafka topic.
// It implements pipeline.Exporter.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured polygon topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Export publishes one message per polygon in a single WriteMessages call.
func (w *Writer) Export(ctx context.Context, doc domain.Document) error {
	if len(doc.Polygons) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(doc.Polygons))
	for i := range doc.Polygons {
		msg, err := serializeToMessage(doc, doc.Polygons[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish polygons: %w", err)
	}
	w.logger.Debug("polygons published", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// polygonRecord is the message payload: one polygon with its run context.
type polygonRecord struct {
	domain.Polygon
	Document    string    `json:"document"`
	Kp          int       `json:"kp"`
	Hour        float64   `json:"hour"`
	GeneratedAt time.Time `json:"generated_at"`
}

// serializeToMessage marshals a polygon into a Kafka message keyed by its ID.
func serializeToMessage(doc domain.Document, poly domain.Polygon) (kafkago.Message, error) {
	data, err := json.Marshal(polygonRecord{
		Polygon:     poly,
		Document:    doc.Name,
		Kp:          doc.Kp,
		Hour:        doc.Hour,
		GeneratedAt: doc.GeneratedAt,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize polygon %s: %w", poly.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(poly.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "band", Value: []byte(poly.Name)},
			{Key: "half", Value: []byte(poly.Half)},
			{Key: "generated_at", Value: []byte(doc.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
