package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/auroral-oval/internal/config"
	"github.com/couchcryptid/auroral-oval/internal/domain"
	"github.com/couchcryptid/auroral-oval/internal/observability"
)

// Exporter writes a finished document to a destination.
type Exporter interface {
	Name() string
	Export(ctx context.Context, doc domain.Document) error
}

// Params are the inputs of one oval computation.
type Params struct {
	Name  string
	Kp    int
	Hour  float64
	Span  domain.TimeSpan
	Bands []domain.Band
	Model domain.Model
	Grid  domain.GridSpec
}

// ParamsFromConfig combines the run configuration with the model tables.
func ParamsFromConfig(cfg *config.Config, model domain.Model) Params {
	return Params{
		Name:  fmt.Sprintf("Auroral oval Kp %d", cfg.Kp),
		Kp:    cfg.Kp,
		Hour:  cfg.Hour,
		Span:  domain.TimeSpan{Begin: cfg.TimeStart, End: cfg.TimeEnd},
		Bands: domain.DefaultBands(cfg.LowThreshold, cfg.HighThreshold),
		Model: model,
		Grid:  domain.DefaultGridSpec(),
	}
}

// Pipeline computes the oval boundaries and hands them to the exporters.
type Pipeline struct {
	params    Params
	exporters []Exporter
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. Exporters run in the order given.
func New(params Params, logger *slog.Logger, metrics *observability.Metrics, exporters ...Exporter) *Pipeline {
	return &Pipeline{
		params:    params,
		exporters: exporters,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run computes the document and exports it. Nothing is exported unless all
// boundaries were extracted; the first exporter error stops the run.
func (p *Pipeline) Run(ctx context.Context) (domain.Document, error) {
	start := time.Now()
	p.logger.Info("oval run started", "kp", p.params.Kp, "hour", p.params.Hour, "bands", len(p.params.Bands))

	doc, err := p.Compute()
	if err != nil {
		return domain.Document{}, err
	}

	for _, e := range p.exporters {
		if err := ctx.Err(); err != nil {
			return doc, fmt.Errorf("run cancelled before %s export: %w", e.Name(), err)
		}
		if err := e.Export(ctx, doc); err != nil {
			p.metrics.Exports.WithLabelValues(e.Name(), "error").Inc()
			return doc, fmt.Errorf("%s export: %w", e.Name(), err)
		}
		p.metrics.Exports.WithLabelValues(e.Name(), "success").Inc()
		p.logger.Info("document exported", "sink", e.Name(), "polygons", len(doc.Polygons))
	}

	p.metrics.RunDuration.Set(time.Since(start).Seconds())
	p.metrics.LastSuccess.SetToCurrentTime()
	p.logger.Info("oval run complete", "duration", time.Since(start))
	return doc, nil
}

// Compute builds the grid, evaluates the oval and extracts one boundary ring
// per band and grid half.
func (p *Pipeline) Compute() (domain.Document, error) {
	grid := domain.BuildGrid(p.params.Grid, p.params.Hour)
	field, err := domain.EvaluateOval(grid, p.params.Model, p.params.Kp)
	if err != nil {
		p.metrics.ExtractionErrors.WithLabelValues(domain.FailureReason(err)).Inc()
		return domain.Document{}, fmt.Errorf("evaluate oval: %w", err)
	}

	rows, cols := field.Dims()
	p.metrics.GridCells.Set(float64(rows * cols))
	lo, hi := field.Range()
	p.logger.Debug("oval evaluated", "rows", rows, "cols", cols, "min", lo, "max", hi, "seam", grid.Seam())

	doc := domain.NewDocument(p.params.Name, p.params.Span, p.params.Kp, p.params.Hour)
	for _, band := range p.params.Bands {
		for _, h := range splitHalves(grid, field) {
			ring, err := domain.ExtractBoundary(grid, h.field, band.Threshold, h.offset)
			if err != nil {
				p.metrics.ExtractionErrors.WithLabelValues(domain.FailureReason(err)).Inc()
				return domain.Document{}, fmt.Errorf("extract %s boundary (%s): %w", band.Name, h.name, err)
			}
			doc.AddPolygon(band, h.name, ring)

			p.metrics.BoundariesExtracted.WithLabelValues(band.Name, string(h.name)).Inc()
			p.metrics.RingVertices.WithLabelValues(band.Name, string(h.name)).Set(float64(len(ring)))
			p.logger.Debug("boundary extracted",
				"band", band.Name,
				"half", h.name,
				"threshold", band.Threshold,
				"vertices", len(ring),
			)
		}
	}
	return doc, nil
}
