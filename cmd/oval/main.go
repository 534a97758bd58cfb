// Command oval computes the auroral oval boundaries for one Kp index and
// magnetic hour and writes them as a KML or GeoJSON artifact, optionally
// publishing each polygon to Kafka.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/auroral-oval/internal/adapter/geojson"
	kafkaadapter "github.com/couchcryptid/auroral-oval/internal/adapter/kafka"
	"github.com/couchcryptid/auroral-oval/internal/adapter/kml"
	"github.com/couchcryptid/auroral-oval/internal/config"
	"github.com/couchcryptid/auroral-oval/internal/observability"
	"github.com/couchcryptid/auroral-oval/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if cfg.SpanReversed() {
		logger.Warn("time span ends before it begins",
			"time_start", cfg.TimeStart.Format(config.TimeLayout),
			"time_end", cfg.TimeEnd.Format(config.TimeLayout),
		)
	}

	model, err := config.LoadModel(cfg.ModelFile)
	if err != nil {
		logger.Error("failed to load model", "error", err)
		return 1
	}

	var exporters []pipeline.Exporter
	switch cfg.OutputFormat {
	case config.FormatGeoJSON:
		exporters = append(exporters, geojson.NewWriter(cfg.OutputPath))
	default:
		exporters = append(exporters, kml.NewWriter(cfg.OutputPath))
	}

	// Kafka publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		exporters = append(exporters, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A signal cancels ctx; the export stages then get SHUTDOWN_TIMEOUT to finish.
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer timeoutCancel()
			<-timeoutCtx.Done()
			cancel()
		case <-runCtx.Done():
		}
	}()

	p := pipeline.New(pipeline.ParamsFromConfig(cfg, model), logger, metrics, exporters...)
	doc, runErr := p.Run(runCtx)

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		logger.Error("oval run failed", "error", runErr)
		return 1
	}

	logger.Info("artifact written",
		"path", cfg.OutputPath,
		"format", cfg.OutputFormat,
		"polygons", len(doc.Polygons),
	)
	return 0
}
