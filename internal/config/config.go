package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// TimeLayout is the fractional-second UTC layout the time window is given in.
// RFC 3339 values are accepted as well.
const TimeLayout = "2006-01-02T15:04:05.000"

// Output formats.
const (
	FormatKML     = "kml"
	FormatGeoJSON = "geojson"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	Kp            int
	Hour          float64
	TimeStart     time.Time
	TimeEnd       time.Time
	LowThreshold  float64
	HighThreshold float64
	ModelFile     string

	OutputPath      string
	OutputFormat    string
	MetricsTextfile string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka publishing of the polygon records.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	kp, err := strconv.Atoi(sharedcfg.EnvOrDefault("KP", "9"))
	if err != nil || kp < 0 || kp > 9 {
		return nil, errors.New("invalid KP: must be an integer between 0 and 9")
	}

	hour, err := parseFloat("HOUR", "0")
	if err != nil {
		return nil, err
	}

	start, err := parseTime("TIME_START", "2003-11-11T21:00:00.000")
	if err != nil {
		return nil, err
	}
	end, err := parseTime("TIME_END", "2003-11-11T05:47:44.000")
	if err != nil {
		return nil, err
	}

	low, err := parseThreshold("LOW_THRESHOLD", "0.7")
	if err != nil {
		return nil, err
	}
	high, err := parseThreshold("HIGH_THRESHOLD", "0.8")
	if err != nil {
		return nil, err
	}
	if low >= high {
		return nil, errors.New("LOW_THRESHOLD must be below HIGH_THRESHOLD")
	}

	format := strings.ToLower(sharedcfg.EnvOrDefault("OUTPUT_FORMAT", FormatKML))
	if format != FormatKML && format != FormatGeoJSON {
		return nil, fmt.Errorf("invalid OUTPUT_FORMAT %q: want kml or geojson", format)
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		Kp:              kp,
		Hour:            hour,
		TimeStart:       start,
		TimeEnd:         end,
		LowThreshold:    low,
		HighThreshold:   high,
		ModelFile:       os.Getenv("MODEL_FILE"),
		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", defaultOutputPath(format)),
		OutputFormat:    format,
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "auroral-oval-polygons"),
	}

	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}

// SpanReversed reports whether the configured window ends before it starts.
func (c *Config) SpanReversed() bool {
	return c.TimeEnd.Before(c.TimeStart)
}

func defaultOutputPath(format string) string {
	if format == FormatGeoJSON {
		return "oval.geojson"
	}
	return "oval.kml"
}

func parseBrokers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return sharedcfg.ParseBrokers(s)
}

func parseFloat(key, def string) (float64, error) {
	v, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(key, def), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseThreshold(key, def string) (float64, error) {
	v, err := parseFloat(key, def)
	if err != nil {
		return 0, err
	}
	if !(v > 0 && v < 1) {
		return 0, fmt.Errorf("invalid %s: %g not in (0, 1)", key, v)
	}
	return v, nil
}

func parseTime(key, def string) (time.Time, error) {
	s := sharedcfg.EnvOrDefault(key, def)
	if t, err := time.ParseInLocation(TimeLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: want %s or RFC 3339", key, s, TimeLayout)
	}
	return t.UTC(), nil
}
