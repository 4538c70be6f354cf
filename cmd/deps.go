// Package cmd provides CLI commands for the chatpulse tool.
package cmd

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/otherjamesbrown/chatpulse/config"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/anomaly"
	"github.com/otherjamesbrown/chatpulse/pkg/ingest/chat"
	"github.com/otherjamesbrown/chatpulse/pkg/logging"
	"github.com/otherjamesbrown/chatpulse/pkg/observability"
	"github.com/otherjamesbrown/chatpulse/pkg/report"
	"github.com/otherjamesbrown/chatpulse/pkg/sentiment"
)

// CommandDeps holds the dependencies shared by the analysis commands.
// Config and Logger may be filled in after the commands are built, as the
// root command does once flags are parsed.
type CommandDeps struct {
	Config     *config.Config
	LoadConfig func() (*config.Config, error)
	Logger     logging.Logger

	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	Tracer   *observability.Tracer
	Scorer   sentiment.Scorer

	// ReadSource loads a transcript file; Stdin is read for the path "-".
	ReadSource func(path string) (*chat.Source, error)
	Stdin      io.Reader
}

// DefaultDeps returns the default dependencies for production use.
func DefaultDeps() *CommandDeps {
	reg := prometheus.NewRegistry()
	return &CommandDeps{
		LoadConfig: config.LoadConfig,
		Logger:     logging.NewNopLogger(),
		Registry:   reg,
		Metrics:    observability.NewMetrics(reg),
		Tracer:     observability.NewTracer(),
		Scorer:     sentiment.NewLexicon(),
		ReadSource: chat.ReadSource,
		Stdin:      os.Stdin,
	}
}

// resolveConfig returns the loaded configuration, loading it on first use.
func (d *CommandDeps) resolveConfig() (*config.Config, error) {
	if d.Config != nil {
		return d.Config, nil
	}
	load := d.LoadConfig
	if load == nil {
		load = config.LoadConfig
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	d.Config = cfg
	return cfg, nil
}

// fill sets any nil collaborator to its default.
func (d *CommandDeps) fill() {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Metrics == nil {
		d.Metrics = observability.NewMetrics(d.Registry)
	}
	if d.Tracer == nil {
		d.Tracer = observability.NewTracer()
	}
	if d.Scorer == nil {
		d.Scorer = sentiment.NewLexicon()
	}
	if d.Stdin == nil {
		d.Stdin = os.Stdin
	}
}

func (d *CommandDeps) logger() logging.Logger {
	if d.Logger == nil {
		return logging.NewNopLogger()
	}
	return d.Logger
}

// engine builds a report engine from cfg.
func (d *CommandDeps) engine(cfg *config.Config) *report.Engine {
	return report.NewEngine(report.Options{
		Scorer:    d.Scorer,
		Logger:    d.logger(),
		Metrics:   d.Metrics,
		Tracer:    d.Tracer,
		Workers:   cfg.Workers,
		TopWords:  cfg.Analysis.TopWords,
		TopEmojis: cfg.Analysis.TopEmojis,
		TopUsers:  cfg.Analysis.TopUsers,
		TopRoles:  cfg.Analysis.TopRoles,
		Anomaly:   AnomalyConfig(cfg.Anomaly),
	})
}

// AnomalyConfig converts the file settings to detector settings.
func AnomalyConfig(c config.AnomalyConfig) anomaly.Config {
	return anomaly.Config{
		Contamination: c.Contamination,
		Seed:          c.Seed,
		Trees:         c.Trees,
		MinDays:       c.MinDays,
		MinRows:       c.MinRows,
		GapThreshold:  c.GapThreshold,
		MaxPerSide:    c.MaxPerSide,
	}
}
