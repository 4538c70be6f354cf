package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/otherjamesbrown/chatpulse/config"
	chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
	"github.com/otherjamesbrown/chatpulse/pkg/ingest/chat"
	"github.com/otherjamesbrown/chatpulse/pkg/logging"
	"github.com/otherjamesbrown/chatpulse/pkg/observability"
	"github.com/otherjamesbrown/chatpulse/pkg/report"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// stdinPath reads the transcript from standard input.
const stdinPath = "-"

// transcript is a parsed source file.
type transcript struct {
	source *chat.Source
	parsed *chat.Result
}

// loadTranscript reads and parses path. A transcript without a single
// message header is reported as ErrNoMessages.
func loadTranscript(ctx context.Context, deps *CommandDeps, path string) (*transcript, error) {
	deps.fill()
	log := deps.logger().WithContext(logging.WithSource(ctx, path))

	_, span := deps.Tracer.StartParseSpan(ctx, path)
	defer span.End()

	src, err := readSource(deps, path)
	if err != nil {
		observability.NewSpanHelper(span).SetError(err, "parse", "io")
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	started := time.Now()
	parsed := chat.Parse(src.Text)
	deps.Metrics.RecordParse(parsed.Timeline.Len(), parsed.Skipped, time.Since(started).Seconds())

	log.Debug("Parsed transcript",
		logging.F("encoding", src.Encoding),
		logging.F("events", parsed.Timeline.Len()),
		logging.F("skipped", parsed.Skipped),
	)
	if parsed.Skipped > 0 {
		log.Warn("Skipped unparseable message headers", logging.F("skipped", parsed.Skipped))
	}

	if parsed.Timeline.Empty() {
		observability.NewSpanHelper(span).SetError(chaterrors.ErrNoMessages, "parse", "no_messages")
		return nil, fmt.Errorf("%s: %w", path, chaterrors.ErrNoMessages)
	}
	observability.NewSpanHelper(span).SetSuccess()
	return &transcript{source: src, parsed: parsed}, nil
}

func readSource(deps *CommandDeps, path string) (*chat.Source, error) {
	if path != stdinPath {
		read := deps.ReadSource
		if read == nil {
			read = chat.ReadSource
		}
		return read(path)
	}
	raw, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return nil, err
	}
	text, encoding := chat.Decode(raw)
	return &chat.Source{Path: path, Encoding: encoding, Raw: raw, Text: text}, nil
}

// runReport loads path and analyses it.
func runReport(ctx context.Context, deps *CommandDeps, path string) (*report.Report, *config.Config, error) {
	cfg, err := deps.resolveConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	tr, err := loadTranscript(ctx, deps, path)
	if err != nil {
		return nil, nil, err
	}

	rep, err := deps.engine(cfg).Analyze(ctx, tr.parsed.Timeline)
	if err != nil {
		return nil, nil, fmt.Errorf("analysing %s: %w", path, err)
	}
	rep.Stamp(path, tr.source.Encoding, tr.source.Raw, tr.parsed.Skipped)

	if err := writeMetrics(deps, cfg); err != nil {
		deps.logger().Warn("Failed to write metrics file", logging.F("path", cfg.MetricsFile), logging.Err(err))
	}
	return rep, cfg, nil
}

// writeMetrics dumps the registry to cfg.MetricsFile for node_exporter's
// textfile collector.
func writeMetrics(deps *CommandDeps, cfg *config.Config) error {
	if cfg.MetricsFile == "" || deps.Registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(cfg.MetricsFile, deps.Registry)
}

// selectUser checks that user names a section of rep. Empty means Overall.
func selectUser(rep *report.Report, user string) (string, *report.Section, error) {
	if user == "" {
		user = timeline.Overall
	}
	s, ok := rep.Section(user)
	if !ok {
		return "", nil, fmt.Errorf("%q: %w (known: %v)", user, chaterrors.ErrUnknownAuthor, rep.Meta.Users)
	}
	return user, s, nil
}
