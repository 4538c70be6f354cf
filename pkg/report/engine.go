// Package report runs every analytic over a timeline and assembles the
// per-author result tree.
//
// Shared inputs (sentiment annotations, the global turn-taking scan, overall
// anomalies and roles) are computed once. Per-author sections then run in
// parallel and only read that shared state.
package report

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/anomaly"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/roles"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/turntaking"
	"github.com/otherjamesbrown/chatpulse/pkg/buildinfo"
	"github.com/otherjamesbrown/chatpulse/pkg/logging"
	"github.com/otherjamesbrown/chatpulse/pkg/observability"
	"github.com/otherjamesbrown/chatpulse/pkg/sentiment"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Defaults for the ranked lists.
const (
	DefaultTopWords  = 20
	DefaultTopEmojis = 10
	DefaultTopUsers  = 10
)

// Options configures an Engine. Zero fields take their defaults.
type Options struct {
	Scorer  sentiment.Scorer
	Logger  logging.Logger
	Metrics *observability.Metrics
	Tracer  *observability.Tracer

	// Workers bounds how many author sections are built at once.
	Workers int

	TopWords  int
	TopEmojis int
	TopUsers  int
	TopRoles  int

	Anomaly anomaly.Config
}

// DefaultOptions returns Options with every default filled in.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Scorer == nil {
		o.Scorer = sentiment.NewLexicon()
	}
	if o.Logger == nil {
		o.Logger = logging.NewNopLogger()
	}
	if o.Metrics == nil {
		o.Metrics = observability.NewDiscardMetrics()
	}
	if o.Tracer == nil {
		o.Tracer = observability.NewTracer()
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.TopWords <= 0 {
		o.TopWords = DefaultTopWords
	}
	if o.TopEmojis <= 0 {
		o.TopEmojis = DefaultTopEmojis
	}
	if o.TopUsers <= 0 {
		o.TopUsers = DefaultTopUsers
	}
	if o.TopRoles <= 0 {
		o.TopRoles = roles.DefaultTopN
	}
	if o.Anomaly == (anomaly.Config{}) {
		o.Anomaly = anomaly.DefaultConfig()
	}
	return o
}

// Engine builds reports. It is safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine returns an engine for opts.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// shared is the request-scoped state every section reads.
type shared struct {
	tl          *timeline.Timeline
	annotations *sentiment.Annotations
	turns       *turntaking.Analysis
	anomalies   anomaly.Result
	roles       map[string]roles.Assignment
}

// Analyze builds the report for tl. Degenerate input, including an empty
// timeline, yields a well-formed report; the only error is ctx's.
func (e *Engine) Analyze(ctx context.Context, tl *timeline.Timeline) (*Report, error) {
	if tl == nil {
		tl = timeline.New(nil)
	}
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := e.opts.Logger.WithContext(ctx)

	users := tl.Users()
	ctx, span := e.opts.Tracer.StartAnalyzeSpan(ctx, runID, tl.Len(), len(users)-1)
	defer span.End()

	started := time.Now()
	log.Debug("Starting analysis", logging.F("events", tl.Len()), logging.F("authors", len(users)-1))

	root := &scope{engine: e, log: log, author: timeline.Overall, span: span}
	sh := &shared{tl: tl}

	e.stage(ctx, "sentiment", func() {
		sh.annotations = guard(root, "sentiment", (*sentiment.Annotations)(nil), func() (*sentiment.Annotations, error) {
			return sentiment.Annotate(tl, e.opts.Scorer), nil
		})
	})
	e.stage(ctx, "turn_taking", func() {
		sh.turns = guard(root, "turn_taking", turntaking.Analyze(nil), func() (*turntaking.Analysis, error) {
			return turntaking.Analyze(tl), nil
		})
	})
	e.stage(ctx, "anomalies", func() {
		sh.anomalies = guard(root, "anomalies", anomaly.Empty(), func() (anomaly.Result, error) {
			return anomaly.Detect(tl.All(), sh.annotations, e.opts.Anomaly)
		})
	})
	e.stage(ctx, "roles", func() {
		sh.roles = guard(root, "roles", map[string]roles.Assignment{}, func() (map[string]roles.Assignment, error) {
			return roles.Classify(tl, sh.turns, e.opts.TopRoles), nil
		})
	})
	e.opts.Metrics.RecordAnomalies(len(sh.anomalies.Spikes), len(sh.anomalies.Drops))

	sections := make([]*Section, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, user := range users {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, sspan := e.opts.Tracer.StartSectionSpan(gctx, user)
			defer sspan.End()

			sc := &scope{engine: e, log: log.With(logging.F("author", user)), author: user, span: sspan}
			sections[i] = e.section(sc, sh)
			observability.NewSpanHelper(sspan).SetSuccess()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.NewSpanHelper(span).SetError(err, "report", "cancelled")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := &Report{
		Meta: Meta{
			RunID:        runID,
			Generator:    buildinfo.Get(),
			GeneratedAt:  time.Now().UTC(),
			Events:       tl.Len(),
			Users:        users,
			Participants: len(users) - 1,
		},
		Analytics: make(map[string]*Section, len(users)),
	}
	if first, last, ok := tl.Span(); ok {
		rep.Meta.Start, rep.Meta.End = &first, &last
	}
	for i, user := range users {
		rep.Analytics[user] = sections[i]
	}
	if overall := rep.Analytics[timeline.Overall]; overall != nil {
		e.opts.Metrics.SetHealthScore(overall.Health.Score)
	}

	observability.NewSpanHelper(span).SetSuccess()
	log.Info("Analysis complete",
		logging.F("events", tl.Len()),
		logging.F("sections", len(sections)),
		logging.F("duration", time.Since(started)),
	)
	return rep, nil
}

// stage runs fn under a span and records its duration.
func (e *Engine) stage(ctx context.Context, name string, fn func()) {
	_, span := e.opts.Tracer.StartStageSpan(ctx, name)
	defer span.End()
	started := time.Now()
	fn()
	e.opts.Metrics.RecordStage(name, time.Since(started).Seconds())
}
