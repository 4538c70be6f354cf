package report

import (
	"go.opentelemetry.io/otel/trace"

	chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
	"github.com/otherjamesbrown/chatpulse/pkg/logging"
	"github.com/otherjamesbrown/chatpulse/pkg/observability"
)

// scope is where an analytic runs: the whole conversation or one author.
type scope struct {
	engine *Engine
	log    logging.Logger
	author string
	span   trace.Span
}

// guard runs one analytic. A panic degrades it to empty. A returned error is
// logged and fn's result is kept: analytics that fail partway return their
// degraded result along with the error.
func guard[T any](sc *scope, analytic string, empty T, fn func() (T, error)) (out T) {
	defer func() {
		if r := recover(); r != nil {
			sc.degrade(analytic, chaterrors.FromPanic(analytic, r))
			out = empty
		}
	}()

	var err error
	out, err = fn()
	if err != nil {
		sc.degrade(analytic, err)
	}
	return out
}

func (sc *scope) degrade(analytic string, err error) {
	code := string(chaterrors.CodeOf(err))
	sc.log.Warn("Analytic degraded",
		logging.F("analytic", analytic),
		logging.F("code", code),
		logging.Err(err),
	)
	sc.engine.opts.Metrics.RecordFailure(analytic, code)
	if sc.span != nil {
		observability.NewSpanHelper(sc.span).SetError(err, analytic, code)
	}
}
