package cp

import (
	"time"

	"github.com/rs/zerolog"
)

// SearchLog is a tracing monitor modeled on the source's SearchLog: it
// emits one structured line per accepted solution and, independently, a
// periodic line every period branches (none if period is 0), via the solver's
// zerolog.Logger. Attaching it is how SolverParameters.Trace is realized
// at Solve time.
type SearchLog struct {
	BaseMonitor
	solver    *Solver
	logger    zerolog.Logger
	objective *IntVar
	period    int64
	display   func(s *Solver) string

	start         time.Time
	lastBranches  int64
}

// NewSearchLog returns a SearchLog attached to s, logging through the
// solver's configured logger. objective may be nil if there is no single
// value worth reporting per solution. period is the branch-count
// granularity of periodic lines; 0 disables periodic lines entirely
// (only solution lines are emitted).
func NewSearchLog(s *Solver, objective *IntVar, period int64) *SearchLog {
	return &SearchLog{solver: s, logger: s.logger, objective: objective, period: period}
}

// WithDisplay attaches a callback invoked alongside every solution line
// (not the periodic lines), whose return value is logged under the "display" field
// — e.g. a model-specific human-readable rendering of the current best.
func (l *SearchLog) WithDisplay(f func(s *Solver) string) *SearchLog {
	l.display = f
	return l
}

func (l *SearchLog) EnterSearch(s *Solver) {
	l.start = time.Now()
	l.lastBranches = 0
	l.logger.Info().Str("event", "enter_search").Msg("search started")
}

func (l *SearchLog) ExitSearch(s *Solver) {
	l.logger.Info().
		Str("event", "exit_search").
		Int64("branches", s.Branches()).
		Int64("failures", s.Failures()).
		Int64("solutions", s.Solutions()).
		Dur("elapsed", time.Since(l.start)).
		Msg("search finished")
}

func (l *SearchLog) AtSolution(s *Solver) bool {
	ev := l.logger.Info().
		Str("event", "solution").
		Int64("solutions", s.Solutions()).
		Int64("branches", s.Branches()).
		Int64("failures", s.Failures()).
		Dur("elapsed", time.Since(l.start))
	if l.objective != nil {
		if v, ok := l.objective.Bound(); ok {
			ev = ev.Int("objective", v)
		}
	}
	if l.display != nil {
		ev = ev.Str("display", l.display(s))
	}
	ev.Msg("solution found")
	return true
}

func (l *SearchLog) PeriodicCheck(s *Solver) {
	if l.period <= 0 {
		return
	}
	if s.Branches()-l.lastBranches < l.period {
		return
	}
	l.lastBranches = s.Branches()
	l.logger.Debug().
		Str("event", "periodic").
		Int64("branches", s.Branches()).
		Int64("failures", s.Failures()).
		Dur("elapsed", time.Since(l.start)).
		Msg("periodic check")
}

func (l *SearchLog) String() string { return "SearchLog" }
