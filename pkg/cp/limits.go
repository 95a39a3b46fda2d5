package cp

import "time"

// SearchLimit is a monitor that requests termination once some resource
// cap is exceeded. Limits are plain SearchMonitors:
// they hook BeginNextDecision (returning KillBoth once exceeded) and
// PeriodicCheck (refreshing any wall-clock state), the two call sites
// the driver guarantees to visit at every choice point.
type SearchLimit interface {
	SearchMonitor
	// Exceeded reports whether the limit's cap has been reached as of
	// the last check.
	Exceeded() bool
}

// RegularLimit combines four scalar caps: wall time, branches,
// failures, and solutions, each 0 meaning "no cap". SmartTimeCheck
// skips clock reads on most calls, reading the clock only every
// smartTimeCheckPeriod calls (or always, if smart checking is off) — a
// "predicted remaining calls" heuristic reduced to a fixed stride,
// which is the same trade the source's smart_time_check makes when the
// branching factor is roughly uniform.
type RegularLimit struct {
	BaseMonitor
	solver *Solver

	Duration      time.Duration
	Branches      int64
	Failures      int64
	Solutions     int64
	SmartTimeCheck bool
	Cumulative     bool

	branchOffset   int64
	failureOffset  int64
	solutionOffset int64
	start          time.Time

	checkCount int64
	exceeded   bool
}

const smartTimeCheckPeriod = 32

// NewRegularLimit returns a limit over s with the given caps (0 = uncapped).
func NewRegularLimit(s *Solver, duration time.Duration, branches, failures, solutions int64, smartTimeCheck, cumulative bool) *RegularLimit {
	return &RegularLimit{
		solver: s, Duration: duration, Branches: branches, Failures: failures,
		Solutions: solutions, SmartTimeCheck: smartTimeCheck, Cumulative: cumulative,
	}
}

func (l *RegularLimit) EnterSearch(s *Solver) {
	l.branchOffset = s.Branches()
	l.failureOffset = s.Failures()
	l.solutionOffset = s.Solutions()
	l.start = time.Now()
	l.checkCount = 0
	l.exceeded = false
}

func (l *RegularLimit) ExitSearch(s *Solver) {
	if !l.Cumulative {
		return
	}
	if l.Branches > 0 {
		l.Branches -= s.Branches() - l.branchOffset
	}
	if l.Failures > 0 {
		l.Failures -= s.Failures() - l.failureOffset
	}
	if l.Solutions > 0 {
		l.Solutions -= s.Solutions() - l.solutionOffset
	}
}

func (l *RegularLimit) check(s *Solver) {
	if l.Branches > 0 && s.Branches()-l.branchOffset >= l.Branches {
		l.exceeded = true
		return
	}
	if l.Failures > 0 && s.Failures()-l.failureOffset >= l.Failures {
		l.exceeded = true
		return
	}
	if l.Solutions > 0 && s.Solutions()-l.solutionOffset >= l.Solutions {
		l.exceeded = true
		return
	}
	if l.Duration <= 0 {
		return
	}
	l.checkCount++
	if l.SmartTimeCheck && l.checkCount%smartTimeCheckPeriod != 0 {
		return
	}
	if time.Since(l.start) >= l.Duration {
		l.exceeded = true
	}
}

func (l *RegularLimit) BeginNextDecision(s *Solver, db DecisionBuilder) DecisionModification {
	l.check(s)
	if l.exceeded {
		return KillBoth
	}
	return NoChange
}

func (l *RegularLimit) PeriodicCheck(s *Solver) { l.check(s) }

// Exceeded reports whether the limit's cap has been reached as of the
// last check.
func (l *RegularLimit) Exceeded() bool { return l.exceeded }

func (l *RegularLimit) String() string { return "RegularLimit" }

// orLimit is the logical OR of two limits: exceeded once either is.
type orLimit struct {
	BaseMonitor
	a, b SearchLimit
}

// NewOrLimit returns a limit that is exceeded once a or b is, checking
// both at every call site.
func NewOrLimit(a, b SearchLimit) SearchLimit { return &orLimit{a: a, b: b} }

func (l *orLimit) EnterSearch(s *Solver)   { l.a.EnterSearch(s); l.b.EnterSearch(s) }
func (l *orLimit) ExitSearch(s *Solver)    { l.a.ExitSearch(s); l.b.ExitSearch(s) }
func (l *orLimit) RestartSearch(s *Solver) { l.a.RestartSearch(s); l.b.RestartSearch(s) }

func (l *orLimit) BeginNextDecision(s *Solver, db DecisionBuilder) DecisionModification {
	ra := l.a.BeginNextDecision(s, db)
	rb := l.b.BeginNextDecision(s, db)
	if ra == KillBoth || rb == KillBoth {
		return KillBoth
	}
	return NoChange
}

func (l *orLimit) PeriodicCheck(s *Solver) { l.a.PeriodicCheck(s); l.b.PeriodicCheck(s) }

func (l *orLimit) Exceeded() bool { return l.a.Exceeded() || l.b.Exceeded() }

func (l *orLimit) String() string { return "OrLimit(" + l.a.String() + ", " + l.b.String() + ")" }

// callbackLimit is exceeded once f returns true; f is re-evaluated at
// every BeginNextDecision/PeriodicCheck call.
type callbackLimit struct {
	BaseMonitor
	f        func(s *Solver) bool
	exceeded bool
}

// NewCallbackLimit returns a limit driven by an arbitrary predicate,
// letting model code express a cap the scalar forms above don't cover.
func NewCallbackLimit(f func(s *Solver) bool) SearchLimit {
	return &callbackLimit{f: f}
}

func (l *callbackLimit) check(s *Solver) {
	if l.f(s) {
		l.exceeded = true
	}
}

func (l *callbackLimit) BeginNextDecision(s *Solver, db DecisionBuilder) DecisionModification {
	l.check(s)
	if l.exceeded {
		return KillBoth
	}
	return NoChange
}

func (l *callbackLimit) PeriodicCheck(s *Solver) { l.check(s) }
func (l *callbackLimit) Exceeded() bool          { return l.exceeded }
func (l *callbackLimit) String() string          { return "CallbackLimit" }

// improvementRateLimit tracks the slope of objective improvements over a
// sliding window of accepted solutions and triggers once the per-
// solution improvement drops below a threshold derived from the
// average improvement seen during the initial warm-up phase.
type improvementRateLimit struct {
	BaseMonitor
	objective  *IntVar
	maximize   bool
	window     int
	minImprove float64

	history  []int
	warmupN  int
	baseline float64
	exceeded bool
}

// NewImprovementRateLimit returns a limit over objective that triggers
// once the average absolute improvement per solution across the last
// window solutions drops below minImproveFraction of the baseline
// improvement rate observed during the first window solutions.
func NewImprovementRateLimit(objective *IntVar, maximize bool, window int, minImproveFraction float64) SearchLimit {
	if window < 2 {
		window = 2
	}
	return &improvementRateLimit{objective: objective, maximize: maximize, window: window, minImprove: minImproveFraction}
}

func (l *improvementRateLimit) AtSolution(s *Solver) bool {
	val, ok := l.objective.Bound()
	if !ok {
		return true
	}
	l.history = append(l.history, val)
	if len(l.history) > l.window {
		l.history = l.history[len(l.history)-l.window:]
	}
	if len(l.history) < l.window {
		return true
	}
	rate := l.avgImprovement()
	if l.warmupN == 0 {
		l.baseline = rate
		l.warmupN = len(l.history)
		return true
	}
	if l.baseline != 0 && rate < l.minImprove*l.baseline {
		l.exceeded = true
	}
	return true
}

func (l *improvementRateLimit) avgImprovement() float64 {
	total := 0.0
	for i := 1; i < len(l.history); i++ {
		d := l.history[i] - l.history[i-1]
		if !l.maximize {
			d = -d
		}
		total += float64(d)
	}
	return total / float64(len(l.history)-1)
}

func (l *improvementRateLimit) BeginNextDecision(s *Solver, db DecisionBuilder) DecisionModification {
	if l.exceeded {
		return KillBoth
	}
	return NoChange
}

func (l *improvementRateLimit) Exceeded() bool { return l.exceeded }
func (l *improvementRateLimit) String() string { return "ImprovementRateLimit" }
