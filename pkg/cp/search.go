package cp

// SearchState is the logical state machine behind a Search frame.
type SearchState int

const (
	OutsideSearch SearchState = iota
	InRootNode
	InSearch
	AtSolutionState
	NoMoreSolutionsState
	ProblemInfeasibleState
)

func (s SearchState) String() string {
	switch s {
	case OutsideSearch:
		return "OUTSIDE_SEARCH"
	case InRootNode:
		return "IN_ROOT_NODE"
	case InSearch:
		return "IN_SEARCH"
	case AtSolutionState:
		return "AT_SOLUTION"
	case NoMoreSolutionsState:
		return "NO_MORE_SOLUTIONS"
	case ProblemInfeasibleState:
		return "PROBLEM_INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// solutionMsg is sent from the search goroutine to NextSolution's caller
// in the decomposed NewSearch/NextSolution/EndSearch API; ok=false with
// done=true means the search is exhausted, the same "(results, more
// bool)" shape as a blocking stream's Take(n).
type solutionMsg struct {
	ok   bool
	done bool
}

// Search is a logical stack frame owned by a Solver: its own monitor list
// (insertion order preserved), decision builder, counters, and
// restart/resume plumbing. Solver keeps a stack of
// these so nested searches (SolveOnce, NestedOptimize) each get their own
// frame; TopLevelSearch and ActiveSearch read the bottom and top.
type Search struct {
	solver   *Solver
	db       DecisionBuilder
	monitors []SearchMonitor
	state    SearchState

	branches  int64
	failures  int64
	solutions int64
	neighbors int64

	entryStamp int64 // trail stamp at EnterSearch, the restart target

	// resume/request channels driving the decomposed NextSolution API.
	resultCh chan solutionMsg
	resumeCh chan struct{}
	started  bool
	stopped  bool
}

// TopLevelSearch returns the outermost Search frame, or nil if no search
// is active.
func (s *Solver) TopLevelSearch() *Search {
	if len(s.searches) == 0 {
		return nil
	}
	return s.searches[0]
}

// ActiveSearch returns the innermost (currently running) Search frame, or
// nil if no search is active.
func (s *Solver) ActiveSearch() *Search {
	if len(s.searches) == 0 {
		return nil
	}
	return s.searches[len(s.searches)-1]
}

// State returns this search frame's current state.
func (sr *Search) State() SearchState { return sr.state }

// Branches, Failures, Solutions, Neighbors return this frame's counters.
func (sr *Search) Branches() int64  { return sr.branches }
func (sr *Search) Failures() int64  { return sr.failures }
func (sr *Search) Solutions() int64 { return sr.solutions }
func (sr *Search) Neighbors() int64 { return sr.neighbors }

func (sr *Search) forEachMonitor(f func(SearchMonitor)) {
	for _, m := range sr.monitors {
		f(m)
	}
}

// Solve prepares a search, runs NewSearch, repeatedly calls NextSolution
// until it returns false or a monitor requests termination, and returns
// true iff at least one solution was accepted.
func (s *Solver) Solve(db DecisionBuilder, monitors ...SearchMonitor) bool {
	sr := s.NewSearch(db, monitors...)
	defer s.EndSearch()
	found := false
	for sr.NextSolution() {
		found = true
	}
	return found
}

// NewSearch pushes a fresh Search frame and emits EnterSearch. If the
// solver's parameters have Trace set, a plain SearchLog (no objective,
// no periodic line) is appended to monitors automatically, so every
// Solve/NewSearch call, nested ones included, picks up tracing without
// the caller having to construct one.
//
// If a constraint posted outside any search has already proven the
// model inconsistent (ModelFailed), or the parameters have DisableSolve
// set, the frame is returned already exhausted: NextSolution reports
// done immediately, without entering the search goroutine or running a
// single decision.
func (s *Solver) NewSearch(db DecisionBuilder, monitors ...SearchMonitor) *Search {
	if s.params.Trace {
		monitors = append(monitors, NewSearchLog(s, nil, 0))
	}
	sr := &Search{
		solver:   s,
		db:       db,
		monitors: monitors,
		state:    OutsideSearch,
		resultCh: make(chan solutionMsg),
		resumeCh: make(chan struct{}),
	}
	s.searches = append(s.searches, sr)
	sr.forEachMonitor(func(m SearchMonitor) { m.EnterSearch(s) })
	sr.entryStamp = s.trail.CurrentStamp()
	s.trail.PushState(SentinelMarker, nil)
	if s.modelFailed || s.params.DisableSolve {
		s.trail.PopState() // undo the sentinel above: nothing will ever explore this frame
		sr.state = NoMoreSolutionsState
		sr.started = true
		sr.stopped = true
		return sr
	}
	sr.forEachMonitor(func(m SearchMonitor) { m.BeginInitialPropagation(s) })
	sr.forEachMonitor(func(m SearchMonitor) { m.EndInitialPropagation(s) })
	sr.state = InSearch
	return sr
}

// EndSearch pops the sentinel pushed by NewSearch, unwinding every
// decision taken, and removes the frame from the solver's search stack.
func (s *Solver) EndSearch() {
	sr := s.ActiveSearch()
	if sr == nil {
		return
	}
	if !s.modelFailed && !s.params.DisableSolve {
		for s.trail.Depth() > 0 {
			kind, _ := s.trail.PopState()
			if kind == SentinelMarker {
				break
			}
		}
	}
	sr.forEachMonitor(func(m SearchMonitor) { m.ExitSearch(s) })
	s.searches = s.searches[:len(s.searches)-1]
	if len(s.searches) == 0 {
		s.cumulativeBranches += s.branches
		s.cumulativeFailures += s.failures
		s.cumulativeSolutions += s.solutions
		s.branches, s.failures, s.solutions = 0, 0, 0
	}
}

// NextSolution drives the search goroutine to (and past) the next
// accepted solution, lazily starting it on the first call. It returns
// false when the search is exhausted or a monitor vetoed continuation.
func (sr *Search) NextSolution() bool {
	if sr.stopped {
		return false
	}
	if !sr.started {
		sr.started = true
		go sr.run()
	} else {
		sr.resumeCh <- struct{}{}
	}
	msg := <-sr.resultCh
	if msg.done {
		sr.stopped = true
		return false
	}
	return msg.ok
}

// run is the search goroutine body: a plain recursive depth-first walk
// that, at each accepted solution, blocks on resultCh/resumeCh so the
// caller controls pacing one solution at a time. This is a Put/Take
// rendezvous between two goroutines rather than real parallelism —
// exactly one of {run, NextSolution} is ever runnable at a time, so
// the cooperative single-threaded scheduling
// model holds even though a goroutine is used as the control-flow
// vehicle.
func (sr *Search) run() {
	s := sr.solver
	defer func() {
		if r := recover(); r != nil {
			if !isFail(r) {
				panic(r)
			}
		}
		sr.forEachMonitor(func(m SearchMonitor) { m.NoMoreSolutions(s) })
		sr.state = NoMoreSolutionsState
		sr.resultCh <- solutionMsg{done: true}
	}()
	sr.dfs()
}

// dfs implements the main next-solution loop as a single recursive
// function: ask the decision builder, apply or refute,
// backtrack on failure, and pause at every accepted solution.
func (sr *Search) dfs() {
	s := sr.solver
	sr.forEachMonitor(func(m SearchMonitor) { m.PeriodicCheck(s) })
	mod := NoChange
	sr.forEachMonitor(func(m SearchMonitor) {
		if r := m.BeginNextDecision(s, sr.db); r != NoChange {
			mod = r
		}
	})
	if mod == KillBoth || sr.stopped {
		Fail()
	}

	d, ok := sr.db.Next(s)
	sr.forEachMonitor(func(m SearchMonitor) { m.EndNextDecision(s, sr.db, d) })

	if !ok {
		sr.acceptAndPause()
		// The search resumes (after the caller asks for the next
		// solution) as if this leaf had failed, so the parent frame
		// backtracks to explore the remainder of the tree.
		Fail()
	}

	s.trail.PushState(ChoicePointMarker, d)
	sr.branches++
	s.branches++

	applied := sr.applyDecision(d, mod)
	sr.forEachMonitor(func(m SearchMonitor) { m.AfterDecision(s, d, applied) })
	if applied {
		sr.recurse(d)
		return
	}
	sr.backtrackAndRefute(d)
}

// recurse explores the subtree below an applied left branch. dfs never
// returns normally (every path ends in a panic), so a failure anywhere
// below this point would otherwise unwind straight past every
// intervening choice point; recover here converts it into a refute of
// exactly this decision, restoring one-level-at-a-time backtracking.
func (sr *Search) recurse(d Decision) {
	defer func() {
		if r := recover(); r != nil {
			if !isFail(r) {
				panic(r)
			}
			sr.backtrackAndRefute(d)
		}
	}()
	sr.dfs()
}

// recurse2 explores the subtree below a refuted right branch. A failure
// there has no further alternative at this level: pop the choice point,
// count the failure, and propagate upward to the parent's own recurse/
// recurse2 (or run's top-level recover at the root).
func (sr *Search) recurse2(d Decision) {
	s := sr.solver
	defer func() {
		if r := recover(); r != nil {
			if !isFail(r) {
				panic(r)
			}
			s.trail.PopState()
			sr.failures++
			s.failures++
			Fail()
		}
	}()
	sr.dfs()
}

// applyDecision runs the left branch, honoring a KEEP_RIGHT/SWITCH_BRANCHES
// modification by skipping straight to the right branch, and returns
// whether the left branch survived propagation.
func (sr *Search) applyDecision(d Decision, mod DecisionModification) (applied bool) {
	s := sr.solver
	if mod == KeepRight {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			if !isFail(r) {
				panic(r)
			}
			applied = false
		}
	}()
	sr.forEachMonitor(func(m SearchMonitor) { m.ApplyDecision(s, d) })
	s.queue.Freeze()
	defer s.queue.Unfreeze()
	d.Apply(s)
	return true
}

// backtrackAndRefute undoes the failed left branch (popping back to just
// before the choice point) and tries the right branch under a fresh
// sentinel, recursing back into dfs on success or propagating the failure
// upward otherwise.
func (sr *Search) backtrackAndRefute(d Decision) {
	s := sr.solver
	sr.forEachMonitor(func(m SearchMonitor) { m.BeginFail(s) })
	s.trail.PopState() // undo the failed Apply
	sr.failures++
	s.failures++
	sr.forEachMonitor(func(m SearchMonitor) { m.EndFail(s) })

	s.trail.PushState(ChoicePointMarker, d)
	refuted := func() (ok bool) {
		defer func() {
			if r := recover(); r != nil {
				if !isFail(r) {
					panic(r)
				}
				ok = false
			}
		}()
		sr.forEachMonitor(func(m SearchMonitor) { m.RefuteDecision(s, d) })
		s.queue.Freeze()
		defer s.queue.Unfreeze()
		d.Refute(s)
		return true
	}()
	sr.forEachMonitor(func(m SearchMonitor) { m.AfterDecision(s, d, refuted) })
	if refuted {
		sr.recurse2(d)
		return
	}
	s.trail.PopState()
	sr.failures++
	s.failures++
	Fail()
}

// acceptAndPause runs the AcceptSolution/AtSolution protocol and, if the
// solution is accepted, blocks until the caller asks for the next one.
func (sr *Search) acceptAndPause() {
	s := sr.solver
	accepted := true
	sr.forEachMonitor(func(m SearchMonitor) {
		if !m.AcceptSolution(s) {
			accepted = false
		}
	})
	if !accepted {
		return
	}
	sr.solutions++
	s.solutions++
	sr.state = AtSolutionState

	keepGoing := true
	sr.forEachMonitor(func(m SearchMonitor) {
		if !m.AtSolution(s) {
			keepGoing = false
		}
	})

	sr.resultCh <- solutionMsg{ok: true}
	<-sr.resumeCh
	sr.state = InSearch
	if !keepGoing {
		// A monitor asked to stop after this solution; treat the
		// resumed call as "no more solutions" rather than continuing
		// the depth-first walk.
		sr.stopped = true
		Fail()
	}
}

// solveAndCommit runs db in a nested Search frame until that search is
// exhausted and reports whether any solution was accepted; used by nested
// decision builders (SolveOnce, NestedOptimize). The nested search
// backtracks past every solution it finds, so no solution remains
// imposed on the outer solver when it returns.
func (s *Solver) solveAndCommit(db DecisionBuilder, monitors []SearchMonitor) bool {
	sr := s.NewSearch(db, monitors...)
	found := false
	for sr.NextSolution() {
		found = true
	}
	sr.stopped = true // suppress EndSearch's full unwind
	sr.forEachMonitor(func(m SearchMonitor) { m.ExitSearch(s) })
	s.searches = s.searches[:len(s.searches)-1]
	return found
}

// CheckAssignment imposes assignment on a fresh subtree and runs
// propagation, returning whether the result is consistent. The subtree is
// always unwound before returning, leaving the solver's state untouched.
func (s *Solver) CheckAssignment(a *Assignment) (consistent bool) {
	s.trail.PushState(SimpleMarker, nil)
	defer func() {
		if r := recover(); r != nil {
			if !isFail(r) {
				panic(r)
			}
			consistent = false
		}
		s.trail.PopState()
	}()
	s.queue.Freeze()
	defer s.queue.Unfreeze()
	a.Restore(s)
	return true
}

// RestartCurrentSearch unwinds to the active search's entry sentinel and
// re-enters it, honoring a restart monitor's request. Cumulative
// counters (Solver.branches/failures/solutions) are untouched; this
// frame's own counters are reset — cumulative counters preserve across
// restarts, per-search counters reset.
func (s *Solver) RestartCurrentSearch() {
	sr := s.ActiveSearch()
	if sr == nil {
		return
	}
	for s.trail.CurrentStamp() > sr.entryStamp {
		kind, _ := s.trail.PopState()
		if kind == SentinelMarker {
			break
		}
	}
	sr.branches, sr.failures, sr.solutions, sr.neighbors = 0, 0, 0, 0
	s.trail.PushState(SentinelMarker, nil)
	sr.forEachMonitor(func(m SearchMonitor) { m.RestartSearch(s) })
}

// FinishCurrentSearch requests cooperative termination by marking the
// active frame stopped. Called from a monitor while the search runs, the
// next decision boundary (dfs, after PeriodicCheck and BeginNextDecision)
// fails and the search unwinds; called between NextSolution calls, the
// next NextSolution returns false without resuming the search. The limits
// in limits.go do not call it; they stop a search by returning KillBoth
// from BeginNextDecision.
func (s *Solver) FinishCurrentSearch() {
	if sr := s.ActiveSearch(); sr != nil {
		sr.stopped = true
	}
}
