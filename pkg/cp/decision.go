package cp

import "fmt"

// Decision is a two-branch choice point: Apply commits to the left branch,
// Refute commits to the right branch (or undoes whatever Apply assumed).
// Both may Fail.
type Decision interface {
	Apply(s *Solver)
	Refute(s *Solver)
	String() string
}

// DecisionBuilder produces the next Decision given the current solver
// state; returning (nil, false) signals that the subtree rooted here is a
// solution candidate.
type DecisionBuilder interface {
	Next(s *Solver) (Decision, bool)
	String() string
}

// assignVarDecision is the canonical Decision: Apply sets var to val,
// Refute removes val from var's domain (so the next pass picks a
// different value for the same variable, the classic "KEEP_LEFT/Apply
// then KEEP_RIGHT/Refute" binary-choice shape).
type assignVarDecision struct {
	v   *IntVar
	val int
}

func (d *assignVarDecision) Apply(s *Solver)  { d.v.SetValue(d.val) }
func (d *assignVarDecision) Refute(s *Solver) { d.v.RemoveValue(d.val) }
func (d *assignVarDecision) String() string {
	return fmt.Sprintf("[%s == %d]", d.v.Name(), d.val)
}

// splitVarDecision restricts the domain to the lower (Apply) or upper
// (Refute) half around a midpoint, for the SPLIT_LOWER_HALF/
// SPLIT_UPPER_HALF value strategies.
type splitVarDecision struct {
	v   *IntVar
	mid int
}

func (d *splitVarDecision) Apply(s *Solver)  { d.v.SetMax(d.mid) }
func (d *splitVarDecision) Refute(s *Solver) { d.v.SetMin(d.mid + 1) }
func (d *splitVarDecision) String() string {
	return fmt.Sprintf("[%s <= %d or %s >= %d]", d.v.Name(), d.mid, d.v.Name(), d.mid+1)
}

// composeBuilder is the DecisionBuilder produced by Compose: each leaf of
// dbs[i] (a nil-decision i.e. "this sub-builder is exhausted") feeds into
// dbs[i+1].
type composeBuilder struct {
	dbs []DecisionBuilder
}

// Compose sequences decision builders: db[0] is asked for decisions until
// it returns no more, then db[1], and so on.
func Compose(dbs ...DecisionBuilder) DecisionBuilder {
	return &composeBuilder{dbs: dbs}
}

func (c *composeBuilder) Next(s *Solver) (Decision, bool) {
	for _, db := range c.dbs {
		if d, ok := db.Next(s); ok {
			return d, true
		}
	}
	return nil, false
}

func (c *composeBuilder) String() string { return "Compose(...)" }

// tryBuilder is the DecisionBuilder produced by Try: explore dbs[0] to
// exhaustion before falling back to dbs[1], etc. Unlike Compose (which
// offers one decision per Next call across all sub-builders in the same
// search), Try is meant for alternative *complete* strategies tried one
// after another at the top level; it is implemented identically to
// Compose here since both reduce to "ask the first one that still has a
// decision" under the depth-first driver — the distinction is purely
// documentation of intent for model authors.
type tryBuilder struct {
	dbs []DecisionBuilder
}

func Try(dbs ...DecisionBuilder) DecisionBuilder {
	return &tryBuilder{dbs: dbs}
}

func (t *tryBuilder) Next(s *Solver) (Decision, bool) {
	for _, db := range t.dbs {
		if d, ok := db.Next(s); ok {
			return d, true
		}
	}
	return nil, false
}

func (t *tryBuilder) String() string { return "Try(...)" }

// solveOnceDecision is the single Decision produced by solveOnceBuilder's
// Next, after the nested search has already run there: applying it fails
// if that search accepted no solution and does nothing otherwise;
// refuting it fails (there is no right branch to a collapsed nested
// search).
type solveOnceDecision struct {
	ok bool
}

func (d *solveOnceDecision) Apply(s *Solver) {
	if !d.ok {
		Fail()
	}
}
func (d *solveOnceDecision) Refute(s *Solver) { Fail() }
func (d *solveOnceDecision) String() string   { return "[SolveOnce]" }

// solveOnceBuilder collapses a nested search to a single decision: its
// Next runs db in a fresh Search frame (see solveAndCommit) and records
// whether any solution was accepted. The nested search runs until it is
// exhausted, so no solution it found remains imposed on the outer solver.
type solveOnceBuilder struct {
	db       DecisionBuilder
	monitors []SearchMonitor
	found    bool
}

// SolveOnce returns a DecisionBuilder that, the first time it is asked for
// a decision, runs a nested Solve(db, monitors) and then always returns
// "no more decisions" (nil, false) — the nested search itself is the only
// decision this builder ever produces.
func SolveOnce(db DecisionBuilder, monitors ...SearchMonitor) DecisionBuilder {
	return &solveOnceBuilder{db: db, monitors: monitors}
}

func (b *solveOnceBuilder) Next(s *Solver) (Decision, bool) {
	if b.found {
		return nil, false
	}
	b.found = true
	ok := s.solveAndCommit(b.db, b.monitors)
	return &solveOnceDecision{ok: ok}, true
}

func (b *solveOnceBuilder) String() string { return "SolveOnce(...)" }

// nestedOptimizeBuilder collapses a nested optimization (one nested
// search with an OptimizeVar and a best-value collector on the
// objective) to a single decision that imposes the best assignment found.
type nestedOptimizeBuilder struct {
	db         DecisionBuilder
	assignment *Assignment
	maximize   bool
	step       int
	monitors   []SearchMonitor
	found      bool
}

// NestedOptimize returns a DecisionBuilder that runs db to exhaustion
// inside a nested search, collecting the best solution found with respect
// to assignment's designated objective variable (maximize or minimize by
// step increments), then imposes that best assignment on the outer
// solver as a single decision.
func NestedOptimize(db DecisionBuilder, assignment *Assignment, maximize bool, step int, monitors ...SearchMonitor) DecisionBuilder {
	return &nestedOptimizeBuilder{db: db, assignment: assignment, maximize: maximize, step: step, monitors: monitors}
}

func (b *nestedOptimizeBuilder) Next(s *Solver) (Decision, bool) {
	if b.found {
		return nil, false
	}
	b.found = true
	obj := NewOptimizeVar(s, b.maximize, b.assignment.Objective(), b.step)
	monitors := append(append([]SearchMonitor{}, b.monitors...), obj)
	collector := NewBestValueCollector(s, b.assignment.Objective(), b.maximize)
	monitors = append(monitors, collector)
	ok := s.solveAndCommit(b.db, monitors)
	if ok {
		if best := collector.Solution(); best != nil {
			best.Restore(s)
		}
	}
	return &solveOnceDecision{ok: ok}, true
}

func (b *nestedOptimizeBuilder) String() string { return "NestedOptimize(...)" }
