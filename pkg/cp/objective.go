package cp

import "fmt"

// OptimizeVar is a bound-tightening monitor: after
// each accepted solution it records the objective's value and, on the
// next AtSolution pass, imposes a stricter bound (SetMin/SetMax by step)
// so the remainder of the search only explores strictly improving
// solutions. AcceptSolution vetoes any candidate that does not strictly
// improve over the best found so far.
type OptimizeVar struct {
	BaseMonitor
	objective *IntVar
	maximize  bool
	step      int

	found     bool
	bestValue int
}

// NewOptimizeVar returns a monitor that, attached to a Solve/NewSearch
// call, drives objective toward its maximum (if maximize) or minimum
// (otherwise) in increments of at least step.
func NewOptimizeVar(s *Solver, maximize bool, objective *IntVar, step int) *OptimizeVar {
	if step <= 0 {
		step = 1
	}
	return &OptimizeVar{objective: objective, maximize: maximize, step: step}
}

// Best returns the best objective value found so far and whether any
// solution has been accepted yet.
func (o *OptimizeVar) Best() (int, bool) { return o.bestValue, o.found }

// AcceptSolution vetoes a candidate solution whose objective value does
// not strictly improve on the best found so far (the bound applied in
// AtSolution should already make this unreachable in a well-behaved
// search, but a model that reads the objective before it is bound can
// still propose a non-improving candidate).
func (o *OptimizeVar) AcceptSolution(s *Solver) bool {
	val, ok := o.objective.Bound()
	if !ok {
		return true
	}
	if !o.found {
		return true
	}
	if o.maximize {
		return val > o.bestValue
	}
	return val < o.bestValue
}

// AtSolution records the new best and tightens the objective's bound by
// step so the search only explores strictly better solutions from here.
// Tightening happens here rather than in ApplyDecision/RefuteDecision so
// the bound takes effect once the accepted solution has been reported to
// the caller (and possibly collected) but before the driver resumes.
func (o *OptimizeVar) AtSolution(s *Solver) bool {
	val, ok := o.objective.Bound()
	if !ok {
		invariantViolation("cp: OptimizeVar's objective %s is unbound at a solution", o.objective.Name())
	}
	o.found = true
	o.bestValue = val
	if o.maximize {
		o.objective.SetMin(val + o.step)
	} else {
		o.objective.SetMax(val - o.step)
	}
	return true
}

func (o *OptimizeVar) String() string {
	dir := "minimize"
	if o.maximize {
		dir = "maximize"
	}
	return fmt.Sprintf("OptimizeVar(%s %s, step=%d)", dir, o.objective.Name(), o.step)
}
