package cp

import "math"

// SimulatedAnnealing is a metaheuristic monitor: on
// each local optimum it samples an acceptance energy under a Cauchy
// cooling schedule T(k) = T0/k and relaxes the objective bound by that
// energy, so the next accepted solution may be worse by up to E before
// the search gives up — annealing the willingness to accept a
// non-improving move down to zero as k grows. The search is considered
// finished once T(k) <= 0, at which point Finished reports true.
type SimulatedAnnealing struct {
	BaseMonitor
	solver    *Solver
	objective *IntVar
	maximize  bool
	t0        float64

	k        int
	finished bool
}

// NewSimulatedAnnealing returns a monitor over objective with initial
// temperature t0.
func NewSimulatedAnnealing(s *Solver, objective *IntVar, maximize bool, t0 float64) *SimulatedAnnealing {
	return &SimulatedAnnealing{solver: s, objective: objective, maximize: maximize, t0: t0}
}

func (sa *SimulatedAnnealing) EnterSearch(s *Solver) { sa.k = 0; sa.finished = false }

// AtSolution advances the schedule and relaxes the objective bound by
// the sampled energy, letting the next accepted solution be up to E
// worse than the current one.
func (sa *SimulatedAnnealing) AtSolution(s *Solver) bool {
	sa.k++
	temp := sa.t0 / float64(sa.k)
	if temp <= 0 {
		sa.finished = true
		return true
	}
	u := sa.solver.Rand().Float64()
	if u <= 0 {
		u = 1e-12
	}
	e := temp * math.Log2(u) // negative: u in (0,1]
	delta := int(math.Round(-e))
	val, ok := sa.objective.Bound()
	if !ok {
		return true
	}
	if sa.maximize {
		sa.objective.SetMin(val - delta)
	} else {
		sa.objective.SetMax(val + delta)
	}
	return true
}

// Finished reports whether the cooling schedule has reached T(k) <= 0.
func (sa *SimulatedAnnealing) Finished() bool { return sa.finished }

func (sa *SimulatedAnnealing) String() string { return "SimulatedAnnealing" }
