package cp

// penaltyStore is the storage strategy for GuidedLocalSearch's
// per-(variable index, value) penalty counts: a dense (matrix-backed)
// or sparse (hash-backed) form.
type penaltyStore interface {
	get(varIdx, val int) int
	inc(varIdx, val int)
}

// densePenaltyStore backs penalties with a flat matrix, indexed by
// variable position (0..n-1) and value offset from a fixed per-variable
// minimum — appropriate when every variable's domain is small and
// bounded, trading memory for O(1) access with no hashing.
type densePenaltyStore struct {
	rows    [][]int
	offsets []int
}

func newDensePenaltyStore(vars []*IntVar) *densePenaltyStore {
	rows := make([][]int, len(vars))
	offsets := make([]int, len(vars))
	for i, v := range vars {
		offsets[i] = v.Min()
		rows[i] = make([]int, v.Max()-v.Min()+1)
	}
	return &densePenaltyStore{rows: rows, offsets: offsets}
}

func (d *densePenaltyStore) get(varIdx, val int) int {
	off := val - d.offsets[varIdx]
	if off < 0 || off >= len(d.rows[varIdx]) {
		return 0
	}
	return d.rows[varIdx][off]
}

func (d *densePenaltyStore) inc(varIdx, val int) {
	off := val - d.offsets[varIdx]
	if off < 0 || off >= len(d.rows[varIdx]) {
		return
	}
	d.rows[varIdx][off]++
}

// sparsePenaltyStore backs penalties with a hash map, appropriate when
// variable domains are large or sparse and most (var, value) pairs are
// never penalized.
type sparsePenaltyStore struct {
	counts map[[2]int]int
}

func newSparsePenaltyStore() *sparsePenaltyStore {
	return &sparsePenaltyStore{counts: make(map[[2]int]int)}
}

func (sp *sparsePenaltyStore) get(varIdx, val int) int { return sp.counts[[2]int{varIdx, val}] }
func (sp *sparsePenaltyStore) inc(varIdx, val int)     { sp.counts[[2]int{varIdx, val}]++ }

// GuidedLocalSearch is a metaheuristic monitor: it
// maintains a penalty count per (variable, value) pair and evaluates an
// augmented objective base_objective + lambda * sum(penalty(i,v) *
// baseCost(i,v)); on each local optimum it increments the penalty of
// whichever pair(s) maximize utility(i,v) = baseCost(i,v) / (1 +
// penalty(i,v)), steering the search away from features that recur in
// local optima without forbidding them outright.
type GuidedLocalSearch struct {
	BaseMonitor
	solver   *Solver
	vars     []*IntVar
	lambda   float64
	baseCost func(varIdx, val int) float64
	store    penaltyStore
}

// NewGuidedLocalSearch returns a monitor over vars with penalty weight
// lambda and per-feature base cost baseCost. useDense selects a
// densePenaltyStore (small bounded domains) over a sparsePenaltyStore.
func NewGuidedLocalSearch(s *Solver, vars []*IntVar, lambda float64, baseCost func(varIdx, val int) float64, useDense bool) *GuidedLocalSearch {
	var store penaltyStore
	if useDense {
		store = newDensePenaltyStore(vars)
	} else {
		store = newSparsePenaltyStore()
	}
	return &GuidedLocalSearch{solver: s, vars: vars, lambda: lambda, baseCost: baseCost, store: store}
}

// AugmentedCost returns base_objective + lambda * sum(penalty(i,v) *
// baseCost(i,v)) over the variables' currently bound values.
func (g *GuidedLocalSearch) AugmentedCost(baseObjective int) float64 {
	total := float64(baseObjective)
	for i, v := range g.vars {
		val, ok := v.Bound()
		if !ok {
			continue
		}
		p := g.store.get(i, val)
		if p > 0 {
			total += g.lambda * float64(p) * g.baseCost(i, val)
		}
	}
	return total
}

// LocalOptimum increments the penalty of the (variable, value) pair(s)
// maximizing utility = baseCost / (1 + penalty) among the currently
// bound values, and requests a restart (true) so the driver tries
// again under the updated penalty landscape.
func (g *GuidedLocalSearch) LocalOptimum(s *Solver) bool {
	bestUtil := -1.0
	var best [][2]int
	for i, v := range g.vars {
		val, ok := v.Bound()
		if !ok {
			continue
		}
		cost := g.baseCost(i, val)
		if cost <= 0 {
			continue
		}
		util := cost / float64(1+g.store.get(i, val))
		if util > bestUtil {
			bestUtil = util
			best = [][2]int{{i, val}}
		} else if util == bestUtil {
			best = append(best, [2]int{i, val})
		}
	}
	for _, p := range best {
		g.store.inc(p[0], p[1])
	}
	return true
}

func (g *GuidedLocalSearch) String() string { return "GuidedLocalSearch" }
