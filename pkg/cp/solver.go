package cp

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gitrdm/gocpsolver/internal/arena"
)

// SolverParameters configures a Solver at construction time, replacing the
// process-wide DEFINE_bool/DEFINE_int32 globals of the source with an
// explicit value passed into New — no package-level mutable state.
type SolverParameters struct {
	// Trace enables a SearchLog-equivalent monitor automatically attached
	// to every Solve/NewSearch call, nested searches included.
	Trace bool

	// Profile is carried with the other parameters; no monitor in this
	// package reads it, so setting it changes no behavior.
	Profile bool

	// RandomSeed seeds the solver's random source; -1 seeds from entropy.
	RandomSeed int64

	// NameAllVariables auto-names unnamed variables the first time they
	// are registered, instead of lazily formatting "v%d" on demand.
	NameAllVariables bool

	// PrintAddedConstraints logs every constraint at PostConstraint time.
	PrintAddedConstraints bool

	// DisableSolve builds the model but makes Solve/NewSearch a no-op
	// that reports no solutions, for exercising model construction in
	// isolation during tests.
	DisableSolve bool

	// Logger receives constraint/search tracing output. A zero value
	// falls back to a quiet (disabled) logger.
	Logger zerolog.Logger
}

// DefaultSolverParameters returns the zero-configuration parameter set:
// no tracing, no profiling, entropy-seeded randomness, manual naming.
func DefaultSolverParameters() *SolverParameters {
	return &SolverParameters{
		RandomSeed: -1,
		Logger:     zerolog.Nop(),
	}
}

// Solver is the single owner of every piece of mutable search state:
// the Trail, the propagation Queue, the variable registry, posted
// constraints, and the stack of active Search frames. A Solver is not
// safe for concurrent use from multiple goroutines; the
// decomposed NewSearch/NextSolution API instead runs one search
// goroutine that is never runnable concurrently with its caller.
type Solver struct {
	params *SolverParameters
	logger zerolog.Logger

	trail *Trail
	queue *Queue

	vars        []*IntVar
	constraints *arena.Arena[Constraint]

	searches []*Search

	branches  int64
	failures  int64
	solutions int64

	cumulativeBranches  int64
	cumulativeFailures  int64
	cumulativeSolutions int64

	rng *rand.Rand

	name string

	// modelFailed is set once a constraint posted outside any search
	// proves the model inconsistent at InitialPropagate time; every
	// later Solve/NewSearch short-circuits to "no solutions" instead of
	// exploring a tree rooted in a domain that is already empty.
	modelFailed bool
}

// ModelFailed reports whether a constraint posted outside any search has
// already proven the model inconsistent.
func (s *Solver) ModelFailed() bool { return s.modelFailed }

// NewSolver constructs a Solver named name with the given parameters (nil
// selects DefaultSolverParameters()).
func NewSolver(name string, params *SolverParameters) *Solver {
	if params == nil {
		params = DefaultSolverParameters()
	}
	seed := params.RandomSeed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	s := &Solver{
		params: params,
		logger: params.Logger,
		name:   name,
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.trail = NewTrail()
	s.queue = newQueue(s, s.trail)
	s.constraints = arena.New[Constraint]()
	return s
}

// Name returns the solver's name, used in trace output.
func (s *Solver) Name() string { return s.name }

// Trail returns the solver's reversible undo log.
func (s *Solver) Trail() *Trail { return s.trail }

// Rand returns the solver's seeded random source, shared by every
// ASSIGN_RANDOM_VALUE/CHOOSE_RANDOM selector and metaheuristic so a run
// is reproducible from RandomSeed alone.
func (s *Solver) Rand() *rand.Rand { return s.rng }

// Params returns the parameters the solver was constructed with.
func (s *Solver) Params() *SolverParameters { return s.params }

// Branches, Failures, Solutions return the running totals across every
// search frame ever run on this solver (the currently active frame's
// counters plus every completed frame's counters folded in by EndSearch).
func (s *Solver) Branches() int64  { return s.cumulativeBranches + s.branches }
func (s *Solver) Failures() int64  { return s.cumulativeFailures + s.failures }
func (s *Solver) Solutions() int64 { return s.cumulativeSolutions + s.solutions }

// registerVar assigns v the next arena index and, if NameAllVariables is
// set and v was created unnamed, stamps in its auto-name immediately
// rather than deferring to IntVar.Name()'s lazy formatting.
func (s *Solver) registerVar(v *IntVar) int {
	idx := len(s.vars)
	s.vars = append(s.vars, v)
	if s.params.NameAllVariables && v.name == "" {
		v.name = fmt.Sprintf("v%d", idx)
	}
	return idx
}

// Vars returns every variable registered on this solver, in creation
// order (their Index() values).
func (s *Solver) Vars() []*IntVar { return s.vars }

// Constraints returns every constraint currently live on this solver,
// in posting order. A constraint posted inside a search (e.g. a
// SymmetryBreaker's lazily-added clause) that was allocated since a
// choice point later undone will have already been dropped from this
// list by the time the trail unwinds past it.
func (s *Solver) Constraints() []Constraint { return s.constraints.All() }

// MakeIntVar creates a variable with the interval domain [min, max].
func (s *Solver) MakeIntVar(min, max int, name string) *IntVar {
	return newIntVar(s, BoundedDomain{min: min, max: max}, name)
}

// MakeIntVarFromValues creates a variable whose domain is exactly the
// given (not necessarily sorted or unique) set of values, backed by a
// SparseSetDomain.
func (s *Solver) MakeIntVarFromValues(values []int, name string) *IntVar {
	return newIntVar(s, NewSparseSetDomain(values), name)
}

// MakeBoolVar creates a 0/1 variable.
func (s *Solver) MakeBoolVar(name string) *IntVar {
	return s.MakeIntVar(0, 1, name)
}

// MakeIntConst creates a variable bound to a single value, used to lift
// plain constants into IntExpr-compatible positions.
func (s *Solver) MakeIntConst(value int, name string) *IntVar {
	if name == "" {
		name = fmt.Sprintf("%d", value)
	}
	return s.MakeIntVar(value, value, name)
}

func (s *Solver) String() string {
	return fmt.Sprintf("Solver(%s, vars=%d, constraints=%d)", s.name, len(s.vars), s.constraints.Len())
}
