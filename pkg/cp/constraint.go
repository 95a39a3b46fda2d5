package cp

// Constraint is the interface every model-level or system-created (cast)
// constraint implements: Post registers demons on the
// variables it touches, InitialPropagate seeds the queue the first time,
// and Accept lets a ModelVisitor walk the model (tracing, pretty-printing).
type Constraint interface {
	// Post creates demons and attaches them to the variables' event lists.
	Post(s *Solver)

	// InitialPropagate performs the first fixpoint-seeding pass; called
	// once, outside of any demon, right after Post.
	InitialPropagate(s *Solver)

	// Accept visits this constraint with v, for tracing/pretty-printing.
	Accept(v ModelVisitor)

	String() string
}

// ModelVisitor is the visitor interface from the source's visitor.h,
// letting the print_added_constraints tracing path and a pretty-printer
// walk expressions and constraints uniformly without either depending on
// the other's concrete types.
type ModelVisitor interface {
	VisitIntegerExpression(typeName string, expr IntExpr)
	VisitIntegerArgument(name string, value int)
	VisitIntegerArrayArgument(name string, values []int)
	VisitIntegerVariableArrayArgument(name string, vars []*IntVar)
	VisitConstraint(typeName string, c Constraint)
}

// PostConstraint posts c: calls Post to register its demons, then runs
// InitialPropagate once inside a single frozen/unfrozen queue batch so any
// demons the propagation schedules on other already-posted constraints
// drain before PostConstraint returns. If print_added_constraints is set,
// the constraint is logged first.
//
// c's arena slot is allocated reversibly (tied to the active search's
// current choice point) if a search is running, or permanently if
// posted at model-build time before any Solve/NewSearch call — solver-
// owned objects are destructed when the solver is destructed or a
// backtrack passes over the point at which they were allocated.
//
// A Fail raised by InitialPropagate while a search is active is left to
// propagate: PostConstraint is only ever called mid-search from within
// Decision.Apply/Refute or an ApplyDecision/RefuteDecision monitor hook
// (SymmetryBreaker), and Search's applyDecision/backtrackAndRefute
// already wrap those calls in a recover that converts the Fail into a
// refuted branch. Posted OUTSIDE any search, though, there is no such
// enclosing recover — mirroring the source's OUTSIDE_SEARCH handling of
// AddConstraint, a Fail there is caught here and the solver is marked
// permanently inconsistent instead of crashing the caller; every
// subsequent Solve/NewSearch reports no solutions without exploring
// anything.
func (s *Solver) PostConstraint(c Constraint) {
	if s.params.PrintAddedConstraints {
		s.logger.Info().Str("constraint", c.String()).Msg("constraint added")
	}
	inSearch := s.ActiveSearch() != nil
	if inSearch {
		s.constraints.Alloc(s.trail, c)
	} else {
		s.constraints.AllocPermanent(c)
	}
	c.Post(s)

	if !inSearch {
		s.propagateOutsideSearch(c)
		return
	}
	s.queue.Freeze()
	defer s.queue.Unfreeze()
	c.InitialPropagate(s)
}

// propagateOutsideSearch runs c's InitialPropagate with no active search
// frame to catch its Fail, converting an inconsistency discovered at
// model-build time into a sticky ModelFailed flag rather than an
// uncaught panic.
func (s *Solver) propagateOutsideSearch(c Constraint) {
	defer func() {
		if r := recover(); r != nil {
			if !isFail(r) {
				panic(r)
			}
			s.modelFailed = true
		}
	}()
	s.queue.Freeze()
	defer s.queue.Unfreeze()
	c.InitialPropagate(s)
}
