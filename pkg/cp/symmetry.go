package cp

// SymmetryBreaker collects the guard literal of the left branch taken
// under each choice point it is attached to; on a refutation of that
// choice point, it posts "conjunction of collected left-branch guards
// implies NOT the symmetrical decision" as a lazily-added constraint.
// A guard is itself a Decision: its Apply is the
// actual model decision, and clause() derives the symmetrical negation
// from it.
type SymmetryBreaker struct {
	BaseMonitor
	solver *Solver
	clause func(d Decision) (symmetrical Decision, ok bool)

	guards []Decision
}

// NewSymmetryBreaker returns a monitor that calls clause for every
// decision taken; clause returns the decision's symmetrical counterpart
// and true if one applies to d, or (nil, false) if d has no known
// symmetry.
func NewSymmetryBreaker(s *Solver, clause func(d Decision) (Decision, bool)) *SymmetryBreaker {
	return &SymmetryBreaker{solver: s, clause: clause}
}

func (b *SymmetryBreaker) ApplyDecision(s *Solver, d Decision) {
	b.guards = append(b.guards, d)
}

// RefuteDecision posts the symmetry-breaking clause for d, if clause
// recognizes it, as a lazily-added constraint guarded by every
// still-standing left-branch guard collected so far: exploring the
// symmetrical decision again under the same prefix is therefore
// redundant and the constraint prunes it without changing the set of
// solutions found.
func (b *SymmetryBreaker) RefuteDecision(s *Solver, d Decision) {
	if len(b.guards) > 0 {
		b.guards = b.guards[:len(b.guards)-1]
	}
	sym, ok := b.clause(d)
	if !ok {
		return
	}
	guardsSnapshot := append([]Decision(nil), b.guards...)
	s.PostConstraint(newSymmetryClause(guardsSnapshot, sym))
}

func (b *SymmetryBreaker) String() string { return "SymmetryBreaker" }

// symmetryClause is the lazily-posted constraint a SymmetryBreaker
// installs: it is posted while its guard prefix holds, so InitialPropagate
// applies sym's Refute at once. Post registers no demons, so the guards
// are not watched after that.
type symmetryClause struct {
	guards []Decision
	sym    Decision
}

func newSymmetryClause(guards []Decision, sym Decision) *symmetryClause {
	return &symmetryClause{guards: guards, sym: sym}
}

func (c *symmetryClause) Post(s *Solver) {}

func (c *symmetryClause) InitialPropagate(s *Solver) {
	// The guard prefix that produced this clause already holds (it was
	// the actual search path up to the refutation), so the symmetrical
	// alternative can be pruned immediately: forcing its refutation is
	// exactly "this branch is redundant with one already explored".
	c.sym.Refute(s)
}

func (c *symmetryClause) Accept(v ModelVisitor) { v.VisitConstraint("SymmetryClause", c) }

func (c *symmetryClause) String() string { return "SymmetryClause(" + c.sym.String() + ")" }

// SymmetryManager owns a set of SymmetryBreakers, attaching each to the
// same search and delegating ApplyDecision/RefuteDecision to all of
// them, as one aggregate monitor alongside SymmetryBreaker.
type SymmetryManager struct {
	BaseMonitor
	breakers []*SymmetryBreaker
}

// NewSymmetryManager returns a manager over the given breakers.
func NewSymmetryManager(breakers ...*SymmetryBreaker) *SymmetryManager {
	return &SymmetryManager{breakers: breakers}
}

func (m *SymmetryManager) ApplyDecision(s *Solver, d Decision) {
	for _, b := range m.breakers {
		b.ApplyDecision(s, d)
	}
}

func (m *SymmetryManager) RefuteDecision(s *Solver, d Decision) {
	for _, b := range m.breakers {
		b.RefuteDecision(s, d)
	}
}

func (m *SymmetryManager) String() string { return "SymmetryManager" }
