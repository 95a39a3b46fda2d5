package cp

import "fmt"

// IntExpr is an abstract integer quantity: something with
// bounds that can be queried and narrowed, and that can be materialized
// into a concrete IntVar via Var (installing a cast constraint the first
// time that happens). IntVar is itself an IntExpr whose Var() is a no-op.
type IntExpr interface {
	Min() int
	Max() int
	SetMin(m int)
	SetMax(m int)
	SetRange(lo, hi int)

	// Bound reports the expression's single remaining value and true if
	// it is currently bound, or (0, false) otherwise.
	Bound() (int, bool)

	// Var materializes the expression as an IntVar, creating one backed by
	// a CastConstraint the first time it is called and memoizing the
	// result thereafter.
	Var() *IntVar

	String() string
}

// IntVar is a reversible finite-domain variable: the solver-owned
// workhorse of the model. Its domain lives in a single
// RevValue cell so PushState/PopState restore it automatically; OldMin and
// OldMax are queue bookkeeping, stable for the duration of a demon run,
// updated only when the variable is dequeued for processing.
type IntVar struct {
	solver *Solver
	index  int
	name   string

	domain *RevValue[Domain]

	// oldMin/oldMax/oldDomain snapshot the variable's state as of the last
	// time it was processed by the queue; consumers use them to compute
	// which bound moved and which values were removed (hole iteration).
	oldMin, oldMax  int
	oldDomain       Domain
	snapshotStamp   int64

	whenBoundDemons  []*Demon
	whenRangeDemons  []*Demon
	whenDomainDemons []*Demon

	// presence is nil for a non-optional variable. When non-nil the
	// variable is "optional": mutators that would empty the domain force
	// presence false instead of failing, unless presence is already true.
	presence *RevBool

	castExpr IntExpr // set when this var was materialized from an expr
}

// newIntVar constructs an IntVar over dom, registered in the given
// solver's arena. Not exported: variables are always created through
// Solver factory methods (MakeIntVar, MakeBoolVar, ...).
func newIntVar(s *Solver, dom Domain, name string) *IntVar {
	v := &IntVar{
		solver:    s,
		name:      name,
		domain:    NewRevValue(dom),
		oldMin:    dom.Min(),
		oldMax:    dom.Max(),
		oldDomain: dom,
	}
	v.index = s.registerVar(v)
	return v
}

// Index returns the variable's arena index, stable for the variable's
// lifetime and used as the map key by selectors and collectors.
func (v *IntVar) Index() int { return v.index }

// Name returns the variable's name, auto-assigned by the solver if
// name_all_variables is set and the variable was created unnamed.
func (v *IntVar) Name() string {
	if v.name == "" {
		return fmt.Sprintf("v%d", v.index)
	}
	return v.name
}

func (v *IntVar) String() string { return fmt.Sprintf("%s%s", v.Name(), v.domain.Value()) }

// Min returns the domain's current minimum.
func (v *IntVar) Min() int { return v.domain.Value().Min() }

// Max returns the domain's current maximum.
func (v *IntVar) Max() int { return v.domain.Value().Max() }

// Size returns the number of values remaining in the domain.
func (v *IntVar) Size() int { return v.domain.Value().Size() }

// Bound reports whether the domain has narrowed to a single value.
func (v *IntVar) Bound() (int, bool) {
	d := v.domain.Value()
	if d.Min() == d.Max() {
		return d.Min(), true
	}
	return 0, false
}

// Value returns the variable's unique remaining value. Calling it on an
// unbound variable is a programming error, not a Fail.
func (v *IntVar) Value() int {
	val, ok := v.Bound()
	if !ok {
		invariantViolation("cp: Value() called on unbound variable %s", v.Name())
	}
	return val
}

// Contains reports whether val is currently in the domain.
func (v *IntVar) Contains(val int) bool { return v.domain.Value().Contains(val) }

// OldMin returns the minimum as of the last time this variable was
// dequeued for processing; stable for the duration of a demon run.
func (v *IntVar) OldMin() int { return v.oldMin }

// OldMax returns the maximum as of the last time this variable was
// dequeued for processing.
func (v *IntVar) OldMax() int { return v.oldMax }

// Var implements IntExpr: an IntVar is already materialized.
func (v *IntVar) Var() *IntVar { return v }

// isAbsent reports whether this is an optional variable that has already
// been forced absent.
func (v *IntVar) isAbsent() bool {
	return v.presence != nil && !v.presence.Value()
}

// MakeOptional attaches a presence literal to v. Once
// optional: mutators check presence first (a no-op if already false); a
// mutator that would otherwise fail forces presence false instead, unless
// presence is already known true, in which case it fails normally.
// Forcing absence is preferred over failing whenever the literal isn't
// already pinned, since it lets search explore "this variable simply
// isn't present" as a real branch instead of discarding it.
func (v *IntVar) MakeOptional() *RevBool {
	if v.presence == nil {
		v.presence = NewRevBool(true)
	}
	return v.presence
}

// Presence returns the variable's presence literal, or nil if it was never
// made optional.
func (v *IntVar) Presence() *RevBool { return v.presence }

// narrow is the single choke point every mutator funnels through: on the
// first change within a propagation batch (the queue's process stamp) it
// snapshots oldMin/oldMax/oldDomain, then installs the new domain (if
// changed) and schedules the appropriate demon classes.
func (v *IntVar) narrow(nd Domain, ok bool) {
	if v.isAbsent() {
		return
	}
	if !ok {
		if v.presence != nil && v.presence.Value() {
			// presence pinned true: an empty domain is a real
			// inconsistency for this branch.
			Fail()
		}
		if v.presence != nil {
			v.presence.Set(v.solver.trail, false)
			return
		}
		Fail()
	}
	old := v.domain.Value()
	if nd.Min() == old.Min() && nd.Max() == old.Max() && nd.Size() == old.Size() {
		return
	}
	if ps := v.solver.queue.processStamp; v.snapshotStamp != ps {
		v.oldMin, v.oldMax, v.oldDomain = old.Min(), old.Max(), old
		v.snapshotStamp = ps
	}
	wasBound := old.Min() == old.Max()
	v.domain.Set(v.solver.trail, nd)
	nowBound := nd.Min() == nd.Max()

	boundsChanged := nd.Min() != old.Min() || nd.Max() != old.Max()

	if nowBound && !wasBound {
		for _, d := range v.whenBoundDemons {
			v.solver.queue.Enqueue(d)
		}
	}
	if boundsChanged {
		for _, d := range v.whenRangeDemons {
			v.solver.queue.Enqueue(d)
		}
	}
	for _, d := range v.whenDomainDemons {
		v.solver.queue.Enqueue(d)
	}
}

// SetMin narrows the domain to [m, Max()], failing if that would empty it.
func (v *IntVar) SetMin(m int) {
	if v.isAbsent() || m <= v.Min() {
		return
	}
	nd, ok := v.domain.Value().SetMin(m)
	v.narrow(nd, ok)
}

// SetMax narrows the domain to [Min(), m], failing if that would empty it.
func (v *IntVar) SetMax(m int) {
	if v.isAbsent() || m >= v.Max() {
		return
	}
	nd, ok := v.domain.Value().SetMax(m)
	v.narrow(nd, ok)
}

// SetRange narrows the domain to [lo, hi].
func (v *IntVar) SetRange(lo, hi int) {
	v.SetMin(lo)
	if v.isAbsent() {
		return
	}
	v.SetMax(hi)
}

// SetValue narrows the domain to the single value val.
func (v *IntVar) SetValue(val int) {
	v.SetRange(val, val)
	if !v.isAbsent() {
		v.RemoveInterval(val+1, v.Max())
		// SetRange already pins [val,val] when val is in range; the extra
		// calls above are no-ops in that case and defensive otherwise.
	}
}

// RemoveValue removes val from the domain.
func (v *IntVar) RemoveValue(val int) {
	if v.isAbsent() {
		return
	}
	nd, ok := v.domain.Value().RemoveValue(val)
	v.narrow(nd, ok)
}

// RemoveInterval removes every value in [lo, hi] from the domain.
func (v *IntVar) RemoveInterval(lo, hi int) {
	if v.isAbsent() {
		return
	}
	nd, ok := v.domain.Value().RemoveInterval(lo, hi)
	v.narrow(nd, ok)
}

// RemoveValues removes every value in values from the domain.
func (v *IntVar) RemoveValues(values []int) {
	for _, val := range values {
		v.RemoveValue(val)
		if v.isAbsent() {
			return
		}
	}
}

// SetValues narrows the domain to exactly the given values (those not in
// values are removed).
func (v *IntVar) SetValues(values []int) {
	keep := make(map[int]bool, len(values))
	for _, val := range values {
		keep[val] = true
	}
	var toRemove []int
	v.domain.Value().Iterate(func(val int) {
		if !keep[val] {
			toRemove = append(toRemove, val)
		}
	})
	v.RemoveValues(toRemove)
}

// WhenBound registers d to run whenever v becomes bound.
func (v *IntVar) WhenBound(d *Demon) { v.whenBoundDemons = append(v.whenBoundDemons, d) }

// WhenRange registers d to run whenever v's min or max changes.
func (v *IntVar) WhenRange(d *Demon) { v.whenRangeDemons = append(v.whenRangeDemons, d) }

// WhenDomain registers d to run whenever any value is removed from v.
func (v *IntVar) WhenDomain(d *Demon) { v.whenDomainDemons = append(v.whenDomainDemons, d) }

// MakeHoleIterator calls f with every value removed from v's domain since
// it was last processed by the queue. If reversible is true the iteration
// state itself survives backtracking (meaningless here since it is
// computed freshly each call, but kept in the signature to match the
// contract of constraints that pass it through).
func (v *IntVar) MakeHoleIterator(reversible bool, f func(int)) {
	cur := v.domain.Value()
	v.oldDomain.Iterate(func(val int) {
		if !cur.Contains(val) {
			f(val)
		}
	})
}

// MakeDomainIterator calls f with every value currently in v's domain,
// ascending.
func (v *IntVar) MakeDomainIterator(reversible bool, f func(int)) {
	v.domain.Value().Iterate(f)
}

