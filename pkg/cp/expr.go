package cp

import "fmt"

// baseExpr is embedded by every non-variable IntExpr; it provides the
// shared castVar memoization — a var() method that materializes an
// IntVar, installing a cast constraint the first time it is called —
// so individual expression types only need to implement
// Min/Max/SetMin/SetMax/Bound.
type baseExpr struct {
	solver *Solver
	cast   *IntVar
}

func (e *baseExpr) materialize(self IntExpr) *IntVar {
	if e.cast != nil {
		return e.cast
	}
	lo, hi := self.Min(), self.Max()
	cv := newIntVar(e.solver, NewBoundedDomain(lo, hi), "")
	cv.castExpr = self
	e.cast = cv
	e.solver.postCastConstraint(self, cv)
	return cv
}

// CastConstraint maintains equality between an expression and the IntVar
// materialized from it via Var(): rather than letting the cast happen
// invisibly, it is posted like any other constraint so it shows up in
// tracing and participates in the normal demon/queue machinery.
type CastConstraint struct {
	expr   IntExpr
	target *IntVar
}

// NewCastConstraint builds (but does not post) a constraint keeping
// target equal to expr.
func NewCastConstraint(expr IntExpr, target *IntVar) *CastConstraint {
	return &CastConstraint{expr: expr, target: target}
}

func (c *CastConstraint) Post(s *Solver) {
	propagate := func() {
		c.expr.SetMin(c.target.Min())
		c.expr.SetMax(c.target.Max())
		c.target.SetMin(c.expr.Min())
		c.target.SetMax(c.expr.Max())
	}
	d := NewDemon("cast", NormalPriority, func(*Solver) { propagate() })
	c.target.WhenRange(d)
	if src, ok := c.expr.(*IntVar); ok {
		src.WhenRange(d)
	}
}

func (c *CastConstraint) InitialPropagate(s *Solver) {
	c.expr.SetMin(c.target.Min())
	c.expr.SetMax(c.target.Max())
	c.target.SetMin(c.expr.Min())
	c.target.SetMax(c.expr.Max())
}

func (c *CastConstraint) Accept(v ModelVisitor) {
	v.VisitConstraint("CastConstraint", c)
}

func (c *CastConstraint) String() string {
	return fmt.Sprintf("Cast(%s == %s)", c.expr, c.target)
}

// postCastConstraint is called by baseExpr.materialize; kept on Solver so
// expr.go doesn't need to know about Solver's constraint bookkeeping.
func (s *Solver) postCastConstraint(expr IntExpr, target *IntVar) {
	cc := NewCastConstraint(expr, target)
	s.PostConstraint(cc)
}

// ---------------------------------------------------------------------
// Concrete expression variants. Kept as a small closed set of the most
// common shapes (sum, difference, scaled, abs, min, max, element); anything
// else is built by the user directly against the IntExpr interface.
// ---------------------------------------------------------------------

// SumExpr is the IntExpr for a + b.
type SumExpr struct {
	baseExpr
	a, b IntExpr
}

// NewSum builds the expression a + b.
func (s *Solver) NewSum(a, b IntExpr) *SumExpr {
	return &SumExpr{baseExpr: baseExpr{solver: s}, a: a, b: b}
}

func (e *SumExpr) Min() int { return e.a.Min() + e.b.Min() }
func (e *SumExpr) Max() int { return e.a.Max() + e.b.Max() }
func (e *SumExpr) Bound() (int, bool) {
	av, aok := e.a.Bound()
	bv, bok := e.b.Bound()
	if aok && bok {
		return av + bv, true
	}
	return 0, false
}
func (e *SumExpr) SetMin(m int) { e.a.SetMin(m - e.b.Max()); e.b.SetMin(m - e.a.Max()) }
func (e *SumExpr) SetMax(m int) { e.a.SetMax(m - e.b.Min()); e.b.SetMax(m - e.a.Min()) }
func (e *SumExpr) SetRange(lo, hi int) { e.SetMin(lo); e.SetMax(hi) }
func (e *SumExpr) Var() *IntVar        { return e.materialize(e) }
func (e *SumExpr) String() string      { return fmt.Sprintf("(%s + %s)", e.a, e.b) }

// DiffExpr is the IntExpr for a - b.
type DiffExpr struct {
	baseExpr
	a, b IntExpr
}

// NewDiff builds the expression a - b.
func (s *Solver) NewDiff(a, b IntExpr) *DiffExpr {
	return &DiffExpr{baseExpr: baseExpr{solver: s}, a: a, b: b}
}

func (e *DiffExpr) Min() int { return e.a.Min() - e.b.Max() }
func (e *DiffExpr) Max() int { return e.a.Max() - e.b.Min() }
func (e *DiffExpr) Bound() (int, bool) {
	av, aok := e.a.Bound()
	bv, bok := e.b.Bound()
	if aok && bok {
		return av - bv, true
	}
	return 0, false
}
func (e *DiffExpr) SetMin(m int) { e.a.SetMin(m + e.b.Min()); e.b.SetMax(e.a.Max() - m) }
func (e *DiffExpr) SetMax(m int) { e.a.SetMax(m + e.b.Max()); e.b.SetMin(e.a.Min() - m) }
func (e *DiffExpr) SetRange(lo, hi int) { e.SetMin(lo); e.SetMax(hi) }
func (e *DiffExpr) Var() *IntVar        { return e.materialize(e) }
func (e *DiffExpr) String() string      { return fmt.Sprintf("(%s - %s)", e.a, e.b) }

// ScaledExpr is the IntExpr for coeff * a (coeff > 0).
type ScaledExpr struct {
	baseExpr
	a     IntExpr
	coeff int
}

// NewScaled builds the expression coeff*a. Panics if coeff <= 0; a
// negative or zero coefficient is a modeling error the caller should catch
// before building the expression (the source rewrites coeff<0 as
// -coeff*(-a), which this module's small expression set does not carry a
// negation node for).
func (s *Solver) NewScaled(a IntExpr, coeff int) *ScaledExpr {
	if coeff <= 0 {
		invariantViolation("cp: NewScaled: coeff must be positive, got %d", coeff)
	}
	return &ScaledExpr{baseExpr: baseExpr{solver: s}, a: a, coeff: coeff}
}

func (e *ScaledExpr) Min() int { return e.a.Min() * e.coeff }
func (e *ScaledExpr) Max() int { return e.a.Max() * e.coeff }
func (e *ScaledExpr) Bound() (int, bool) {
	v, ok := e.a.Bound()
	return v * e.coeff, ok
}
func (e *ScaledExpr) SetMin(m int) { e.a.SetMin(ceilDiv(m, e.coeff)) }
func (e *ScaledExpr) SetMax(m int) { e.a.SetMax(floorDiv(m, e.coeff)) }
func (e *ScaledExpr) SetRange(lo, hi int) { e.SetMin(lo); e.SetMax(hi) }
func (e *ScaledExpr) Var() *IntVar        { return e.materialize(e) }
func (e *ScaledExpr) String() string      { return fmt.Sprintf("(%d * %s)", e.coeff, e.a) }

func ceilDiv(a, b int) int {
	if a >= 0 {
		return (a + b - 1) / b
	}
	return -((-a) / b)
}

func floorDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return -((-a + b - 1) / b)
}

// AbsExpr is the IntExpr for |a|.
type AbsExpr struct {
	baseExpr
	a IntExpr
}

// NewAbs builds the expression |a|.
func (s *Solver) NewAbs(a IntExpr) *AbsExpr {
	return &AbsExpr{baseExpr: baseExpr{solver: s}, a: a}
}

func (e *AbsExpr) Min() int {
	if e.a.Min() > 0 {
		return e.a.Min()
	}
	if e.a.Max() < 0 {
		return -e.a.Max()
	}
	return 0
}
func (e *AbsExpr) Max() int {
	am, aM := e.a.Min(), e.a.Max()
	if -am > aM {
		return -am
	}
	return aM
}
func (e *AbsExpr) Bound() (int, bool) {
	v, ok := e.a.Bound()
	if v < 0 {
		v = -v
	}
	return v, ok
}
func (e *AbsExpr) SetMin(m int) {
	if m <= 0 {
		return
	}
	if e.a.Min() >= 0 {
		e.a.SetMin(m)
	} else if e.a.Max() <= 0 {
		e.a.SetMax(-m)
	}
}
func (e *AbsExpr) SetMax(m int) { e.a.SetRange(-m, m) }
func (e *AbsExpr) SetRange(lo, hi int) { e.SetMin(lo); e.SetMax(hi) }
func (e *AbsExpr) Var() *IntVar        { return e.materialize(e) }
func (e *AbsExpr) String() string      { return fmt.Sprintf("|%s|", e.a) }

// MinExpr is the IntExpr for min(a, b).
type MinExpr struct {
	baseExpr
	a, b IntExpr
}

func (s *Solver) NewMin(a, b IntExpr) *MinExpr {
	return &MinExpr{baseExpr: baseExpr{solver: s}, a: a, b: b}
}

func (e *MinExpr) Min() int { return minOf(e.a.Min(), e.b.Min()) }
func (e *MinExpr) Max() int { return minOf(e.a.Max(), e.b.Max()) }
func (e *MinExpr) Bound() (int, bool) {
	av, aok := e.a.Bound()
	bv, bok := e.b.Bound()
	if aok && bok {
		return minOf(av, bv), true
	}
	return 0, false
}
func (e *MinExpr) SetMin(m int) { e.a.SetMin(m); e.b.SetMin(m) }
func (e *MinExpr) SetMax(m int) {
	if e.a.Min() > m {
		e.b.SetMax(m)
	} else if e.b.Min() > m {
		e.a.SetMax(m)
	}
}
func (e *MinExpr) SetRange(lo, hi int) { e.SetMin(lo); e.SetMax(hi) }
func (e *MinExpr) Var() *IntVar        { return e.materialize(e) }
func (e *MinExpr) String() string      { return fmt.Sprintf("min(%s, %s)", e.a, e.b) }

// MaxExpr is the IntExpr for max(a, b).
type MaxExpr struct {
	baseExpr
	a, b IntExpr
}

func (s *Solver) NewMax(a, b IntExpr) *MaxExpr {
	return &MaxExpr{baseExpr: baseExpr{solver: s}, a: a, b: b}
}

func (e *MaxExpr) Min() int { return maxOf(e.a.Min(), e.b.Min()) }
func (e *MaxExpr) Max() int { return maxOf(e.a.Max(), e.b.Max()) }
func (e *MaxExpr) Bound() (int, bool) {
	av, aok := e.a.Bound()
	bv, bok := e.b.Bound()
	if aok && bok {
		return maxOf(av, bv), true
	}
	return 0, false
}
func (e *MaxExpr) SetMax(m int) { e.a.SetMax(m); e.b.SetMax(m) }
func (e *MaxExpr) SetMin(m int) {
	if e.a.Max() < m {
		e.b.SetMin(m)
	} else if e.b.Max() < m {
		e.a.SetMin(m)
	}
}
func (e *MaxExpr) SetRange(lo, hi int) { e.SetMin(lo); e.SetMax(hi) }
func (e *MaxExpr) Var() *IntVar        { return e.materialize(e) }
func (e *MaxExpr) String() string      { return fmt.Sprintf("max(%s, %s)", e.a, e.b) }

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ElementExpr is the IntExpr for values[index], where values is a fixed
// slice of ints and index is an IntExpr over [0, len(values)-1]. Bounds
// are derived by scanning the reachable sub-slice; SetMin/SetMax filter
// index to only the positions whose value satisfies the new bound, which
// is bounds-consistent (not fully arc-consistent) filtering, the level
// kept in scope for the core; the stronger domain-consistent version
// is left to an external "element" constraint.
type ElementExpr struct {
	baseExpr
	values []int
	index  *IntVar
}

func (s *Solver) NewElement(values []int, index *IntVar) *ElementExpr {
	return &ElementExpr{baseExpr: baseExpr{solver: s}, values: append([]int(nil), values...), index: index}
}

func (e *ElementExpr) reachableRange() (int, int) {
	lo, hi := e.index.Min(), e.index.Max()
	if lo < 0 {
		lo = 0
	}
	if hi > len(e.values)-1 {
		hi = len(e.values) - 1
	}
	min, max := e.values[lo], e.values[lo]
	for i := lo; i <= hi; i++ {
		if e.values[i] < min {
			min = e.values[i]
		}
		if e.values[i] > max {
			max = e.values[i]
		}
	}
	return min, max
}

func (e *ElementExpr) Min() int { lo, _ := e.reachableRange(); return lo }
func (e *ElementExpr) Max() int { _, hi := e.reachableRange(); return hi }
func (e *ElementExpr) Bound() (int, bool) {
	iv, ok := e.index.Bound()
	if !ok {
		return 0, false
	}
	return e.values[iv], true
}
func (e *ElementExpr) SetMin(m int) {
	lo, hi := e.index.Min(), e.index.Max()
	for i := lo; i <= hi; i++ {
		if i >= 0 && i < len(e.values) && e.values[i] < m && e.index.Contains(i) {
			e.index.RemoveValue(i)
		}
	}
}
func (e *ElementExpr) SetMax(m int) {
	lo, hi := e.index.Min(), e.index.Max()
	for i := lo; i <= hi; i++ {
		if i >= 0 && i < len(e.values) && e.values[i] > m && e.index.Contains(i) {
			e.index.RemoveValue(i)
		}
	}
}
func (e *ElementExpr) SetRange(lo, hi int) { e.SetMin(lo); e.SetMax(hi) }
func (e *ElementExpr) Var() *IntVar        { return e.materialize(e) }
func (e *ElementExpr) String() string      { return fmt.Sprintf("element(values, %s)", e.index) }
