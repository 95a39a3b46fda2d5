package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notEqual is a minimal pairwise-inequality constraint, used here instead
// of importing the bundled example constraints so pkg/cp's own tests have
// no dependency outside the standard library and testify/go-cmp.
type notEqual struct {
	a, b *IntVar
}

func (c *notEqual) Post(s *Solver) {
	d := NewDemon("not-equal", NormalPriority, func(*Solver) { c.propagate() })
	c.a.WhenBound(d)
	c.b.WhenBound(d)
}

func (c *notEqual) propagate() {
	if val, ok := c.a.Bound(); ok {
		c.b.RemoveValue(val)
	}
	if val, ok := c.b.Bound(); ok {
		c.a.RemoveValue(val)
	}
}

func (c *notEqual) InitialPropagate(s *Solver) { c.propagate() }
func (c *notEqual) Accept(v ModelVisitor)      { v.VisitConstraint("NotEqual", c) }
func (c *notEqual) String() string             { return c.a.Name() + " != " + c.b.Name() }

func TestSolveFindsFirstSolutionSatisfyingConstraint(t *testing.T) {
	s := NewSolver("test", nil)
	a := s.MakeIntVar(0, 1, "a")
	b := s.MakeIntVar(0, 1, "b")
	s.PostConstraint(&notEqual{a: a, b: b})

	db := Phase(s, []*IntVar{a, b}, ChooseFirstUnbound, AssignMinValue)
	collector := NewFirstSolutionCollector(s, []*IntVar{a, b})

	found := s.Solve(db, collector)
	require.True(t, found)
	require.Equal(t, 1, collector.SolutionCount())

	sol := collector.SolutionAt(0)
	assert.NotEqual(t, sol.Value(a), sol.Value(b))
}

func TestSolveAllSolutionsCountsEveryAssignment(t *testing.T) {
	s := NewSolver("test", nil)
	a := s.MakeIntVar(0, 2, "a")
	b := s.MakeIntVar(0, 2, "b")
	s.PostConstraint(&notEqual{a: a, b: b})

	db := Phase(s, []*IntVar{a, b}, ChooseFirstUnbound, AssignMinValue)
	collector := NewAllSolutionCollector(s, []*IntVar{a, b})

	s.Solve(db, collector)

	// 3 choices for a, 2 remaining choices for b given a != b.
	assert.Equal(t, 6, collector.SolutionCount())
}

func TestSolveUnsatisfiableModelFindsNoSolution(t *testing.T) {
	s := NewSolver("test", nil)
	a := s.MakeIntVar(0, 0, "a")
	b := s.MakeIntVar(0, 0, "b")
	s.PostConstraint(&notEqual{a: a, b: b})

	db := Phase(s, []*IntVar{a, b}, ChooseFirstUnbound, AssignMinValue)
	collector := NewFirstSolutionCollector(s, []*IntVar{a, b})

	found := s.Solve(db, collector)
	assert.False(t, found)
	assert.Equal(t, 0, collector.SolutionCount())
}

func TestSolveWithOptimizeVarMinimizesObjective(t *testing.T) {
	s := NewSolver("test", nil)
	a := s.MakeIntVar(0, 5, "a")
	b := s.MakeIntVar(0, 5, "b")
	s.PostConstraint(&notEqual{a: a, b: b})
	sum := s.NewSum(a, b).Var()

	db := Phase(s, []*IntVar{a, b}, ChooseFirstUnbound, AssignMinValue)
	opt := NewOptimizeVar(s, false, sum, 1)
	collector := NewBestValueCollector(s, sum, false)

	s.Solve(db, opt, collector)

	best, ok := opt.Best()
	require.True(t, ok)
	assert.Equal(t, 1, best, "minimal a+b with a != b and both >= 0 is 0+1=1")

	bestSol := collector.Solution()
	require.NotNil(t, bestSol)
	assert.Equal(t, 1, bestSol.Value(sum))
}

func TestNewSearchNextSolutionDecomposedAPI(t *testing.T) {
	s := NewSolver("test", nil)
	a := s.MakeIntVar(0, 1, "a")
	b := s.MakeIntVar(0, 1, "b")
	s.PostConstraint(&notEqual{a: a, b: b})

	db := Phase(s, []*IntVar{a, b}, ChooseFirstUnbound, AssignMinValue)
	sr := s.NewSearch(db)

	count := 0
	for sr.NextSolution() {
		count++
		av, aok := a.Bound()
		bv, bok := b.Bound()
		require.True(t, aok)
		require.True(t, bok)
		assert.NotEqual(t, av, bv)
	}
	s.EndSearch()

	assert.Equal(t, 2, count)
}

func TestCheckAssignmentReportsConsistency(t *testing.T) {
	s := NewSolver("test", nil)
	a := s.MakeIntVar(0, 1, "a")
	b := s.MakeIntVar(0, 1, "b")
	s.PostConstraint(&notEqual{a: a, b: b})

	good := NewAssignment(s)
	good.AddAll([]*IntVar{a, b})
	good.Add(a)
	good.Store()

	consistent := s.CheckAssignment(good)
	assert.True(t, consistent)
}
