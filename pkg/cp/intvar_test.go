package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoverFail(t *testing.T, f func()) (failed bool) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			require.True(t, isFail(r), "expected a Fail signal, got %v", r)
			failed = true
		}
	}()
	f()
	return false
}

func TestIntVarSetMinMaxNarrows(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(0, 10, "v")

	v.SetMin(3)
	assert.Equal(t, 3, v.Min())

	v.SetMax(7)
	assert.Equal(t, 7, v.Max())
}

func TestIntVarSetValueBinds(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(0, 10, "v")

	v.SetValue(4)
	val, ok := v.Bound()
	require.True(t, ok)
	assert.Equal(t, 4, val)
}

func TestIntVarRemoveLastValueEmptiesDomainFails(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(5, 5, "v")

	failed := recoverFail(t, func() { v.RemoveValue(5) })
	assert.True(t, failed, "removing the only remaining value must Fail")
}

func TestIntVarSetMinBeyondMaxFails(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(0, 5, "v")

	failed := recoverFail(t, func() { v.SetMin(6) })
	assert.True(t, failed)
}

func TestIntVarWhenBoundDemonFiresOnlyOnceBecomingBound(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(0, 10, "v")

	runs := 0
	d := NewDemon("bound-watcher", NormalPriority, func(*Solver) { runs++ })
	v.WhenBound(d)

	// Demon dispatch only drains on Unfreeze, the same batching the search
	// driver and PostConstraint use around a mutation.
	s.queue.Freeze()
	v.SetMin(5) // still unbound: [5,10]
	s.queue.Unfreeze()
	assert.Equal(t, 0, runs)

	s.queue.Freeze()
	v.SetValue(5) // now bound
	s.queue.Unfreeze()
	assert.Equal(t, 1, runs)
}

func TestIntVarWhenRangeDemonFiresOnBoundsChange(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(0, 10, "v")

	runs := 0
	d := NewDemon("range-watcher", NormalPriority, func(*Solver) { runs++ })
	v.WhenRange(d)

	s.queue.Freeze()
	v.SetMin(2)
	s.queue.Unfreeze()
	assert.Equal(t, 1, runs)

	s.queue.Freeze()
	v.SetMax(8)
	s.queue.Unfreeze()
	assert.Equal(t, 2, runs)
}

func TestIntVarOptionalForcesAbsentInsteadOfFailing(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(5, 5, "v")
	presence := v.MakeOptional()
	require.True(t, presence.Value())

	v.RemoveValue(5) // would empty the domain, but presence isn't pinned true

	assert.False(t, presence.Value(), "an optional variable forced empty should become absent rather than Fail")
}

func TestIntVarOptionalPinnedPresentStillFails(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(5, 5, "v")
	presence := v.MakeOptional()
	presence.Set(s.Trail(), true)

	failed := recoverFail(t, func() { v.RemoveValue(5) })
	assert.True(t, failed, "once presence is pinned true, emptying the domain must Fail normally")
}

func TestIntVarValueOnUnboundPanicsWithInvariantViolation(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVar(0, 10, "v")

	assert.PanicsWithError(t, "cp: Value() called on unbound variable v", func() {
		v.Value()
	})
}

func TestIntVarMakeHoleIteratorReportsRemovedValues(t *testing.T) {
	s := NewSolver("test", nil)
	v := s.MakeIntVarFromValues([]int{1, 2, 3, 4, 5}, "v")

	v.RemoveValue(3)

	var holes []int
	v.MakeHoleIterator(false, func(val int) { holes = append(holes, val) })
	assert.Contains(t, holes, 3)
}
