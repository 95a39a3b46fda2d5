package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTrail is the minimal Trail implementation needed to drive Alloc's
// backtrack action in isolation from pkg/cp.
type fakeTrail struct {
	actions []func()
}

func (t *fakeTrail) AddBacktrackAction(fn func(), fast bool) {
	t.actions = append(t.actions, fn)
}

func (t *fakeTrail) pop() {
	for i := len(t.actions) - 1; i >= 0; i-- {
		t.actions[i]()
	}
	t.actions = nil
}

func TestArenaAllocPermanentSurvivesBacktrack(t *testing.T) {
	a := New[string]()
	trail := &fakeTrail{}

	idx := a.AllocPermanent("kept")
	trail.pop() // nothing registered for a permanent alloc

	assert.Equal(t, "kept", a.Get(idx))
	assert.Equal(t, 1, a.Len())
}

func TestArenaAllocIsTruncatedOnBacktrack(t *testing.T) {
	a := New[string]()
	trail := &fakeTrail{}

	a.Alloc(trail, "first")
	require.Equal(t, 1, a.Len())

	a.Alloc(trail, "second")
	require.Equal(t, 2, a.Len())

	trail.pop()
	assert.Equal(t, 0, a.Len(), "backtracking past both allocations truncates the arena back to empty")
}

func TestArenaAllocPartialBacktrackKeepsEarlierEntries(t *testing.T) {
	a := New[string]()
	outer := &fakeTrail{}
	a.Alloc(outer, "permanent-ish")

	inner := &fakeTrail{}
	a.Alloc(inner, "scoped")
	require.Equal(t, 2, a.Len())

	inner.pop()
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, "permanent-ish", a.Get(0))
}

func TestArenaAllReflectsCurrentLiveEntries(t *testing.T) {
	a := New[int]()
	a.AllocPermanent(1)
	a.AllocPermanent(2)
	a.AllocPermanent(3)

	assert.Equal(t, []int{1, 2, 3}, a.All())
}
