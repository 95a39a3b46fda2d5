package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevIntSetAndRestore(t *testing.T) {
	trail := NewTrail()
	cell := NewRevInt(1)

	trail.PushState(SimpleMarker, nil)
	cell.Set(trail, 2)
	assert.Equal(t, 2, cell.Value())

	cell.Set(trail, 3)
	assert.Equal(t, 3, cell.Value())

	kind, _ := trail.PopState()
	assert.Equal(t, SimpleMarker, kind)
	assert.Equal(t, 1, cell.Value())
}

func TestRevIntStampCoalescesWritesWithinOneMarker(t *testing.T) {
	trail := NewTrail()
	cell := NewRevInt(0)

	trail.PushState(SimpleMarker, nil)
	for i := 1; i <= 5; i++ {
		cell.Set(trail, i)
	}
	assert.Len(t, trail.ints, 1, "five writes under one marker should log exactly one restore entry")

	trail.PopState()
	assert.Equal(t, 0, cell.Value())
}

func TestTrailNestedMarkersRestoreInLIFOOrder(t *testing.T) {
	trail := NewTrail()
	cell := NewRevInt(0)

	trail.PushState(SimpleMarker, nil)
	cell.Set(trail, 1)

	trail.PushState(SimpleMarker, nil)
	cell.Set(trail, 2)

	trail.PushState(SimpleMarker, nil)
	cell.Set(trail, 3)
	assert.Equal(t, 3, cell.Value())

	trail.PopState()
	assert.Equal(t, 2, cell.Value())

	trail.PopState()
	assert.Equal(t, 1, cell.Value())

	trail.PopState()
	assert.Equal(t, 0, cell.Value())
}

func TestTrailChoicePointMarkerCarriesDecision(t *testing.T) {
	trail := NewTrail()
	d := &assignVarDecision{val: 7}

	trail.PushState(ChoicePointMarker, d)
	kind, got := trail.PopState()

	assert.Equal(t, ChoicePointMarker, kind)
	assert.Same(t, d, got)
}

func TestTrailPopStateOnEmptyTrailPanics(t *testing.T) {
	trail := NewTrail()
	assert.Panics(t, func() { trail.PopState() })
}

func TestTrailFailStampIncrementsOnEveryPop(t *testing.T) {
	trail := NewTrail()
	require.EqualValues(t, 0, trail.FailStamp())

	trail.PushState(SimpleMarker, nil)
	trail.PushState(SimpleMarker, nil)
	trail.PopState()
	assert.EqualValues(t, 1, trail.FailStamp())
	trail.PopState()
	assert.EqualValues(t, 2, trail.FailStamp())
}

func TestTrailBacktrackActionOrdering(t *testing.T) {
	trail := NewTrail()
	var order []string

	trail.PushState(SimpleMarker, nil)
	trail.AddBacktrackAction(func() { order = append(order, "slow") }, false)
	trail.AddBacktrackAction(func() { order = append(order, "fast") }, true)
	trail.PopState()

	assert.Equal(t, []string{"slow", "fast"}, order)
}

func TestRevValueGenericCellRestoresArbitraryPayload(t *testing.T) {
	trail := NewTrail()
	cell := NewRevValue[Domain](BoundedDomain{min: 0, max: 9})

	trail.PushState(SimpleMarker, nil)
	nd, ok := cell.Value().SetMin(3)
	require.True(t, ok)
	cell.Set(trail, nd)
	assert.Equal(t, 3, cell.Value().Min())

	trail.PopState()
	assert.Equal(t, 0, cell.Value().Min())
}

func TestRevIntArrayTracksDistinctIndicesIndependently(t *testing.T) {
	trail := NewTrail()
	arr := NewRevIntArray(3)

	trail.PushState(SimpleMarker, nil)
	arr.Set(trail, 0, 10)
	arr.Set(trail, 1, 20)
	assert.Equal(t, 10, arr.Get(0))
	assert.Equal(t, 20, arr.Get(1))
	assert.Equal(t, 0, arr.Get(2))

	trail.PopState()
	assert.Equal(t, 0, arr.Get(0))
	assert.Equal(t, 0, arr.Get(1))
}
