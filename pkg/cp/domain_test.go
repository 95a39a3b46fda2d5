package cp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains Iterate into a slice for comparison via go-cmp.
func collect(d Domain) []int {
	var out []int
	d.Iterate(func(v int) { out = append(out, v) })
	return out
}

func TestBoundedDomainSetMinMax(t *testing.T) {
	d := NewBoundedDomain(0, 10)

	nd, ok := d.SetMin(3)
	require.True(t, ok)
	assert.Equal(t, 3, nd.Min())
	assert.Equal(t, 10, nd.Max())

	nd2, ok := nd.SetMax(7)
	require.True(t, ok)
	assert.Equal(t, 3, nd2.Min())
	assert.Equal(t, 7, nd2.Max())
}

func TestBoundedDomainSetMinBeyondMaxEmpties(t *testing.T) {
	d := NewBoundedDomain(0, 10)
	_, ok := d.SetMin(11)
	assert.False(t, ok)
}

func TestBoundedDomainRemoveInteriorValuePromotesToBitset(t *testing.T) {
	d := NewBoundedDomain(0, 10)
	nd, ok := d.RemoveValue(5)
	require.True(t, ok)
	assert.False(t, nd.Contains(5), "an interior removal must promote to a hole-capable domain")
	assert.Equal(t, 0, nd.Min())
	assert.Equal(t, 10, nd.Max())
	assert.Equal(t, 10, nd.Size())
}

func TestBoundedDomainRemoveInteriorIntervalPromotesToBitset(t *testing.T) {
	d := NewBoundedDomain(0, 20)
	nd, ok := d.RemoveInterval(8, 12)
	require.True(t, ok)
	for v := 8; v <= 12; v++ {
		assert.False(t, nd.Contains(v))
	}
	assert.Equal(t, 0, nd.Min())
	assert.Equal(t, 20, nd.Max())
	assert.Equal(t, 16, nd.Size())
}

func TestBoundedDomainRemoveBoundaryValueNarrows(t *testing.T) {
	d := NewBoundedDomain(0, 10)
	nd, ok := d.RemoveValue(0)
	require.True(t, ok)
	assert.Equal(t, 1, nd.Min())

	nd2, ok := nd.RemoveValue(10)
	require.True(t, ok)
	assert.Equal(t, 9, nd2.Max())
}

func TestBitsetDomainRemoveInteriorValueProducesTrueHole(t *testing.T) {
	d := NewBitsetDomain(0, 5)
	nd, ok := d.RemoveValue(2)
	require.True(t, ok)
	assert.False(t, nd.Contains(2))
	assert.Equal(t, 5, nd.Size())
	assert.Equal(t, 0, nd.Min())
	assert.Equal(t, 5, nd.Max())
}

func TestBitsetDomainRemoveValueDoesNotMutateReceiver(t *testing.T) {
	d := NewBitsetDomain(0, 5)
	_, _ = d.RemoveValue(2)
	assert.True(t, d.Contains(2), "RemoveValue must return a new Domain, not mutate d")
}

func TestBitsetDomainRecomputeBoundsAfterBoundaryRemoval(t *testing.T) {
	d := NewBitsetDomain(0, 5)
	nd, ok := d.RemoveValue(0)
	require.True(t, ok)
	assert.Equal(t, 1, nd.Min())

	nd2, ok := nd.RemoveInterval(1, 2)
	require.True(t, ok)
	assert.Equal(t, 3, nd2.Min())
}

func TestBitsetDomainEmptiesWhenLastValueRemoved(t *testing.T) {
	d := NewBitsetDomain(4, 4)
	_, ok := d.RemoveValue(4)
	assert.False(t, ok)
}

func TestSparseSetDomainDedupsAndSorts(t *testing.T) {
	d := NewSparseSetDomain([]int{5, 1, 3, 1, 5})
	if diff := cmp.Diff([]int{1, 3, 5}, collect(d)); diff != "" {
		t.Errorf("unexpected domain contents (-want +got):\n%s", diff)
	}
}

func TestSparseSetDomainRemoveValue(t *testing.T) {
	d := NewSparseSetDomain([]int{1, 3, 5})
	nd, ok := d.RemoveValue(3)
	require.True(t, ok)
	assert.False(t, nd.Contains(3))
	assert.Equal(t, 2, nd.Size())
}

func TestSparseSetDomainSetMinSetMax(t *testing.T) {
	d := NewSparseSetDomain([]int{1, 2, 3, 4, 5})
	nd, ok := d.SetMin(3)
	require.True(t, ok)
	if diff := cmp.Diff([]int{3, 4, 5}, collect(nd)); diff != "" {
		t.Errorf("unexpected domain contents (-want +got):\n%s", diff)
	}

	nd2, ok := nd.SetMax(4)
	require.True(t, ok)
	if diff := cmp.Diff([]int{3, 4}, collect(nd2)); diff != "" {
		t.Errorf("unexpected domain contents (-want +got):\n%s", diff)
	}
}

func TestSparseSetDomainEmptyValueListPanics(t *testing.T) {
	assert.Panics(t, func() { NewSparseSetDomain(nil) })
}

func TestNewBoundedDomainPanicsOnEmptyRange(t *testing.T) {
	assert.Panics(t, func() { NewBoundedDomain(5, 3) })
}
