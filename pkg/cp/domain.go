package cp

import (
	"fmt"
	"math/bits"
	"sort"
)

// Domain is the interface implemented by every finite-domain value
// representation (bounded interval, bitset, sparse value list).
// Domains are immutable values: every
// mutator returns a new Domain rather than mutating the receiver, so an
// IntVar can hold its domain in a single reversible cell (RevValue[Domain])
// and get trailed restoration for free.
//
// A domain is never empty after a successful mutation; mutators that would
// produce an empty domain return ok=false and the receiver is unchanged.
type Domain interface {
	Min() int
	Max() int
	Size() int
	Contains(v int) bool
	IsEmpty() bool

	// RemoveValue removes a single value, returning the narrowed domain and
	// whether the domain is still non-empty.
	RemoveValue(v int) (Domain, bool)

	// RemoveInterval removes every value in [lo, hi].
	RemoveInterval(lo, hi int) (Domain, bool)

	// SetMin narrows the domain to [m, Max()].
	SetMin(m int) (Domain, bool)

	// SetMax narrows the domain to [Min(), m].
	SetMax(m int) (Domain, bool)

	// Iterate calls f with every value currently in the domain, ascending.
	Iterate(f func(int))

	String() string
}

// ---------------------------------------------------------------------
// BoundedDomain: interval-only representation. It stays an interval as
// long as every removal touches a boundary (SetMin/SetMax/RemoveValue/
// RemoveInterval at min or max); a removal that would carve an interior
// hole promotes the result to a BitsetDomain over the same range instead
// of silently dropping the narrowing.
// ---------------------------------------------------------------------

type BoundedDomain struct {
	min, max int
}

// NewBoundedDomain creates the interval [min, max]. Panics if min > max;
// callers constructing variables are expected to validate this themselves
// (IntVar factories do).
func NewBoundedDomain(min, max int) BoundedDomain {
	if min > max {
		panic(fmt.Sprintf("cp: NewBoundedDomain(%d, %d): empty range", min, max))
	}
	return BoundedDomain{min: min, max: max}
}

func (d BoundedDomain) Min() int      { return d.min }
func (d BoundedDomain) Max() int      { return d.max }
func (d BoundedDomain) Size() int     { return d.max - d.min + 1 }
func (d BoundedDomain) IsEmpty() bool { return d.min > d.max }
func (d BoundedDomain) Contains(v int) bool {
	return v >= d.min && v <= d.max
}

func (d BoundedDomain) SetMin(m int) (Domain, bool) {
	if m <= d.min {
		return d, true
	}
	if m > d.max {
		return d, false
	}
	return BoundedDomain{min: m, max: d.max}, true
}

func (d BoundedDomain) SetMax(m int) (Domain, bool) {
	if m >= d.max {
		return d, true
	}
	if m < d.min {
		return d, false
	}
	return BoundedDomain{min: d.min, max: m}, true
}

func (d BoundedDomain) RemoveValue(v int) (Domain, bool) {
	switch {
	case v < d.min || v > d.max:
		return d, true
	case v == d.min:
		return d.SetMin(v + 1)
	case v == d.max:
		return d.SetMax(v - 1)
	default:
		// Interior hole: a bounded domain cannot represent it, so promote
		// to a bitset over the same range and remove there instead of
		// silently dropping the narrowing.
		return NewBitsetDomain(d.min, d.max).RemoveValue(v)
	}
}

func (d BoundedDomain) RemoveInterval(lo, hi int) (Domain, bool) {
	if hi < d.min || lo > d.max {
		return d, true
	}
	if lo <= d.min && hi >= d.max {
		return d, false
	}
	if lo <= d.min {
		return d.SetMin(hi + 1)
	}
	if hi >= d.max {
		return d.SetMax(lo - 1)
	}
	// Interval strictly interior: promote to a bitset over the same range
	// and remove there instead of silently dropping the narrowing.
	return NewBitsetDomain(d.min, d.max).RemoveInterval(lo, hi)
}

func (d BoundedDomain) Iterate(f func(int)) {
	for v := d.min; v <= d.max; v++ {
		f(v)
	}
}

func (d BoundedDomain) String() string { return fmt.Sprintf("[%d..%d]", d.min, d.max) }

// ---------------------------------------------------------------------
// BitsetDomain: bitmap over a contiguous candidate range, supporting true
// hole removal and an exact Size().
// ---------------------------------------------------------------------

type BitsetDomain struct {
	base  int // value represented by bit 0
	words []uint64
	min   int
	max   int
	size  int
}

// NewBitsetDomain creates the interval [lo, hi] as a fully-populated
// bitset.
func NewBitsetDomain(lo, hi int) BitsetDomain {
	if lo > hi {
		panic(fmt.Sprintf("cp: NewBitsetDomain(%d, %d): empty range", lo, hi))
	}
	n := hi - lo + 1
	words := make([]uint64, (n+63)/64)
	for i := 0; i < n; i++ {
		words[i/64] |= 1 << uint(i%64)
	}
	return BitsetDomain{base: lo, words: words, min: lo, max: hi, size: n}
}

func (d BitsetDomain) Min() int      { return d.min }
func (d BitsetDomain) Max() int      { return d.max }
func (d BitsetDomain) Size() int     { return d.size }
func (d BitsetDomain) IsEmpty() bool { return d.size == 0 }

func (d BitsetDomain) Contains(v int) bool {
	if v < d.min || v > d.max {
		return false
	}
	i := v - d.base
	return d.words[i/64]&(1<<uint(i%64)) != 0
}

func (d BitsetDomain) clone() BitsetDomain {
	words := make([]uint64, len(d.words))
	copy(words, d.words)
	return BitsetDomain{base: d.base, words: words, min: d.min, max: d.max, size: d.size}
}

func (d BitsetDomain) bitIndex(v int) int { return v - d.base }

func (d BitsetDomain) unset(nd *BitsetDomain, v int) {
	i := nd.bitIndex(v)
	w := i / 64
	if nd.words[w]&(1<<uint(i%64)) != 0 {
		nd.words[w] &^= 1 << uint(i%64)
		nd.size--
	}
}

// recomputeBounds restores min/max after removals by scanning outward from
// the old bounds; amortized O(1) per call in the common case where only a
// handful of boundary values were removed.
func (d *BitsetDomain) recomputeBounds() bool {
	if d.size == 0 {
		return false
	}
	for !d.hasBit(d.min) {
		d.min++
	}
	for !d.hasBit(d.max) {
		d.max--
	}
	return true
}

func (d BitsetDomain) hasBit(v int) bool {
	i := v - d.base
	if i < 0 || i/64 >= len(d.words) {
		return false
	}
	return d.words[i/64]&(1<<uint(i%64)) != 0
}

func (d BitsetDomain) SetMin(m int) (Domain, bool) {
	if m <= d.min {
		return d, true
	}
	if m > d.max {
		return d, false
	}
	nd := d.clone()
	for v := d.min; v < m; v++ {
		d.unset(&nd, v)
	}
	if !nd.recomputeBounds() {
		return nd, false
	}
	return nd, true
}

func (d BitsetDomain) SetMax(m int) (Domain, bool) {
	if m >= d.max {
		return d, true
	}
	if m < d.min {
		return d, false
	}
	nd := d.clone()
	for v := m + 1; v <= d.max; v++ {
		d.unset(&nd, v)
	}
	if !nd.recomputeBounds() {
		return nd, false
	}
	return nd, true
}

func (d BitsetDomain) RemoveValue(v int) (Domain, bool) {
	if v < d.min || v > d.max || !d.Contains(v) {
		return d, !d.IsEmpty()
	}
	nd := d.clone()
	d.unset(&nd, v)
	if !nd.recomputeBounds() {
		return nd, false
	}
	return nd, true
}

func (d BitsetDomain) RemoveInterval(lo, hi int) (Domain, bool) {
	if hi < d.min || lo > d.max {
		return d, true
	}
	if lo < d.min {
		lo = d.min
	}
	if hi > d.max {
		hi = d.max
	}
	nd := d.clone()
	for v := lo; v <= hi; v++ {
		d.unset(&nd, v)
	}
	if !nd.recomputeBounds() {
		return nd, false
	}
	return nd, true
}

func (d BitsetDomain) Iterate(f func(int)) {
	for i, w := range d.words {
		for w != 0 {
			t := w & -w
			off := bits.TrailingZeros64(w)
			f(i*64 + off + d.base)
			w &^= t
		}
	}
}

func (d BitsetDomain) String() string {
	return fmt.Sprintf("bitset[%d..%d]/%d", d.min, d.max, d.size)
}

// ---------------------------------------------------------------------
// SparseSetDomain: an explicit, initially-given value list, kept sorted
// for ordered iteration and random-access min/max.
// ---------------------------------------------------------------------

type SparseSetDomain struct {
	values []int // sorted ascending, no duplicates
}

// NewSparseSetDomain creates a domain from an explicit list of values.
// The list is copied and sorted; duplicates are removed.
func NewSparseSetDomain(values []int) SparseSetDomain {
	vs := append([]int(nil), values...)
	sort.Ints(vs)
	out := vs[:0]
	for i, v := range vs {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		panic("cp: NewSparseSetDomain: empty value list")
	}
	return SparseSetDomain{values: out}
}

func (d SparseSetDomain) Min() int      { return d.values[0] }
func (d SparseSetDomain) Max() int      { return d.values[len(d.values)-1] }
func (d SparseSetDomain) Size() int     { return len(d.values) }
func (d SparseSetDomain) IsEmpty() bool { return len(d.values) == 0 }

func (d SparseSetDomain) indexOf(v int) (int, bool) {
	i := sort.SearchInts(d.values, v)
	if i < len(d.values) && d.values[i] == v {
		return i, true
	}
	return i, false
}

func (d SparseSetDomain) Contains(v int) bool {
	_, ok := d.indexOf(v)
	return ok
}

func (d SparseSetDomain) RemoveValue(v int) (Domain, bool) {
	i, ok := d.indexOf(v)
	if !ok {
		return d, len(d.values) > 0
	}
	nv := make([]int, 0, len(d.values)-1)
	nv = append(nv, d.values[:i]...)
	nv = append(nv, d.values[i+1:]...)
	return SparseSetDomain{values: nv}, len(nv) > 0
}

func (d SparseSetDomain) RemoveInterval(lo, hi int) (Domain, bool) {
	nv := make([]int, 0, len(d.values))
	for _, v := range d.values {
		if v < lo || v > hi {
			nv = append(nv, v)
		}
	}
	return SparseSetDomain{values: nv}, len(nv) > 0
}

func (d SparseSetDomain) SetMin(m int) (Domain, bool) { return d.RemoveInterval(minInt(), m-1) }
func (d SparseSetDomain) SetMax(m int) (Domain, bool) { return d.RemoveInterval(m+1, maxInt()) }

func (d SparseSetDomain) Iterate(f func(int)) {
	for _, v := range d.values {
		f(v)
	}
}

func (d SparseSetDomain) String() string { return fmt.Sprintf("%v", d.values) }

func minInt() int { return -(1 << 62) }
func maxInt() int { return 1<<62 - 1 }
