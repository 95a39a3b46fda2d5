package cp

// Reversible cells implement a stamp optimization: each
// cell remembers the trail stamp at which it was last written. A write only
// appends a log entry when the cell's stamp is older than the trail's
// current stamp; otherwise the value is updated in place. This guarantees
// at most one trail entry per cell per choice point, however many times
// the cell is written within it.

// RevInt is a reversible int cell.
type RevInt struct {
	value int
	stamp int64
}

// NewRevInt creates a reversible int initialized to v. It is not yet
// attached to a trail; the first Set call supplies one.
func NewRevInt(v int) *RevInt { return &RevInt{value: v} }

// Value returns the cell's current value.
func (r *RevInt) Value() int { return r.value }

// Set writes v, logging the previous value to t only if this is the first
// write to the cell since t's current stamp.
func (r *RevInt) Set(t *Trail, v int) {
	if r.value == v {
		return
	}
	if r.stamp < t.stamp {
		t.saveInt(r, r.value)
		r.stamp = t.stamp
	}
	r.value = v
}

// RevInt64 is a reversible int64 cell.
type RevInt64 struct {
	value int64
	stamp int64
}

func NewRevInt64(v int64) *RevInt64 { return &RevInt64{value: v} }
func (r *RevInt64) Value() int64    { return r.value }
func (r *RevInt64) Set(t *Trail, v int64) {
	if r.value == v {
		return
	}
	if r.stamp < t.stamp {
		t.saveInt64(r, r.value)
		r.stamp = t.stamp
	}
	r.value = v
}

// RevUint64 is a reversible uint64 cell.
type RevUint64 struct {
	value uint64
	stamp int64
}

func NewRevUint64(v uint64) *RevUint64 { return &RevUint64{value: v} }
func (r *RevUint64) Value() uint64     { return r.value }
func (r *RevUint64) Set(t *Trail, v uint64) {
	if r.value == v {
		return
	}
	if r.stamp < t.stamp {
		t.saveUint64(r, r.value)
		r.stamp = t.stamp
	}
	r.value = v
}

// RevBool is a reversible bool cell, used for presence literals and demon
// inhibition flags.
type RevBool struct {
	value bool
	stamp int64
}

func NewRevBool(v bool) *RevBool { return &RevBool{value: v} }
func (r *RevBool) Value() bool   { return r.value }
func (r *RevBool) Set(t *Trail, v bool) {
	if r.value == v {
		return
	}
	if r.stamp < t.stamp {
		t.saveBool(r, r.value)
		r.stamp = t.stamp
	}
	r.value = v
}

// RevFloat64 is a reversible float64 cell.
type RevFloat64 struct {
	value float64
	stamp int64
}

func NewRevFloat64(v float64) *RevFloat64 { return &RevFloat64{value: v} }
func (r *RevFloat64) Value() float64      { return r.value }
func (r *RevFloat64) Set(t *Trail, v float64) {
	if r.value == v {
		return
	}
	if r.stamp < t.stamp {
		t.saveFloat64(r, r.value)
		r.stamp = t.stamp
	}
	r.value = v
}

// RevValue is a reversible cell for an arbitrary payload
// (typically a domain, a pointer, or a small struct), used where the
// specialized numeric cells above don't fit — e.g. IntVar's domain field.
// Unlike the numeric cells it is not stamp-optimized against repeated
// pointer equality (T need not be comparable), so callers that write the
// same logical value repeatedly within one choice point should check
// first; domain mutators already do this before calling Set.
type RevValue[T any] struct {
	value T
	stamp int64
}

func NewRevValue[T any](v T) *RevValue[T] { return &RevValue[T]{value: v} }
func (r *RevValue[T]) Value() T           { return r.value }
func (r *RevValue[T]) Set(t *Trail, v T) {
	if r.stamp < t.stamp {
		old := r.value
		t.saveValue(func() { r.value = old })
		r.stamp = t.stamp
	}
	r.value = v
}

// RevIntArray is a reversible array of ints, writing each element through
// the stamp-optimized path so that a choice point that mutates many
// distinct indices still logs at most one entry per index touched.
type RevIntArray struct {
	cells []RevInt
}

// NewRevIntArray creates a reversible array of length n, all zero.
func NewRevIntArray(n int) *RevIntArray {
	return &RevIntArray{cells: make([]RevInt, n)}
}

func (a *RevIntArray) Len() int          { return len(a.cells) }
func (a *RevIntArray) Get(i int) int     { return a.cells[i].value }
func (a *RevIntArray) Set(t *Trail, i, v int) { a.cells[i].Set(t, v) }
