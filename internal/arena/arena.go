// Package arena implements the rev_alloc index-arena idiom: objects are
// appended to a slice and referenced by a stable integer index rather
// than a pointer, and each reversible allocation registers a trail
// backtrack action that truncates the arena, so entries allocated since the nearest
// sentinel are invalidated for free when the trail unwinds past that
// point. This is the generalized form of the "arena-allocated objects
// with back-references to the solver" pattern called out in the C++
// source's rev_alloc + raw-pointer idiom.
package arena

// Trail is the minimal slice of cp.Trail's API the arena needs: the
// ability to register an undo action. Declared
// locally (rather than importing pkg/cp) so this package has no
// dependency on the solver it serves — any reversible log with this
// shape can back an Arena.
type Trail interface {
	AddBacktrackAction(fn func(), fast bool)
}

// Arena is an index-addressed store of T, with allocation tied to a
// Trail: Len reports how many entries are currently live, and Alloc schedules
// a backtrack action that truncates the store when the allocating
// choice point is undone.
type Arena[T any] struct {
	items []T
}

// New returns an empty Arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Alloc appends v, returning its index, and registers a backtrack
// action on t so that popping past the current choice point truncates
// the arena back to its pre-allocation length — any index allocated
// since is invalidated along with whatever held it.
func (a *Arena[T]) Alloc(t Trail, v T) int {
	idx := len(a.items)
	a.items = append(a.items, v)
	t.AddBacktrackAction(func() {
		if len(a.items) > idx {
			var zero T
			for i := idx; i < len(a.items); i++ {
				a.items[i] = zero
			}
			a.items = a.items[:idx]
		}
	}, false)
	return idx
}

// AllocPermanent appends v without any trail entry: the slot survives
// every backtrack, for objects (like posted constraints) whose lifetime
// is the whole solver rather than a single search subtree.
func (a *Arena[T]) AllocPermanent(v T) int {
	idx := len(a.items)
	a.items = append(a.items, v)
	return idx
}

// Get returns the value at idx. idx must be < Len(); using an index
// that was invalidated by a backtrack past its allocation point is a
// programming error, exactly as with the source's raw-pointer rev_alloc
// (the caller is expected not to retain indices across a backtrack that
// invalidates them).
func (a *Arena[T]) Get(idx int) T {
	return a.items[idx]
}

// Set overwrites the value at idx.
func (a *Arena[T]) Set(idx int, v T) {
	a.items[idx] = v
}

// Len returns the number of currently live entries.
func (a *Arena[T]) Len() int { return len(a.items) }

// All returns every currently live entry, in allocation order. The
// returned slice aliases the arena's backing array; callers must not
// retain it across a call to Alloc.
func (a *Arena[T]) All() []T { return a.items }
