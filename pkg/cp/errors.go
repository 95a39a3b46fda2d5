package cp

import "fmt"

// failSignal is the internal panic value used to implement a
// structured long-jump Fail semantics in idiomatic Go: a typed error
// channel would have to thread a sentinel return value through every
// mutator and every demon, obscuring the propagation code the way the
// source's C++ exceptions do not. A panic/recover pair plays the same role
// as the source's stack unwind to the nearest sentinel. It is recovered
// only by the search driver (Search.run, recurse, recurse2, applyDecision,
// backtrackAndRefute), by PostConstraint outside any search, and by
// CheckAssignment.
type failSignal struct{}

// Fail aborts the current computation, unwinding to the nearest sentinel.
// It carries no payload and is recovered only at the sites listed on
// failSignal; recovering it elsewhere (e.g. in user code wrapping a single
// mutator) would resume execution mid-mutation.
func Fail() {
	panic(failSignal{})
}

// InvariantViolation is a programming-error panic distinct from Fail: it
// signals a bug (popping an empty trail, reading Value() of an unbound
// variable, mutating a variable owned by a different Solver) rather than a
// search-time inconsistency. It is fatal and is never recovered by the
// search driver.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string { return e.Message }

func invariantViolation(format string, args ...interface{}) {
	panic(&InvariantViolation{Message: fmt.Sprintf(format, args...)})
}

// isFail reports whether a recovered panic value is a Fail signal (as
// opposed to an InvariantViolation or an unrelated panic, which must be
// re-raised).
func isFail(r interface{}) bool {
	_, ok := r.(failSignal)
	return ok
}
