// Package cp provides the core of a finite-domain Constraint Programming
// solver: reversible state management, integer variables and domains,
// constraint propagation, and a depth-first backtracking search driver
// combining propagation with trailed reversibility.
//
// A user builds a model (variables, expressions, constraints, an optional
// objective), picks a DecisionBuilder (branching strategy), and drives a
// Search that interleaves propagation (shrinking domains to a fixpoint)
// with trailed backtracking (undoing every mutation when a branch fails).
//
// The library deliberately stops short of shipping a library of concrete
// global constraints (all-different, cumulative, routing circuits, ...),
// an LP/MIP wrapper, or file-format I/O. Those are external collaborators
// that speak the Constraint / IntExpr / ModelVisitor interfaces defined
// here; pkg/cp/examples and the deviation sample constraint show how one
// is built on top.
//
// Scheduling model: single-threaded and cooperative. No two operations on
// the same Solver may run concurrently; suspension happens only at Fail,
// which the search driver unwinds to the nearest sentinel.
package cp
