// Package query implements the request-scoped read-query pipeline:
// validation of raw filter/sort/pagination/projection parameters against a
// per-entity field allow-list, resolution of the principal's carrier scope,
// and composition of both into an immutable QueryDescription.
//
// Everything in this package is a pure function of its inputs: no I/O, no
// shared mutable state, no randomness. The scope predicate is always
// AND-combined with user filters and can never be widened by request
// parameters. Filter values are carried as typed arguments inside the
// description; turning a description into executable SQL is the store
// layer's job, and that layer binds every value as a query parameter.
package query
