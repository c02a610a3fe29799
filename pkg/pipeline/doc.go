// Package pipeline implements the in-memory browse pipeline over a hook
// snapshot: distinct value derivation, the category/subcategory selection
// state machine, equality filtering, fixed-size pagination and view assembly.
//
// Every function here is pure. Surfaces keep a State value, feed it through
// the transition functions on user events and call Session.View to obtain
// what to render. Nothing in this package performs I/O.
package pipeline
